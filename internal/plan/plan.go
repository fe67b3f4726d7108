// Package plan runs scripted calibration sequences described in YAML:
// an ordered list of steps, each a settings override executed through
// the session runner. Loop is forced off so every step terminates.
package plan

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brlcal/brlcal/internal/pattern"
	"github.com/brlcal/brlcal/internal/session"
)

// Plan is a scripted calibration sequence.
type Plan struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step overrides the base settings for one run. Zero-valued fields fall
// back to the base configuration.
type Step struct {
	Label      string `yaml:"label"`
	Mode       string `yaml:"mode"`
	Columns    int    `yaml:"columns"`
	Rows       int    `yaml:"rows"`
	IntervalMs int    `yaml:"interval_ms"`
	WholeLine  bool   `yaml:"whole_line"`
	Repeat     int    `yaml:"repeat"`
}

// Load reads a plan from a YAML file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("plan %s has no steps", path)
	}

	return &p, nil
}

// Config resolves the step against base settings. Loop is always off so
// the step terminates on its own.
func (s Step) Config(base pattern.Config) (pattern.Config, error) {
	cfg := base
	cfg.Loop = false

	if s.Columns > 0 {
		cfg.Columns = s.Columns
	}
	if s.Rows > 0 {
		cfg.Rows = s.Rows
	}
	if s.IntervalMs > 0 {
		cfg.IntervalMs = s.IntervalMs
	}
	cfg.WholeLine = s.WholeLine
	if s.Mode != "" {
		mode, err := pattern.ParseMode(s.Mode)
		if err != nil {
			return pattern.Config{}, err
		}
		cfg.Mode = mode
	}

	if err := cfg.Validate(); err != nil {
		return pattern.Config{}, err
	}
	return cfg, nil
}

// repeats normalizes the repeat count; a step runs at least once.
func (s Step) repeats() int {
	if s.Repeat < 1 {
		return 1
	}
	return s.Repeat
}

// StepResult summarizes one executed step and keeps each run's
// recording so callers can persist them.
type StepResult struct {
	Label      string
	Mode       pattern.Mode
	Runs       int
	Ticks      int
	RaisedDots int
	Recordings []*session.Recording
}

// Run executes every step in order through the session runner. onFrame,
// if non-nil, sees every frame with its step index; returning false
// aborts the plan.
func Run(ctx context.Context, p *Plan, seed int64, onFrame func(step int, f session.Frame) bool) ([]StepResult, error) {
	results := make([]StepResult, 0, len(p.Steps))

	for i, step := range p.Steps {
		cfg, err := step.Config(pattern.Default())
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Label, err)
		}

		// Random groupings never stop on their own; give them a bound
		// comparable to one full walk of the grid.
		maxTicks := 0
		if cfg.Mode.Random() && !cfg.WholeLine {
			maxTicks = 2 * cfg.TotalCells()
		}

		res := StepResult{Label: step.Label, Mode: cfg.Mode}
		for run := 0; run < step.repeats(); run++ {
			runner, err := session.NewRunner(cfg, seed, maxTicks)
			if err != nil {
				return results, fmt.Errorf("step %d (%s): %w", i+1, step.Label, err)
			}

			aborted := false
			rec, err := runner.Run(ctx, func(f session.Frame) bool {
				if onFrame != nil && !onFrame(i, f) {
					aborted = true
					return false
				}
				return true
			})
			if err != nil {
				return results, fmt.Errorf("step %d (%s): %w", i+1, step.Label, err)
			}

			res.Runs++
			res.Ticks += rec.Ticks()
			res.RaisedDots += rec.RaisedDotTotal()
			res.Recordings = append(res.Recordings, rec)

			if aborted {
				results = append(results, res)
				return results, nil
			}
		}

		results = append(results, res)
	}

	return results, nil
}
