package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/brlcal/brlcal/internal/session"
)

type ExportData struct {
	ID         string  `json:"id"`
	Columns    int     `json:"columns"`
	Rows       int     `json:"rows"`
	IntervalMs int     `json:"interval_ms"`
	Mode       string  `json:"mode"`
	Loop       bool    `json:"loop"`
	WholeLine  bool    `json:"whole_line"`
	Seed       int64   `json:"seed"`
	Ticks      int     `json:"ticks"`
	Frames     []frame `json:"frames"`
}

type frame struct {
	Tick       int   `json:"tick"`
	PhaseOn    bool  `json:"phase_on"`
	StepIndex  int   `json:"step_index"`
	Masks      []int `json:"masks"`
	RaisedDots int   `json:"raised_dots"`
}

func exportData(meta *SessionMetadata, frames []session.Frame) ExportData {
	data := ExportData{
		ID:         meta.ID,
		Columns:    meta.Columns,
		Rows:       meta.Rows,
		IntervalMs: meta.IntervalMs,
		Mode:       meta.Mode,
		Loop:       meta.Loop,
		WholeLine:  meta.WholeLine,
		Seed:       meta.Seed,
		Ticks:      meta.Ticks,
		Frames:     make([]frame, len(frames)),
	}

	for i, f := range frames {
		masks := make([]int, len(f.Masks))
		for j, m := range f.Masks {
			masks[j] = int(m)
		}
		data.Frames[i] = frame{
			Tick:       f.Tick,
			PhaseOn:    f.PhaseOn,
			StepIndex:  f.StepIndex,
			Masks:      masks,
			RaisedDots: f.RaisedDots(),
		}
	}

	return data
}

func exportJSON(w io.Writer, meta *SessionMetadata, frames []session.Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(meta, frames))
}

// ExportJSON writes a session as pretty-printed JSON to path.
func ExportJSON(path string, meta *SessionMetadata, frames []session.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, meta, frames)
}

// ExportJSONStdout writes a session as pretty-printed JSON to stdout.
func ExportJSONStdout(meta *SessionMetadata, frames []session.Frame) error {
	return exportJSON(os.Stdout, meta, frames)
}
