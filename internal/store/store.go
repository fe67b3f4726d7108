// Package store persists recorded calibration sessions, one directory
// per session holding metadata.json and frames.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brlcal/brlcal/internal/pattern"
	"github.com/brlcal/brlcal/internal/session"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Columns    int       `json:"columns"`
	Rows       int       `json:"rows"`
	IntervalMs int       `json:"interval_ms"`
	Mode       string    `json:"mode"`
	Loop       bool      `json:"loop"`
	WholeLine  bool      `json:"whole_line"`
	Seed       int64     `json:"seed"`
	Ticks      int       `json:"ticks"`
	OnTicks    int       `json:"on_ticks"`
	RaisedDots int       `json:"raised_dots"`
}

// Config rebuilds the pattern settings the session ran with.
func (m *SessionMetadata) PatternConfig() (pattern.Config, error) {
	mode, err := pattern.ParseMode(m.Mode)
	if err != nil {
		return pattern.Config{}, err
	}
	return pattern.Config{
		Columns:    m.Columns,
		Rows:       m.Rows,
		IntervalMs: m.IntervalMs,
		Mode:       mode,
		Loop:       m.Loop,
		WholeLine:  m.WholeLine,
	}, nil
}

func (s *Store) Save(rec *session.Recording) (string, error) {
	id := fmt.Sprintf("%s_%d", rec.Config.Mode, time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := SessionMetadata{
		ID:         id,
		Timestamp:  time.Now(),
		Columns:    rec.Config.Columns,
		Rows:       rec.Config.Rows,
		IntervalMs: rec.Config.IntervalMs,
		Mode:       rec.Config.Mode.String(),
		Loop:       rec.Config.Loop,
		WholeLine:  rec.Config.WholeLine,
		Seed:       rec.Seed,
		Ticks:      rec.Ticks(),
		OnTicks:    rec.OnTicks(),
		RaisedDots: rec.RaisedDotTotal(),
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"tick", "phase", "step"}
	for i := 0; i < rec.Config.TotalCells(); i++ {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, f := range rec.Frames {
		phase := "0"
		if f.PhaseOn {
			phase = "1"
		}
		row := []string{strconv.Itoa(f.Tick), phase, strconv.Itoa(f.StepIndex)}
		for _, mask := range f.Masks {
			row = append(row, strconv.Itoa(int(mask)))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return id, nil
}

func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta SessionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		sessions = append(sessions, meta)
	}

	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(id string) ([]session.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []session.Frame{}, nil
	}

	frames := make([]session.Frame, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		step, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}

		masks := make(pattern.Line, 0, len(record)-3)
		for j := 3; j < len(record); j++ {
			v, err := strconv.Atoi(record[j])
			if err != nil || v < 0 || v > 255 {
				continue
			}
			masks = append(masks, uint8(v))
		}

		frames = append(frames, session.Frame{
			Tick:      tick,
			PhaseOn:   record[1] == "1",
			StepIndex: step,
			Masks:     masks,
		})
	}

	return frames, nil
}
