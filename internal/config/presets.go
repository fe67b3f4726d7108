package config

import "sort"

// Presets are ready-made calibration setups for common display layouts
// and checks.
var Presets = map[string]*Config{
	"default": {
		Columns: 24, Rows: 4, IntervalMs: 500, Mode: "row-walk", Loop: true,
	},
	"single-row": {
		Columns: 40, Rows: 1, IntervalMs: 500, Mode: "row-walk", Loop: true,
	},
	"full-display": {
		Columns: 40, Rows: 25, IntervalMs: 300, Mode: "row-walk", Loop: true,
	},
	"wiring": {
		Columns: 24, Rows: 4, IntervalMs: 500, Mode: "column-walk", Loop: true,
	},
	"dashes": {
		Columns: 24, Rows: 4, IntervalMs: 400, Mode: "dashes", Loop: true, WholeLine: true,
	},
	"upper-dots": {
		Columns: 24, Rows: 4, IntervalMs: 600, Mode: "dots1237", Loop: true, WholeLine: true,
	},
	"lower-dots": {
		Columns: 24, Rows: 4, IntervalMs: 600, Mode: "dots4568", Loop: true, WholeLine: true,
	},
	"stuck-dots": {
		Columns: 24, Rows: 4, IntervalMs: 250, Mode: "random", Loop: true,
	},
	"blink-check": {
		Columns: 24, Rows: 4, IntervalMs: 800, Mode: "alternate", Loop: true, WholeLine: true,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
