package pattern

import (
	"errors"
	"testing"
)

func mustEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	eng, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return eng
}

// onPhases collects the next n ON-phase lines, advancing through the
// interleaved OFF phases.
func onPhases(t *testing.T, eng *Engine, st State, n int) ([]Line, State, bool) {
	t.Helper()
	lines := make([]Line, 0, n)
	stop := false
	for len(lines) < n && !stop {
		if st.PhaseOn {
			lines = append(lines, eng.Render(st))
		}
		st, stop = eng.Advance(st)
	}
	return lines, st, stop
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"defaults", Default(), nil},
		{"zero columns", Config{Columns: 0, Rows: 4, IntervalMs: 500}, ErrColumns},
		{"negative rows", Config{Columns: 24, Rows: -1, IntervalMs: 500}, ErrRows},
		{"zero interval", Config{Columns: 24, Rows: 4, IntervalMs: 0}, ErrInterval},
		{"max cells", Config{Columns: 1000, Rows: 5, IntervalMs: 500}, nil},
		{"too many cells", Config{Columns: 1667, Rows: 3, IntervalMs: 500}, ErrTotalCells},
		{"unknown mode", Config{Columns: 24, Rows: 4, IntervalMs: 500, Mode: Mode(99)}, ErrMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatal("expected a ConfigError")
			}
		})
	}
}

func TestRenderLineLength(t *testing.T) {
	for _, mode := range Modes() {
		cfg := Default()
		cfg.Mode = mode
		eng := mustEngine(t, cfg)
		line := eng.Render(eng.Start())
		if len(line) != cfg.TotalCells() {
			t.Errorf("mode %s: expected %d cells, got %d", mode, cfg.TotalCells(), len(line))
		}
	}
}

func TestOffPhaseIsBlank(t *testing.T) {
	for _, mode := range Modes() {
		for _, whole := range []bool{false, true} {
			if mode.Random() && !whole {
				continue // no phase gating in this mode
			}
			cfg := Default()
			cfg.Mode = mode
			cfg.WholeLine = whole
			eng := mustEngine(t, cfg)

			line := eng.Render(State{PhaseOn: false})
			for i, m := range line {
				if m != 0 {
					t.Fatalf("mode %s whole=%v: cell %d lit during OFF phase", mode, whole, i)
				}
			}
		}
	}
}

func TestRowWalkScenario(t *testing.T) {
	cfg := Config{Columns: 3, Rows: 1, IntervalMs: 100, Mode: ModeRowWalk, Loop: false}
	eng := mustEngine(t, cfg)

	st := eng.Start()
	want := []Line{
		{0xFF, 0, 0},
		{0, 0xFF, 0},
		{0, 0, 0xFF},
	}

	lines, _, stop := onPhases(t, eng, st, 3)
	for i, w := range want {
		for j := range w {
			if lines[i][j] != w[j] {
				t.Errorf("ON phase %d: expected %v, got %v", i, w, lines[i])
				break
			}
		}
	}
	if !stop {
		t.Error("expected stop after the final cell")
	}
}

func TestColumnMajorBijection(t *testing.T) {
	grids := []struct{ cols, rows int }{
		{3, 1}, {1, 3}, {24, 4}, {7, 5}, {5, 7},
	}

	for _, g := range grids {
		cfg := Config{Columns: g.cols, Rows: g.rows, IntervalMs: 100, Mode: ModeColumnWalk}
		eng := mustEngine(t, cfg)

		seen := make(map[int]bool)
		for step := 0; step < cfg.TotalCells(); step++ {
			idx := eng.cellIndex(step)
			if idx < 0 || idx >= cfg.TotalCells() {
				t.Fatalf("%dx%d step %d: index %d out of range", g.cols, g.rows, step, idx)
			}
			if seen[idx] {
				t.Fatalf("%dx%d step %d: index %d visited twice", g.cols, g.rows, step, idx)
			}
			seen[idx] = true
		}
		if len(seen) != cfg.TotalCells() {
			t.Errorf("%dx%d: %d cells visited, expected %d", g.cols, g.rows, len(seen), cfg.TotalCells())
		}
	}
}

func TestColumnWalkOrder(t *testing.T) {
	// 3x2 grid: the walk should visit linear indices 0,3,1,4,2,5.
	cfg := Config{Columns: 3, Rows: 2, IntervalMs: 100, Mode: ModeColumnWalk}
	eng := mustEngine(t, cfg)

	want := []int{0, 3, 1, 4, 2, 5}
	for step, w := range want {
		if got := eng.cellIndex(step); got != w {
			t.Errorf("step %d: expected cell %d, got %d", step, w, got)
		}
	}
}

func TestDashWalkCycle(t *testing.T) {
	cfg := Config{Columns: 4, Rows: 1, IntervalMs: 100, Mode: ModeDashes, Loop: true}
	eng := mustEngine(t, cfg)

	st := eng.Start()
	want := []uint8{0x09, 0x12, 0x24, 0xC0}

	// Four consecutive ON phases show the dash rotation on cell 0 before
	// the walk moves on.
	lines, st, _ := onPhases(t, eng, st, 4)
	for i, w := range want {
		if lines[i][0] != w {
			t.Errorf("ON phase %d: expected mask %#02x on cell 0, got %#02x", i, w, lines[i][0])
		}
		for j := 1; j < len(lines[i]); j++ {
			if lines[i][j] != 0 {
				t.Errorf("ON phase %d: cell %d lit unexpectedly", i, j)
			}
		}
	}

	if st.StepIndex != 1 {
		t.Errorf("expected walk at cell 1 after a full dash cycle, got %d", st.StepIndex)
	}
}

func TestAlternateWholeLine(t *testing.T) {
	cfg := Config{Columns: 6, Rows: 1, IntervalMs: 100, Mode: ModeAlternate, Loop: true, WholeLine: true}
	eng := mustEngine(t, cfg)

	line := eng.Render(State{PhaseOn: true})
	for i, m := range line {
		want := maskAlternateA
		if i%2 == 1 {
			want = maskAlternateB
		}
		if m != want {
			t.Errorf("cell %d: expected %#02x, got %#02x", i, want, m)
		}
	}
}

func TestAlternateWalkingParity(t *testing.T) {
	cfg := Config{Columns: 4, Rows: 1, IntervalMs: 100, Mode: ModeAlternate, Loop: false}
	eng := mustEngine(t, cfg)

	lines, _, _ := onPhases(t, eng, eng.Start(), 4)
	for i, line := range lines {
		want := maskAlternateA
		if i%2 == 1 {
			want = maskAlternateB
		}
		if line[i] != want {
			t.Errorf("cell %d: expected %#02x, got %#02x", i, want, line[i])
		}
	}
}

func TestFixedMaskModes(t *testing.T) {
	tests := []struct {
		mode Mode
		mask uint8
	}{
		{ModeDots78, 0xC0},
		{ModeDots1237, 0x47},
		{ModeDots4568, 0xB8},
		{ModeDots1346, 0x2D},
		{ModeDots1256, 0x33},
		{ModeDots1267, 0x63},
		{ModeDots347, 0x4C},
		{ModeDots12367, 0x67},
		{ModeDots12356, 0x37},
		{ModeDots3678, 0xE4},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := Config{Columns: 5, Rows: 1, IntervalMs: 100, Mode: tt.mode, WholeLine: true}
			eng := mustEngine(t, cfg)
			line := eng.Render(State{PhaseOn: true})
			for i, m := range line {
				if m != tt.mask {
					t.Fatalf("cell %d: expected %#02x, got %#02x", i, tt.mask, m)
				}
			}

			cfg.WholeLine = false
			eng = mustEngine(t, cfg)
			line = eng.Render(State{PhaseOn: true, StepIndex: 2})
			if line[2] != tt.mask {
				t.Errorf("walking cell: expected %#02x, got %#02x", tt.mask, line[2])
			}
		})
	}
}

func TestRandomWholeLine(t *testing.T) {
	cfg := Config{Columns: 50, Rows: 1, IntervalMs: 100, Mode: ModeRandom, WholeLine: true}
	eng := mustEngine(t, cfg)

	line := eng.Render(State{PhaseOn: true})
	for i, m := range line {
		if m == 0 {
			t.Errorf("cell %d: expected a non-zero random mask", i)
		}
	}

	line = eng.Render(State{PhaseOn: false})
	for i, m := range line {
		if m != 0 {
			t.Errorf("cell %d: expected blank OFF phase", i)
		}
	}
}

func TestRandomGroupingsNeverSteps(t *testing.T) {
	cfg := Config{Columns: 50, Rows: 2, IntervalMs: 100, Mode: ModeRandom, Loop: false}
	eng := mustEngine(t, cfg)

	st := eng.Start()
	for i := 0; i < 100; i++ {
		next, stop := eng.Advance(st)
		if stop {
			t.Fatal("random groupings must never request stop")
		}
		if next != st {
			t.Fatal("random groupings must never mutate state")
		}
	}
}

func TestRandomGroupingsDeterministicSeed(t *testing.T) {
	cfg := Config{Columns: 40, Rows: 1, IntervalMs: 100, Mode: ModeRandom}

	a, err := New(cfg, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg, 7)
	if err != nil {
		t.Fatal(err)
	}

	st := State{PhaseOn: true}
	for tick := 0; tick < 5; tick++ {
		la, lb := a.Render(st), b.Render(st)
		for i := range la {
			if la[i] != lb[i] {
				t.Fatalf("tick %d cell %d: same seed produced different masks", tick, i)
			}
		}
	}
}

func TestNonLoopTerminates(t *testing.T) {
	for _, mode := range Modes() {
		if mode.Random() {
			continue // whole-line random covered below; groupings never stop
		}
		cfg := Config{Columns: 6, Rows: 2, IntervalMs: 100, Mode: mode, Loop: false}
		eng := mustEngine(t, cfg)

		bound := 2 * cfg.TotalCells()
		if mode.DashCycle() {
			bound = 8 * cfg.TotalCells()
		}

		st := eng.Start()
		stopped := false
		for i := 0; i <= bound; i++ {
			var stop bool
			st, stop = eng.Advance(st)
			if stop {
				stopped = true
				break
			}
		}
		if !stopped {
			t.Errorf("mode %s: no stop within %d advances", mode, bound+1)
		}
	}
}

func TestWholeLineNonLoopStopsAfterOneBlink(t *testing.T) {
	cfg := Config{Columns: 4, Rows: 1, IntervalMs: 100, Mode: ModeDots78, Loop: false, WholeLine: true}
	eng := mustEngine(t, cfg)

	st := eng.Start()
	st, stop := eng.Advance(st) // ON -> OFF
	if stop {
		t.Fatal("stop requested before the blink completed")
	}
	_, stop = eng.Advance(st) // OFF -> ON, one blink unit done
	if !stop {
		t.Fatal("expected stop after one whole-line blink unit")
	}
}

func TestWholeLineDashStopsAfterFullCycle(t *testing.T) {
	cfg := Config{Columns: 4, Rows: 1, IntervalMs: 100, Mode: ModeDashes, Loop: false, WholeLine: true}
	eng := mustEngine(t, cfg)

	st := eng.Start()
	advances := 0
	for {
		var stop bool
		st, stop = eng.Advance(st)
		advances++
		if stop {
			break
		}
		if advances > 16 {
			t.Fatal("no stop within two full cycles")
		}
	}
	// 4 sub-steps, each an ON+OFF pair.
	if advances != 8 {
		t.Errorf("expected stop on advance 8, got %d", advances)
	}
}

func TestLoopWraps(t *testing.T) {
	cfg := Config{Columns: 3, Rows: 1, IntervalMs: 100, Mode: ModeRowWalk, Loop: true}
	eng := mustEngine(t, cfg)

	st := eng.Start()
	sawWrap := false
	for i := 0; i < 10*cfg.TotalCells(); i++ {
		var stop bool
		prev := st.StepIndex
		st, stop = eng.Advance(st)
		if stop {
			t.Fatal("loop run must never request stop")
		}
		if prev == cfg.TotalCells()-1 && st.StepIndex == 0 && st.PhaseOn {
			sawWrap = true
		}
	}
	if !sawWrap {
		t.Error("expected the walk to wrap back to cell 0")
	}
}

func TestPhaseAlternates(t *testing.T) {
	cfg := Default()
	eng := mustEngine(t, cfg)

	st := eng.Start()
	if !st.PhaseOn {
		t.Fatal("runs start in the ON phase")
	}
	for i := 0; i < 20; i++ {
		prev := st.PhaseOn
		st, _ = eng.Advance(st)
		if st.PhaseOn == prev {
			t.Fatalf("advance %d: phase did not alternate", i)
		}
	}
}
