package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brlcal/brlcal/internal/braille"
	"github.com/brlcal/brlcal/internal/config"
	"github.com/brlcal/brlcal/internal/pattern"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type state int

const (
	stateSettings state = iota
	stateRunning
)

type field int

const (
	fieldColumns field = iota
	fieldRows
	fieldInterval
	fieldMode
	fieldLoop
	fieldWholeLine
	fieldSeed
	fieldPreset
	fieldEnd
)

var fieldNames = [fieldEnd]string{
	"columns", "rows", "interval ms", "mode", "loop", "whole line", "seed", "preset",
}

type model struct {
	state   state
	cursor  field
	editing bool
	editBuf string

	columns    int
	rows       int
	intervalMs int
	modeIdx    int
	loop       bool
	whole      bool
	seed       int64

	presets   []string
	presetIdx int

	// run guards stale ticks after a stop or restart.
	run    int
	engine *pattern.Engine
	st     pattern.State
	line   pattern.Line
	tick   int
	paused bool

	status  string
	errText string
}

func newModel(cfg *config.Config) model {
	m := model{
		columns:    cfg.Columns,
		rows:       cfg.Rows,
		intervalMs: cfg.IntervalMs,
		loop:       cfg.Loop,
		whole:      cfg.WholeLine,
		seed:       cfg.Seed,
		presets:    config.ListPresets(),
		status:     IdleStatus,
	}
	if mode, err := pattern.ParseMode(cfg.Mode); err == nil {
		m.modeIdx = int(mode)
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg struct {
	run int
}

func tick(interval time.Duration, run int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{run: run} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if m.state != stateRunning || msg.run != m.run || m.paused {
			return m, nil
		}
		m.line = m.engine.Render(m.st)
		var stop bool
		m.st, stop = m.engine.Advance(m.st)
		m.tick++
		if stop {
			m.stopRun()
			return m, nil
		}
		return m, tick(m.engine.Config().Interval(), m.run)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.state == stateRunning {
		return m.runningKey(msg)
	}
	return m.settingsKey(msg)
}

func (m model) settingsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.commitEdit()
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < fieldEnd-1 {
			m.cursor++
		}
	case " ":
		return m.activateField(), nil
	case "left", "h":
		m.adjustField(-1)
	case "right", "l":
		m.adjustField(1)
	case "s", "enter":
		return m.start()
	}
	return m, nil
}

func (m model) activateField() model {
	switch m.cursor {
	case fieldLoop:
		m.loop = !m.loop
	case fieldWholeLine:
		m.whole = !m.whole
	case fieldMode:
		m.modeIdx = (m.modeIdx + 1) % len(pattern.Modes())
	case fieldPreset:
		m.applyPreset()
	default:
		m.editing = true
		m.editBuf = m.fieldValue(m.cursor)
	}
	return m
}

func (m *model) commitEdit() {
	val, err := strconv.ParseInt(m.editBuf, 10, 64)
	m.editing = false
	m.editBuf = ""
	if err != nil {
		return
	}
	switch m.cursor {
	case fieldColumns:
		m.columns = int(val)
	case fieldRows:
		m.rows = int(val)
	case fieldInterval:
		m.intervalMs = int(val)
	case fieldSeed:
		m.seed = val
	}
}

func (m *model) adjustField(delta int) {
	switch m.cursor {
	case fieldColumns:
		m.columns += delta
	case fieldRows:
		m.rows += delta
	case fieldInterval:
		m.intervalMs += delta * 50
	case fieldMode:
		n := len(pattern.Modes())
		m.modeIdx = (m.modeIdx + delta + n) % n
	case fieldLoop:
		m.loop = !m.loop
	case fieldWholeLine:
		m.whole = !m.whole
	case fieldSeed:
		m.seed += int64(delta)
	case fieldPreset:
		n := len(m.presets)
		m.presetIdx = (m.presetIdx + delta + n) % n
	}
}

func (m *model) applyPreset() {
	cfg := config.GetPreset(m.presets[m.presetIdx])
	if cfg == nil {
		return
	}
	m.columns = cfg.Columns
	m.rows = cfg.Rows
	m.intervalMs = cfg.IntervalMs
	m.loop = cfg.Loop
	m.whole = cfg.WholeLine
	m.seed = cfg.Seed
	if mode, err := pattern.ParseMode(cfg.Mode); err == nil {
		m.modeIdx = int(mode)
	}
	m.errText = ""
}

func (m model) patternConfig() pattern.Config {
	return pattern.Config{
		Columns:    m.columns,
		Rows:       m.rows,
		IntervalMs: m.intervalMs,
		Mode:       pattern.Mode(m.modeIdx),
		Loop:       m.loop,
		WholeLine:  m.whole,
	}
}

func (m model) start() (model, tea.Cmd) {
	cfg := m.patternConfig()
	engine, err := pattern.New(cfg, m.seed)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.errText = ""
	m.engine = engine
	m.st = engine.Start()
	m.line = engine.Render(m.st)
	m.tick = 0
	m.paused = false
	m.state = stateRunning
	m.run++
	m.status = RunningStatus(cfg)
	return m, tea.Batch(tea.ClearScreen, tick(cfg.Interval(), m.run))
}

func (m *model) stopRun() {
	m.run++
	m.line = m.engine.Blank()
	m.paused = false
	m.state = stateSettings
	m.status = StoppedStatus
}

func (m model) runningKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s", "esc":
		m.stopRun()
		return m, tea.ClearScreen
	case "p", "enter":
		cfg := m.engine.Config()
		if m.paused {
			m.paused = false
			m.status = RunningStatus(cfg)
			return m, tick(cfg.Interval(), m.run)
		}
		m.paused = true
		m.status = PausedStatus(cfg)
	}
	return m, nil
}

func (m model) fieldValue(f field) string {
	switch f {
	case fieldColumns:
		return strconv.Itoa(m.columns)
	case fieldRows:
		return strconv.Itoa(m.rows)
	case fieldInterval:
		return strconv.Itoa(m.intervalMs)
	case fieldMode:
		return pattern.Mode(m.modeIdx).String()
	case fieldLoop:
		return onOff(m.loop)
	case fieldWholeLine:
		return onOff(m.whole)
	case fieldSeed:
		return strconv.FormatInt(m.seed, 10)
	case fieldPreset:
		return m.presets[m.presetIdx]
	}
	return ""
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m model) View() string {
	if m.state == stateRunning {
		return m.viewRunning()
	}
	return m.viewSettings()
}

func (m model) viewSettings() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("b r l c a l") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for f := field(0); f < fieldEnd; f++ {
		val := m.fieldValue(f)
		if m.editing && f == m.cursor {
			val = m.editBuf + "▋"
		}
		if f == fieldMode {
			val = val + "  " + dimmer.Render(pattern.Mode(m.modeIdx).Label())
		}
		if f == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", fieldNames[f])) + white.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", fieldNames[f])) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("      " + dim.Render(FormatCounts(m.columns, m.rows)) + "\n")
	if m.errText != "" {
		b.WriteString("      " + yellow.Render(m.errText) + "\n")
	}
	b.WriteString("      " + dimmer.Render(m.status) + "\n")
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  space edit/toggle  s/enter start  q quit") + "\n")

	return b.String()
}

func (m model) viewRunning() string {
	cfg := m.engine.Config()

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n\n", statusIcon, cyan.Render(cfg.Mode.String()), statusText))

	b.WriteString(dimmer.Render("   "+strings.Repeat("─", cfg.Columns+2)) + "\n")
	for row := 0; row < cfg.Rows; row++ {
		start := row * cfg.Columns
		b.WriteString("    " + white.Render(braille.String(m.line[start:start+cfg.Columns])) + "\n")
	}
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", cfg.Columns+2)) + "\n\n")

	phase := "on"
	if !m.st.PhaseOn {
		phase = "off"
	}
	b.WriteString("   " + dim.Render(fmt.Sprintf("tick %d  step %d  phase %s", m.tick, m.st.StepIndex, phase)) + "\n")
	b.WriteString("   " + dimmer.Render(m.status) + "\n")
	b.WriteString("\n" + dim.Render("   p/enter pause  s stop  esc stop  q quit") + "\n")

	return b.String()
}

// Run starts the interactive calibration screen with the given settings.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
