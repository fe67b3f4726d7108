package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/brlcal/brlcal/internal/braille"
	"github.com/brlcal/brlcal/internal/config"
	"github.com/brlcal/brlcal/internal/export"
	"github.com/brlcal/brlcal/internal/pattern"
	"github.com/brlcal/brlcal/internal/plan"
	"github.com/brlcal/brlcal/internal/session"
	"github.com/brlcal/brlcal/internal/store"
	"github.com/brlcal/brlcal/internal/tui"
)

var (
	dataDir    string
	columns    int
	rows       int
	intervalMs int
	modeName   string
	loop       bool
	wholeLine  bool
	seed       int64
	ticks      int
	preset     string
	configFile string
	saveRun    bool
	quiet      bool
	// export-svg options
	svgTick  int
	svgScale float64
	outFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brlcal",
		Short: "braille display calibration patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".brlcal", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a calibration pattern",
		RunE:  runPattern,
	}
	addSettingsFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "stop after this many ticks (0 = run to completion)")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "record the session")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress frame output")

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset settings")

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list pattern modes",
		RunE:  listModes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset settings",
		RunE:  listPresetSettings,
	}

	planCmd := &cobra.Command{
		Use:   "plan [file]",
		Short: "run a scripted calibration plan",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}
	planCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	planCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress frame output")
	planCmd.Flags().BoolVar(&saveRun, "save", false, "record each step")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded sessions",
		RunE:  listSessions,
	}

	showCmd := &cobra.Command{
		Use:   "show [session_id]",
		Short: "replay a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE:  showSession,
	}

	exportCmd := &cobra.Command{
		Use:   "export [session_id]",
		Short: "export a session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSession,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [session_id]",
		Short: "render one frame of a session as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgTick, "tick", 0, "frame to render")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 8, "dot grid scale")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	reportCmd := &cobra.Command{
		Use:   "report [session_id]",
		Short: "summarize a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE:  reportSession,
	}

	rootCmd.AddCommand(runCmd, modesCmd, presetsCmd, planCmd, listCmd, showCmd, exportCmd, exportSVGCmd, reportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&columns, "columns", config.DefaultColumns, "display columns")
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "display rows")
	cmd.Flags().IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "blink interval in ms")
	cmd.Flags().StringVar(&modeName, "mode", config.DefaultMode, "pattern mode")
	cmd.Flags().BoolVar(&loop, "loop", true, "restart the walk when it completes")
	cmd.Flags().BoolVar(&wholeLine, "whole-line", false, "blink every cell instead of walking")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
}

// resolveConfig layers settings: defaults, then preset, then the config
// file merged over that, then explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("columns") {
		cfg.Columns = columns
	}
	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = modeName
	}
	if cmd.Flags().Changed("loop") {
		cfg.Loop = loop
	}
	if cmd.Flags().Changed("whole-line") {
		cfg.WholeLine = wholeLine
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

func printFrame(f session.Frame, cols int) {
	for start := 0; start < len(f.Masks); start += cols {
		end := start + cols
		if end > len(f.Masks) {
			end = len(f.Masks)
		}
		fmt.Println(braille.String(f.Masks[start:end]))
	}
	fmt.Println()
}

func runPattern(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pcfg, err := cfg.Pattern()
	if err != nil {
		return err
	}

	runner, err := session.NewRunner(pcfg, cfg.Seed, ticks)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("running %s (%dx%d, %d ms)\n\n", pcfg.Mode, pcfg.Columns, pcfg.Rows, pcfg.IntervalMs)
	}

	rec, err := runner.Run(context.Background(), func(f session.Frame) bool {
		if !quiet {
			printFrame(f, pcfg.Columns)
		}
		return true
	})
	if err != nil {
		return err
	}

	// The display blanks when a run stops.
	if !quiet {
		printFrame(session.Frame{Masks: make([]uint8, pcfg.TotalCells())}, pcfg.Columns)
	}

	fmt.Printf("ticks: %d\n", rec.Ticks())
	fmt.Printf("on ticks: %d\n", rec.OnTicks())
	fmt.Printf("raised dots: %d\n", rec.RaisedDotTotal())

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(rec)
		if err != nil {
			return err
		}
		fmt.Printf("session id: %s\n", id)
	}

	return nil
}

func listModes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASK\tDESCRIPTION")

	for _, mode := range pattern.Modes() {
		mask := "computed"
		if m := mode.FixedMask(); m != 0 {
			mask = fmt.Sprintf("0x%02X", m)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", mode, mask, mode.Label())
	}

	return w.Flush()
}

func listPresetSettings(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tINTERVAL\tMODE\tWHOLE LINE")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		whole := ""
		if p.WholeLine {
			whole = "yes"
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%dms\t%s\t%s\n", name, p.Columns, p.Rows, p.IntervalMs, p.Mode, whole)
	}

	return w.Flush()
}

func runPlan(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("plan: %s\n", p.Name)
	if p.Description != "" {
		fmt.Printf("%s\n", p.Description)
	}
	fmt.Println()

	results, err := plan.Run(context.Background(), p, seed, func(step int, f session.Frame) bool {
		if !quiet {
			cols := p.Steps[step].Columns
			if cols <= 0 {
				cols = config.DefaultColumns
			}
			printFrame(f, cols)
		}
		return true
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODE\tRUNS\tTICKS\tRAISED DOTS")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", res.Label, res.Mode, res.Runs, res.Ticks, res.RaisedDots)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for _, res := range results {
			for _, rec := range res.Recordings {
				id, err := st.Save(rec)
				if err != nil {
					return err
				}
				fmt.Printf("session id: %s (%s)\n", id, res.Label)
			}
		}
	}

	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tMODE\tTICKS\tRAISED DOTS")

	for _, meta := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%d\t%d\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Columns,
			meta.Rows,
			meta.Mode,
			meta.Ticks,
			meta.RaisedDots,
		)
	}

	return w.Flush()
}

func showSession(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("size: %dx%d\n", meta.Columns, meta.Rows)
	fmt.Printf("frames: %d\n\n", len(frames))

	for _, f := range frames {
		phase := "off"
		if f.PhaseOn {
			phase = "on"
		}
		fmt.Printf("tick %d  step %d  %s\n", f.Tick, f.StepIndex, phase)
		printFrame(f, meta.Columns)
	}

	return nil
}

func exportSession(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		return store.ExportJSON(outFile, meta, frames)
	}
	return store.ExportJSONStdout(meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if svgTick < 0 || svgTick >= len(frames) {
		return fmt.Errorf("tick %d out of range (session has %d frames)", svgTick, len(frames))
	}

	svg := export.FrameSVG(frames[svgTick].Masks, meta.Columns, meta.Rows, svgScale)
	if outFile != "" {
		return os.WriteFile(outFile, []byte(svg), 0644)
	}
	fmt.Println(svg)
	return nil
}

func reportSession(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("mode: %s (%s)\n", meta.Mode, modeLabel(meta.Mode))
	fmt.Printf("size: %dx%d, interval %d ms\n\n", meta.Columns, meta.Rows, meta.IntervalMs)

	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = float64(f.RaisedDots())
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("raised dots per tick"),
	)
	fmt.Println(graph)
	fmt.Println()

	onTicks := 0
	raised := 0
	for _, f := range frames {
		if f.PhaseOn {
			onTicks++
		}
		raised += f.RaisedDots()
	}

	fmt.Printf("ticks: %d\n", len(frames))
	fmt.Printf("on ticks: %d\n", onTicks)
	fmt.Printf("raised dots: %d\n", raised)
	if onTicks > 0 {
		fmt.Printf("mean raised per on tick: %.1f\n", float64(raised)/float64(onTicks))
	}

	return nil
}

func modeLabel(name string) string {
	mode, err := pattern.ParseMode(name)
	if err != nil {
		return "unknown"
	}
	return mode.Label()
}
