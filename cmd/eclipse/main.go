package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/eclipsehunter/internal/analysis"
	"github.com/san-kum/eclipsehunter/internal/audio"
	"github.com/san-kum/eclipsehunter/internal/automation"
	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/eclipse"
	"github.com/san-kum/eclipsehunter/internal/export"
	"github.com/san-kum/eclipsehunter/internal/gui"
	"github.com/san-kum/eclipsehunter/internal/metrics"
	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
	"github.com/san-kum/eclipsehunter/internal/storage"
	"github.com/san-kum/eclipsehunter/internal/viz"
	"github.com/spf13/cobra"
)

const chimeVolume = 0.6

var (
	dataDir    string
	configFile string
	presetName string
	seed       int64
	speed      float64
	fps        int
	threshold  float64
	noSound    bool
	debug      bool

	ticks   int
	save    bool
	outFile string
	svgFile string
	runs    int
	width   int
	height  int
	// sweep and monte carlo
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	perturb    float64

	logFile *os.File
)

// main registers the eclipse commands and runs the terminal UI when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "eclipse",
		Short:             "eclipse hunter orrery",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".eclipse", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&presetName, "preset", "classic", "preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.Float64Var(&threshold, "threshold", config.DefaultThreshold, "eclipse distance threshold (px)")
	pf.BoolVar(&noSound, "no-sound", false, "disable the eclipse chime")
	pf.BoolVar(&debug, "debug", false, "write a debug log to eclipse.log")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal orrery",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "orrery in a 1200x900 window",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print eclipse statistics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 3600, "number of frames")
	runCmd.Flags().BoolVar(&save, "save", false, "save a run report")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata and events",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot moon-planet separation",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the per-tick series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum and event analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "write the moon trajectory as SVG",
		RunE:  traceSVG,
	}
	traceCmd.Flags().IntVar(&ticks, "ticks", 3600, "number of frames")
	traceCmd.Flags().StringVarP(&svgFile, "out", "o", "trace.svg", "output file")
	traceCmd.Flags().IntVar(&width, "width", 800, "image width")
	traceCmd.Flags().IntVar(&height, "height", 600, "image height")

	surveyCmd := &cobra.Command{
		Use:   "survey",
		Short: "run consecutive seeds in parallel",
		RunE:  runSurvey,
	}
	surveyCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	surveyCmd.Flags().IntVar(&ticks, "ticks", 3600, "frames per run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run a scripted batch of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "count eclipses across speed or threshold values",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "threshold", "speed or threshold")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 20, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 80, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 7, "number of values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 3600, "frames per run")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb starting angles and count eclipses",
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 0.2, "max angle perturbation (rad)")
	monteCarloCmd.Flags().IntVar(&ticks, "ticks", 3600, "frames per trial")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tSEED\tSOUND\tANGLES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.1fx\t%d\t%v\t%d\n", name, p.Speed, p.Seed, p.Sound, len(p.StartAngles))
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config-init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, listCmd, showCmd, plotCmd, exportCSVCmd, analyzeCmd,
		traceCmd, surveyCmd, scenarioCmd, sweepCmd, monteCarloCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to eclipse.log with --debug and
// discards it otherwise; the terminal UI owns stdout.
func setupLogging(cmd *cobra.Command, args []string) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile("eclipse.log", "eclipse")
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	logFile = f
	return nil
}

// loadConfig layers defaults < preset < config file < changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(presetName)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("threshold") {
		cfg.Threshold = threshold
	}
	if noSound {
		cfg.Sound = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newInteractive builds a Simulation for a front end and attaches the chime.
// The returned func releases the audio device.
func newInteractive(cmd *cobra.Command) (*sim.Simulation, *config.Config, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Printf("orrery started: seed=%d speed=%.1f threshold=%.0f", s.Seed(), cfg.Speed, cfg.Threshold)

	release := func() {}
	if cfg.Sound {
		chime := audio.NewChime(chimeVolume)
		if err := chime.Start(); err == nil {
			s.AddObserver(chime)
			release = chime.Stop
		}
	}
	return s, cfg, release, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, cfg, release, err := newInteractive(cmd)
	if err != nil {
		return err
	}
	defer release()

	return viz.Run(s, viz.Options{FPS: cfg.FPS, Theme: cfg.Theme, History: cfg.History})
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, cfg, release, err := newInteractive(cmd)
	if err != nil {
		return err
	}
	defer release()

	s.AddObserver(sim.ObserverFunc(func(e sim.Event) {
		log.Printf("eclipse #%d at frame %d (%s, %.1f px)", e.Count, e.Tick, e.Planet, e.Distance)
	}))
	gui.Run(s, cfg.FPS)
	return nil
}

func headlessConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.Sound = false
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := headlessConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("running %d frames (%s)...\n", ticks, presetName)
	start := time.Now()

	result, err := sim.Run(cmd.Context(), cfg, ticks, metrics.Default()...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	printResult(os.Stdout, result)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(presetName, cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func printResult(out io.Writer, r *sim.Result) {
	st := r.Stats
	fmt.Fprintf(out, "seed: %d\n", r.Seed)
	fmt.Fprintf(out, "frames: %d\n", st.Frames)
	fmt.Fprintf(out, "eclipses: %d\n", st.Count)
	fmt.Fprintf(out, "time: %d years, %d months (%d days)\n", st.Years, st.Months, st.Days)
	if st.Count > 0 {
		fmt.Fprintf(out, "avg: %d days between eclipses\n", st.AvgDays)
	}

	if len(r.Metrics) > 0 {
		fmt.Fprintln(out, "\nmetrics:")
		names := make([]string, 0, len(r.Metrics))
		for name := range r.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %.6f\n", name, r.Metrics[name])
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tSPEED\tSEED\tECLIPSES\tAVG DAYS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fx\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Speed,
			run.Seed,
			run.Eclipses,
			run.AvgDays,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*storage.RunMetadata
		Events []sim.Event `json:"events"`
	}{meta, events})
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Separation) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(series.Separation))

	plots := []struct {
		data    []float64
		caption string
	}{
		{series.Offset, "sun-moon minus sun-planet (px, < 0 = moon sunward)"},
		{series.Separation, "moon-planet distance (px)"},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile == "" {
		return st.CopySeries(args[0], os.Stdout)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := st.CopySeries(args[0], f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(runID)
	if err != nil {
		return err
	}
	if len(series.Offset) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s, speed %.1fx\n\n", meta.Preset, meta.Speed)

	ps := analysis.PowerSpectrum(series.Offset)
	plotData := ps[:max(len(ps)/4, 1)]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (offset)"),
	))
	fmt.Println()

	period, _ := analysis.DominantPeriod(series.Offset)
	if period > 0 {
		fmt.Printf("dominant period: %.1f frames (%.2f days)\n", period, period/eclipse.FramesPerDay)
	} else {
		fmt.Println("dominant period: none")
	}

	sep := analysis.Summarize(series.Separation)
	off := analysis.Summarize(series.Offset)
	fmt.Printf("separation: min %.1f  max %.1f  mean %.1f\n", sep.Min, sep.Max, sep.Mean)
	fmt.Printf("offset:     min %.1f  max %.1f  mean %.1f\n", off.Min, off.Max, off.Mean)

	gaps := analysis.EventGaps(events)
	fmt.Printf("eclipses: %d\n", len(events))
	if len(gaps) > 0 {
		total := 0
		for _, g := range gaps {
			total += g
		}
		mean := float64(total) / float64(len(gaps))
		fmt.Printf("mean gap: %.1f frames (%.2f days)\n", mean, mean/eclipse.FramesPerDay)
	}

	var marks []dynamo.Vec2
	for _, e := range events {
		if e.Tick >= 1 && e.Tick <= len(series.Trace) {
			marks = append(marks, series.Trace[e.Tick-1])
		}
	}
	fmt.Println()
	fmt.Println(analysis.TraceToASCII(series.Trace, marks, 80, 30))

	return nil
}

func traceSVG(cmd *cobra.Command, args []string) error {
	cfg, err := headlessConfig(cmd)
	if err != nil {
		return err
	}

	result, err := sim.Run(cmd.Context(), cfg, ticks)
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(result.Trace, result.Events, orrery.DefaultCatalog(), width, height, orrery.LightBlue.Hex())
	if svg == "" {
		return fmt.Errorf("trace too short: %d frames", len(result.Trace))
	}
	if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames, %d eclipses)\n", svgFile, len(result.Trace), len(result.Events))
	return nil
}

func runSurvey(cmd *cobra.Command, args []string) error {
	cfg, err := headlessConfig(cmd)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(cfg, runs, cfg.Seed)
	ens.Metrics = metrics.Default

	fmt.Printf("surveying %d seeds x %d frames...\n", runs, ticks)
	start := time.Now()
	results, err := ens.Run(cmd.Context(), ticks)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tECLIPSES\tFIRST\tAVG DAYS\tCLOSEST\tALIGNED")
	total := 0
	for _, r := range results {
		first := "-"
		if len(r.Events) > 0 {
			first = fmt.Sprintf("%d", r.Events[0].Tick)
		}
		total += r.Stats.Count
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%.1f\t%.4f\n",
			r.Seed, r.Stats.Count, first, r.Stats.AvgDays,
			r.Metrics["closest_approach"], r.Metrics["alignment_ratio"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(results) > 0 {
		fmt.Printf("\nmean eclipses per run: %.2f\n", float64(total)/float64(len(results)))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	results, err := automation.RunScenario(cmd.Context(), sc, st, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tFRAMES\tECLIPSES\tAVG DAYS\tRUN")
	for i, r := range results {
		name := r.Step.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			name, r.Step.Preset, r.Result.Ticks, r.Result.Stats.Count, r.Result.Stats.AvgDays, r.RunID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.ParameterSweep{
		Preset:   presetName,
		Param:    sweepParam,
		ParamMin: sweepMin,
		ParamMax: sweepMax,
		NumSteps: sweepSteps,
		Ticks:    ticks,
		Seed:     seed,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, os.Stderr)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tECLIPSES\tCLOSEST\tALIGNED\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.2f\t%d\t%.1f\t%.4f\n", r.ParamValue, r.Eclipses, r.ClosestApproach, r.AlignmentRatio)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	mc := &automation.MonteCarloConfig{
		Preset:       presetName,
		Perturbation: perturb,
		NumTrials:    trials,
		Ticks:        ticks,
		Seed:         seed,
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, os.Stderr)
	if err != nil {
		return err
	}

	lo, hi, mean := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("eclipses per trial: min %d, max %d, mean %.2f\n", lo, hi, mean)
	return nil
}
