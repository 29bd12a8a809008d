package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trails/internal/analysis"
	"github.com/san-kum/trails/internal/automation"
	"github.com/san-kum/trails/internal/config"
	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/export"
	"github.com/san-kum/trails/internal/gui"
	"github.com/san-kum/trails/internal/metrics"
	"github.com/san-kum/trails/internal/optim"
	"github.com/san-kum/trails/internal/storage"
	"github.com/san-kum/trails/internal/surface"
	"github.com/san-kum/trails/internal/tui"
	"github.com/san-kum/trails/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	verbose    bool

	winWidth  int
	winHeight int

	// headless runs
	frames       int
	scenarioFile string
	width        int
	height       int
	tolerance    float64
	outFile      string
	dots         bool
	save         bool

	// sweep
	grid      []string
	objective string
	runs      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "trails",
		Short:        "pointer-driven spring trails",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "yaml config file")
	pf.StringVar(&preset, "preset", "", "named preset (see `trails presets`)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log lifecycle events to stderr")
	pf.StringVar(&dataDir, "data", ".trails", "data directory for saved runs")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "draw in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&winWidth, "width", gui.DefaultWidth, "window width")
	guiCmd.Flags().IntVar(&winHeight, "height", gui.DefaultHeight, "window height")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "draw in the terminal with the mouse",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "play a scenario headless and write the last frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "trails.svg", "output file")
	exportCmd.Flags().BoolVar(&dots, "dots", false, "export the terminal rendering as dots instead of vector paths")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "play a scenario headless and plot per-frame metrics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().Float64Var(&tolerance, "tolerance", 1, "mean anchor distance counted as settled")
	statsCmd.Flags().BoolVar(&save, "save", false, "save the run under --data")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "name\ttrails\tsize\tfriction\ttension\twidth")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%.3f\t%.0f\n", name, cfg.Trails, cfg.Size, cfg.Friction, cfg.Tension, cfg.LineWidth)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd)
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
	configCmd.AddCommand(configInitCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metrics of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search config parameters against a headless metric",
		Example: `  trails sweep --grid friction=0.3,0.5,0.7 --grid tension=0.95,0.99
  trails sweep --grid spring_min=0.3,0.45 --metric max_distance --runs 8`,
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&grid, "grid", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&objective, "metric", "settled_at", "metric to minimise")
	sweepCmd.Flags().IntVar(&runs, "runs", 4, "seeds per grid point")
	sweepCmd.Flags().Float64Var(&tolerance, "tolerance", 1, "mean anchor distance counted as settled")

	for _, c := range []*cobra.Command{exportCmd, statsCmd, sweepCmd} {
		c.Flags().IntVar(&frames, "frames", 600, "display refreshes to simulate")
		c.Flags().StringVar(&scenarioFile, "scenario", "", "yaml scenario (default: figure eight)")
		c.Flags().IntVar(&width, "width", 800, "viewport width")
		c.Flags().IntVar(&height, "height", 600, "viewport height")
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, exportCmd, statsCmd, sweepCmd, presetsCmd, configCmd, runsCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "trails: ", log.Ltime|log.Lmicroseconds)
}

// resolveConfig applies --config, then --preset, then --seed. A config
// file wins over a preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		name = "custom"
		err  error
	)
	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
	case preset != "":
		cfg, err = config.GetPreset(preset)
		if err != nil {
			return nil, "", err
		}
		name = preset
	default:
		cfg = config.DefaultConfig()
		name = "classic"
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, name, nil
}

func runSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{
		Config: cfg,
		Name:   name,
		Seed:   runSeed(cfg),
		Logger: newLogger(),
		Width:  winWidth,
		Height: winHeight,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	opts := tui.Options{Logger: newLogger()}
	if configFile != "" || preset != "" {
		cfg, name, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		opts.Config, opts.Name = cfg, name
		opts.Seed = runSeed(cfg)
	} else {
		opts.Seed = seed
		if seed == 0 {
			opts.Seed = time.Now().UnixNano()
		}
	}
	return tui.Run(opts)
}

func loadScenario() (*automation.Scenario, error) {
	if scenarioFile != "" {
		return automation.LoadScenario(scenarioFile)
	}
	return automation.DefaultScenario(automation.Viewport{Width: width, Height: height}, frames), nil
}

// bind builds a manager over s for cfg and binds it to the scenario's
// viewport.
func bind(cfg *config.Config, s surface.Surface, sc *automation.Scenario, seed int64) (*engine.Manager, *engine.FrameQueue, error) {
	vp := sc.Viewport.Size()
	if vp.W == 0 || vp.H == 0 {
		vp = surface.Size{W: width, H: height}
	}

	reg := surface.NewRegistry()
	reg.Register(cfg.SurfaceID, s)
	queue := &engine.FrameQueue{}
	ctl := engine.NewController(cfg.Options(), rand.New(rand.NewSource(seed)))
	mgr := engine.NewManager(ctl, reg, queue, newLogger())
	if !mgr.Bind(cfg.SurfaceID, vp) {
		return nil, nil, automation.ErrNotBound
	}
	return mgr, queue, nil
}

// headless plays the scenario chosen by the flags against s.
func headless(ctx context.Context, cfg *config.Config, s surface.Surface, ms []metrics.Metric) (*automation.Result, error) {
	sc, err := loadScenario()
	if err != nil {
		return nil, err
	}
	cfg.Seed = runSeed(cfg)
	mgr, queue, err := bind(cfg, s, sc, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return automation.RunHeadless(ctx, mgr, queue, sc, cfg.FPS, ms)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var out string
	if dots {
		canvas := viz.NewCanvas(1, 1)
		if _, err := headless(ctx, cfg, canvas, nil); err != nil {
			return err
		}
		out = export.CanvasToSVG(canvas)
	} else {
		svg := export.NewSVG(surface.Size{})
		if _, err := headless(ctx, cfg, svg, nil); err != nil {
			return err
		}
		out = svg.String()
	}

	if err := os.WriteFile(outFile, []byte(out), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rec := surface.NewRecorder(surface.Size{}, 1)
	res, err := headless(ctx, cfg, rec, metrics.Standard(tolerance))
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", res.Scenario)
	fmt.Printf("preset: %s\n", name)
	fmt.Printf("frames: %d (%d drawn)\n\n", res.Frames, res.Rendered)

	for _, plot := range []struct{ metric, caption string }{
		{"mean_distance", "mean node distance to anchor"},
		{"kinetic_energy", "kinetic energy"},
		{"hue", "stroke hue"},
	} {
		s := res.Lookup(plot.metric)
		if s == nil || len(s.Values) == 0 {
			continue
		}
		fmt.Println(asciigraph.Plot(s.Values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plot.caption),
		))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "metric\tvalue")
	for _, s := range res.Series {
		fmt.Fprintf(w, "%s\t%.4f\n", s.Metric.Name(), s.Metric.Value())
		if ke, ok := s.Metric.(*metrics.KineticEnergy); ok {
			fmt.Fprintf(w, "kinetic_peak\t%.4f\n", ke.Peak())
		}
	}
	if s := res.Lookup("mean_distance"); s != nil {
		fmt.Fprintf(w, "wobble_period\t%.1f frames\n", analysis.DominantPeriod(analysis.Tail(s.Values, 0.5)))
	}
	fmt.Fprintf(w, "strokes/frame\t%d\n", rec.Strokes)
	fmt.Fprintf(w, "curves/frame\t%d\n", rec.Curves)
	if err := w.Flush(); err != nil {
		return err
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(name, cfg.Seed, res)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run: %s\n", id)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "id\tpreset\tscenario\tframes\tsettled_at\ttime")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%s\n", r.ID, r.Preset, r.Scenario, r.Rendered, r.Metrics["settled_at"], r.Timestamp.Format(time.DateTime))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, names, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", meta.Rendered)

	for _, name := range names {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
		fmt.Println()
	}
	return nil
}

func parseGrid(args []string) ([]string, [][]float64, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("at least one --grid is required (parameters: %s)", strings.Join(config.ParamNames(), ", "))
	}
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, list, ok := strings.Cut(arg, "=")
		if !ok || list == "" {
			return nil, nil, fmt.Errorf("bad --grid %q, want name=v1,v2", arg)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad --grid %q: %w", arg, err)
			}
			vals = append(vals, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	sc, err := loadScenario()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	seedStart := runSeed(cfg)
	eval := func(ctx context.Context, c *config.Config) (float64, error) {
		ens := automation.NewEnsemble(func(seed int64) (*engine.Manager, *engine.FrameQueue, error) {
			return bind(c, surface.NewRecorder(surface.Size{}, 1), sc, seed)
		}, runs, seedStart, c.FPS)
		ens.Metrics = func() []metrics.Metric { return metrics.Standard(tolerance) }

		results, err := ens.Run(ctx, sc)
		if err != nil {
			return 0, err
		}
		if objective == "settled_at" {
			// never settling scores as the whole run
			total := 0.0
			for _, r := range results {
				v := r.Lookup(objective).Metric.Value()
				if v < 0 {
					v = float64(sc.Frames)
				}
				total += v
			}
			return total / float64(len(results)), nil
		}
		score, ok := automation.Mean(results, objective)
		if !ok {
			return 0, fmt.Errorf("unknown metric %q", objective)
		}
		return score, nil
	}

	best, score, points, err := optim.NewGridSearch(names, ranges).Search(ctx, cfg, eval)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.Join(names, "\t"), objective)
	for _, p := range optim.Ranked(points) {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", p.Params[n])
		}
		fmt.Fprintf(w, "%.4f\n", p.Score)
	}
	for _, p := range points {
		if p.Err != nil {
			newLogger().Printf("skipped %v: %v", p.Params, p.Err)
		}
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest for %s over %d seeds: %v (%s = %.4f)\n", name, runs, best, objective, score)
	return nil
}
