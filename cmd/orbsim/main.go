package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/diag"
	"github.com/san-kum/orbsim/internal/experiment"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/optim"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/telemetry"
	"github.com/san-kum/orbsim/internal/vecmath"
	"github.com/san-kum/orbsim/internal/viz"
)

var (
	settings config.Settings
	shutdown = func(context.Context) error { return nil }

	dataDir     string
	configFile  string
	preset      string
	dt          float64
	duration    float64
	frames      int
	track       string
	perTick     int
	format      string
	save        bool
	nudge       float64
	about       string
	target      string
	headingStep float64
	throttles   []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "orbsim",
		Short:             "2D gravitational n-body simulator",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shutdown(context.Background())
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $ORBSIM_DATA_DIR or .orbsim)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store its trajectory",
		Args:  cobra.NoArgs,
		RunE:  runScenario,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", experiment.DefaultFrames, "number of recorded samples")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "speculatively step a scenario and show where the tracked body goes",
		Args:  cobra.NoArgs,
		RunE:  previewScenario,
	}
	scenarioFlags(previewCmd)
	previewCmd.Flags().BoolVar(&save, "save", false, "store the preview trajectory")
	previewCmd.Flags().Float64Var(&nudge, "sensitivity", 0, "also report divergence under a position perturbation of this size")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "search craft heading and throttle for the closest approach to a target",
		Args:  cobra.NoArgs,
		RunE:  planBurn,
	}
	scenarioFlags(planCmd)
	planCmd.Flags().StringVar(&target, "target", "", "body to approach")
	planCmd.Flags().Float64Var(&headingStep, "heading-step", 15, "heading resolution in degrees")
	planCmd.Flags().Float64SliceVar(&throttles, "throttles", []float64{0.25, 0.5, 1}, "throttle settings to try")
	_ = planCmd.MarkFlagRequired("target")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbit analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&about, "about", "", "reference body (default origin)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&perTick, "speed", 10, "dt increments integrated per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&track, "track", "", "only plot this body")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, meta or svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUNITS\tBODIES\tTRACK")
			for _, name := range config.ListPresets() {
				sc := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, sc.Units, len(sc.Bodies), sc.Track)
			}
			return w.Flush()
		},
	}

	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "list gravitational constants per distance unit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, u := range orbital.Units() {
				g, _ := orbital.GravityForUnit(u)
				fmt.Printf("%-3s %g\n", u, g)
			}
		},
	}

	rootCmd.AddCommand(runCmd, previewCmd, planCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, presetsCmd, unitsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in scenario")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&track, "track", "", "body to preview")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	settings, err = config.LoadSettings()
	if err != nil {
		return err
	}
	log.SetPrefix(settings.LogPrefix)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	if dataDir == "" {
		dataDir = settings.DataDir
	}

	shutdown, err = telemetry.Setup(cmd.Context(), settings, "orbsim")
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	}
	return nil
}

// loadScenario applies preset, then config file, then explicit flags.
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	sc := config.DefaultScenario()
	if preset != "" {
		sc = config.GetPreset(preset)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		sc = loaded
	}

	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		sc.Duration = duration
	}
	if cmd.Flags().Changed("track") {
		sc.Track = track
	}
	return sc, nil
}

func build(sc *config.Scenario, extra ...orbital.DiagnosticSink) (*orbital.Simulation, error) {
	sim, err := experiment.NewRegistry().Build(sc)
	if err != nil {
		return nil, err
	}

	var sinks diag.Multi
	if settings.Diagnostics {
		sinks = append(sinks, diag.NewLogger(log.Default()))
	}
	sinks = append(sinks, extra...)
	if len(sinks) > 0 {
		sim.SetDiagnostics(sinks)
	}
	return sim, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sim, err := build(sc)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(experiment.Config{Scenario: sc, Frames: frames})
	if err := exp.Setup(sim, registry.DefaultMetrics(sc)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s...\n", sc.Name)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Kind:     storage.KindRun,
		Scenario: sc.Name,
		Units:    sc.Units,
		Gravity:  sim.GravityConstant(),
		Dt:       sc.Dt,
		Duration: sc.Duration,
		Track:    sc.Track,
	}, result)
	if err != nil {
		return err
	}

	rows := [][2]string{
		{"run id", runID},
		{"wall time", elapsed.String()},
		{"samples", fmt.Sprint(len(result.Times))},
		{"sim time", fmt.Sprintf("%g s", sim.Elapsed())},
	}
	rows = append(rows, viz.MetricRows(result.Metrics)...)
	fmt.Println(viz.Summary(sc.Name, rows))
	return nil
}

func previewScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	if sc.Track == "" {
		return fmt.Errorf("scenario %s: no tracked body, use --track", sc.Name)
	}

	if sc.Preview.Dt <= 0 {
		sc.Preview.Dt = sc.Dt
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ctx, span := telemetry.Tracer().Start(ctx, "orbsim.preview", trace.WithAttributes(
		attribute.String("scenario", sc.Name),
		attribute.String("track", sc.Track),
		attribute.Float64("dt", sc.Preview.Dt),
		attribute.Float64("duration", sc.Preview.Duration),
	))
	defer span.End()

	sim, err := build(sc, diag.NewSpan(span))
	if err != nil {
		return err
	}

	p := sim.Speculate(ctx, sc.Preview.Dt, sc.Preview.Duration, orbital.ID(sc.Track))
	traj, err := p.Wait()
	span.SetAttributes(attribute.String("phase", p.Phase().String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, orbital.ErrCanceled) {
			log.Printf("preview canceled after %d increments", len(traj))
		}
		return err
	}

	body, _ := sim.Get(orbital.ID(sc.Track))
	fmt.Println(viz.PlotPath(traj, 60, 16))
	fmt.Println(viz.Summary("preview "+sc.Track, [][2]string{
		{"from", body.Position().String()},
		{"to", traj[len(traj)-1].String()},
		{"increments", fmt.Sprint(len(traj))},
		{"phase", p.Phase().String()},
	}))

	if nudge > 0 {
		res, err := analysis.Sensitivity(ctx, sim, orbital.ID(sc.Track), nudge, sc.Preview.Dt, sc.Preview.Duration)
		if err != nil {
			return err
		}
		fmt.Println(viz.Summary("sensitivity", [][2]string{
			{"perturbation", fmt.Sprintf("%g", res.InitialSeparation)},
			{"separation", fmt.Sprintf("%.6g", res.FinalSeparation)},
			{"exponent", fmt.Sprintf("%.6g /s", res.Exponent)},
		}))
	}

	if !save {
		return nil
	}
	result, err := experiment.Preview(ctx, sim, sc)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Kind:     storage.KindPreview,
		Scenario: sc.Name,
		Units:    sc.Units,
		Gravity:  sim.GravityConstant(),
		Dt:       sc.Preview.Dt,
		Duration: sc.Preview.Duration,
		Track:    sc.Track,
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sim, err := build(sc)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := viz.NewModel(ctx, sim, sc, perTick)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tKIND\tSCENARIO\tTIME\tDURATION\tDT\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%gs\t%gs\t%d\n",
			run.ID,
			run.Kind,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Bodies),
		)
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
	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(result.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s)\n", meta.Scenario, meta.Kind)
	fmt.Printf("samples: %d\n\n", len(result.Times))

	ids := result.IDs
	if track != "" {
		ids = []orbital.ID{orbital.ID(track)}
	}
	for _, id := range ids {
		traj, ok := result.Track(id)
		if !ok {
			return fmt.Errorf("run %s has no body %s", runID, id)
		}
		fmt.Println(viz.PlotTrajectory(string(id), traj, 10, 80))
		fmt.Println()
		fmt.Println(viz.PlotPath(traj, 60, 16))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	switch format {
	case "meta":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	case "json":
		result, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		return storage.ExportJSON(os.Stdout, *meta, result)
	case "svg":
		result, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		return export.TrajectorySVG(os.Stdout, result, 800, 800)
	default:
		return fmt.Errorf("unknown format: %s (available: json, meta, svg)", format)
	}
}

func planBurn(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	if sc.Track == "" {
		return fmt.Errorf("scenario %s: no craft to plan for, use --track", sc.Name)
	}
	sim, err := build(sc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	plan, err := optim.PlanBurn(ctx, sim, orbital.ID(sc.Track), orbital.ID(target),
		sc.Preview.Dt, sc.Preview.Duration, optim.Headings(headingStep), throttles)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary("burn "+sc.Track+" -> "+target, [][2]string{
		{"heading", fmt.Sprintf("%g deg", plan.Heading)},
		{"throttle", fmt.Sprintf("%g", plan.Throttle)},
		{"closest", fmt.Sprintf("%.6g %s", plan.Closest, sc.Units)},
		{"search time", time.Since(start).String()},
	}))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	dt, ok := analysis.SampleSpacing(result.Times)
	if !ok {
		return fmt.Errorf("run %s: not enough samples", runID)
	}

	var ref []vecmath.Vector
	if about != "" {
		if ref, ok = result.Track(orbital.ID(about)); !ok {
			return fmt.Errorf("run %s has no body %s", runID, about)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIAPSIS\tAPOAPSIS\tECCENTRICITY\tPERIOD")
	for _, id := range result.IDs {
		if string(id) == about {
			continue
		}
		traj, _ := result.Track(id)
		aps, err := analysis.FindApsides(traj, ref)
		if err != nil {
			return err
		}
		period := "-"
		if p, ok := analysis.OrbitalPeriod(traj, ref, dt); ok {
			period = fmt.Sprintf("%.6g s", p)
		}
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.4f\t%s\n", id, aps.Periapsis, aps.Apoapsis, aps.Eccentricity(), period)
	}
	return w.Flush()
}
