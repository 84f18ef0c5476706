package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/ephemeris"
	"github.com/san-kum/orbitsim/internal/experiment"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/optim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
)

func newStore() *storage.Store {
	return storage.New(dataDir)
}

func flagFloat(cmd *cobra.Command, name string) float64 {
	v, _ := cmd.Flags().GetFloat64(name)
	return v
}

func flagInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.System, cfg.Reference = args[0], args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.System, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.System))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.System, cfg.Reference = args[0], args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = flagFloat(cmd, "dt")
	}
	if flags.Changed("steps") {
		cfg.Steps = flagInt(cmd, "steps")
	}
	if flags.Changed("record") {
		cfg.Record = flagInt(cmd, "record")
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.LogLevel != logLevel {
		slog.SetDefault(logging.New(cfg.LogLevel, os.Stderr))
	}
	dataDir = cfg.DataDir

	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(cfg.System)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	runner := experiment.NewRunner(integ)
	for _, m := range registry.DefaultMetrics() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s with %s: dt=%g days, %d steps (%.1f years)\n",
		cfg.System, integ.Name(), cfg.Dt, cfg.Steps, cfg.Duration()/365.25)

	result, runErr := runner.Run(ctx, sys, experiment.Config{
		Dt:            cfg.Dt,
		Steps:         cfg.Steps,
		Record:        cfg.Record,
		ValidateState: validate,
	})
	if result == nil {
		return runErr
	}

	fmt.Printf("completed %d steps in %v (%d evaluations)\n", result.StepsTaken, result.Elapsed, result.Evaluations)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %.6e\n", name, result.Metrics[name])
	}

	discrepancy := map[string]float64{}
	if cmp := referenceComparison(registry, cfg, result.Final); cmp != nil {
		fmt.Println()
		fmt.Println(viz.RenderComparison(cmp))
		fmt.Printf("worst discrepancy: %.3e\n", experiment.WorstDiscrepancy(cmp))
		for _, c := range cmp {
			discrepancy[c.Name] = c.Discrepancy
		}
	}

	if save {
		runID, err := newStore().Save(storage.RunMetadata{
			System:      cfg.System,
			Dt:          cfg.Dt,
			Steps:       cfg.Steps,
			Record:      cfg.Record,
			Discrepancy: discrepancy,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return runErr
}

// referenceComparison scores final against the configured reference. It
// returns nil when there is no reference or final is not at its epoch.
func referenceComparison(registry *experiment.Registry, cfg *config.Config, final *dynamo.System) []experiment.BodyComparison {
	if cfg.Reference == "" || !registry.HasReference(cfg.Reference) {
		return nil
	}
	ref, err := registry.GetReference(cfg.Reference)
	if err != nil {
		slog.Warn("reference unavailable", "reference", cfg.Reference, "err", err)
		return nil
	}
	if math.Abs(final.Time()-ref.Time()) > cfg.Dt/2 {
		slog.Warn("run does not end at the reference epoch, skipping comparison",
			"t", final.Time(), "epoch", ref.Time())
		return nil
	}
	return experiment.Compare(final, ref)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	system := args[0]
	registry := experiment.NewRegistry()

	names := args[1:]
	if len(names) == 0 {
		names = registry.ListIntegrators()
	}

	integs := make([]dynamo.Integrator, 0, len(names))
	for _, name := range names {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			return err
		}
		integs = append(integs, integ)
	}

	sys, err := registry.GetSystem(system)
	if err != nil {
		return err
	}

	cfg := experiment.Config{Dt: flagFloat(cmd, "dt"), Steps: flagInt(cmd, "steps")}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := experiment.NewEnsemble(integs, registry.DefaultMetrics).Run(ctx, sys, cfg)
	if err != nil {
		return err
	}

	// without a reference at the final epoch, each scheme is scored against
	// where it started
	target, label := sys, "initial state"
	if registry.HasReference(system) {
		ref, err := registry.GetReference(system)
		if err != nil {
			return err
		}
		if final := results[0].Final; math.Abs(final.Time()-ref.Time()) <= cfg.Dt/2 {
			target, label = ref, "reference"
		} else {
			slog.Warn("run does not end at the reference epoch, scoring against the initial state",
				"t", final.Time(), "epoch", ref.Time())
		}
	}

	summaries := make([]viz.SchemeSummary, len(results))
	for i, res := range results {
		summaries[i] = viz.SchemeSummary{
			Integrator:  res.Integrator,
			Evaluations: res.Evaluations,
			Elapsed:     res.Elapsed,
			Comparison:  experiment.Compare(res.Final, target),
		}
	}

	fmt.Println(viz.Title(fmt.Sprintf("%s: %d steps of %g days", system, cfg.Steps, cfg.Dt)))
	fmt.Printf("relative discrepancy against the %s\n\n", label)
	fmt.Println(viz.RenderSchemeTable(summaries))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := newStore().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tINTEG\tDT\tSTEPS\tEVALS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%d\t%d\t%.1fms\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Dt,
			run.StepsTaken,
			run.Evaluations,
			run.ElapsedMS,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID, body := args[0], args[1]

	st := newStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(tr.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s (%s)\n", meta.System, meta.Integrator)
	fmt.Printf("samples: %d\n\n", len(tr.Times))

	for i, name := range []string{"x", "y", "z"} {
		if !strings.Contains(axis, name) {
			continue
		}
		series, err := tr.Series(body, i)
		if err != nil {
			return err
		}
		fmt.Println(viz.PlotSeries(series, fmt.Sprintf("%s %s (AU)", body, name), 80, 10))
		fmt.Println()
	}

	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tGM (AU^3/d^2)\tDISTANCE (AU)")
	for _, name := range ephemeris.Names() {
		rec, err := ephemeris.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.6e\t%.3f\n", rec.Name, rec.GM, rec.Pos.Norm())
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	system := config.DefaultSystem
	if len(args) > 0 {
		system = args[0]
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(system)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	return viz.RunLive(viz.NewLiveModel(system, sys, integ, flagFloat(cmd, "dt")))
}

// relativeSeries returns the x-y path of body around center from a stored
// trajectory, keeping only the evenly spaced leading samples.
func relativeSeries(tr *storage.Trajectory, body, center string) ([]analysis.Point, error) {
	xs, err := tr.Series(body, 0)
	if err != nil {
		return nil, err
	}
	ys, err := tr.Series(body, 1)
	if err != nil {
		return nil, err
	}
	if center != "" {
		cx, err := tr.Series(center, 0)
		if err != nil {
			return nil, err
		}
		cy, err := tr.Series(center, 1)
		if err != nil {
			return nil, err
		}
		for i := range xs {
			xs[i] -= cx[i]
			ys[i] -= cy[i]
		}
	}

	n := len(tr.Times)
	if n > 2 {
		step := tr.Times[1] - tr.Times[0]
		for i := 2; i < len(tr.Times); i++ {
			if math.Abs(tr.Times[i]-tr.Times[i-1]-step) > 1e-9*step {
				n = i
				break
			}
		}
	}

	points := make([]analysis.Point, n)
	for i := range points {
		points[i] = analysis.Point{T: tr.Times[i], X: xs[i], Y: ys[i]}
	}
	return points, nil
}

func estimatePeriod(cmd *cobra.Command, args []string) error {
	runID, body := args[0], args[1]

	tr, err := newStore().LoadStates(runID)
	if err != nil {
		return err
	}
	points, err := relativeSeries(tr, body, center)
	if err != nil {
		return err
	}
	if len(points) < analysis.MinSamples {
		return analysis.ErrTooFewSamples
	}

	samples := make([]float64, len(points))
	for i, p := range points {
		samples[i] = p.X
	}
	spacing := points[1].T - points[0].T

	fmt.Printf("period of %s in run %s (%d samples every %g days)\n", body, runID, len(points), spacing)
	if p, err := analysis.DominantPeriod(samples, spacing); err == nil {
		fmt.Printf("  spectrum:  %10.2f days (%.3f years)\n", p, p/365.25)
	} else {
		fmt.Printf("  spectrum:  %v\n", err)
	}
	if p, err := analysis.CrossingPeriod(points); err == nil {
		fmt.Printf("  crossings: %10.2f days (%.3f years)\n", p, p/365.25)
	} else {
		fmt.Printf("  crossings: %v\n", err)
	}
	return nil
}

// bodyIndices resolves a body and an optional center body in sys. An empty
// center name gives -1.
func bodyIndices(sys *dynamo.System, body, centerName string) (int, int, error) {
	b, err := sys.Find(body)
	if err != nil {
		return 0, 0, err
	}
	c := -1
	if centerName != "" {
		if c, err = sys.Find(centerName); err != nil {
			return 0, 0, err
		}
	}
	return b, c, nil
}

func traceOrbit(cmd *cobra.Command, args []string) error {
	system, bodies := args[0], args[1:]

	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(system)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	step, n := flagFloat(cmd, "dt"), flagInt(cmd, "steps")
	traces := make([]*analysis.Trace, 0, len(bodies))
	for _, body := range bodies {
		b, c, err := bodyIndices(sys, body, center)
		if err != nil {
			return err
		}
		trace := analysis.TraceOrbit(sys, integ, b, c, step, n)
		if trace == nil || len(trace.Points) == 0 {
			return fmt.Errorf("no orbit traced for %s", body)
		}
		traces = append(traces, trace)
	}

	fmt.Println(viz.Title(fmt.Sprintf("%s orbit (%s)", bodies[0], integ.Name())))
	fmt.Println(traces[0].ASCII(72, 28))
	for _, trace := range traces {
		if p, err := analysis.CrossingPeriod(trace.Points); err == nil {
			fmt.Printf("%-8s period: %.2f days (%.3f years)\n", trace.Body, p, p/365.25)
		} else {
			fmt.Printf("%-8s period: %v\n", trace.Body, err)
		}
	}

	if svgFile == "" {
		return nil
	}
	palette := viz.BodyPalette(len(traces))
	colors := make([]string, len(palette))
	for i, c := range palette {
		colors[i] = string(c)
	}
	f, err := os.Create(svgFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.TracesToSVG(f, traces, colors, 800, 800); err != nil {
		return err
	}
	slog.Info("orbit written", "file", svgFile, "bodies", len(traces))
	return nil
}

func estimateLyapunov(cmd *cobra.Command, args []string) error {
	system, body := args[0], args[1]

	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(system)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}
	b, err := sys.Find(body)
	if err != nil {
		return err
	}

	n := flagInt(cmd, "steps")
	step := flagFloat(cmd, "dt")
	lambda, err := analysis.LyapunovExponent(sys, integ, b, perturb, step, n)
	if err != nil {
		return err
	}

	fmt.Printf("lyapunov exponent of %s over %g days: %.4e per day\n", body, float64(n)*step, lambda)
	if lambda > 0 {
		fmt.Printf("e-folding time: %.1f days\n", 1/lambda)
	}
	return nil
}

func benchSystem(cmd *cobra.Command, args []string) error {
	system := args[0]
	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(system)
	if err != nil {
		return err
	}

	n := flagInt(cmd, "steps")
	fmt.Printf("benchmarking %s, %d steps per scheme\n\n", system, n)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range registry.ListIntegrators() {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			return err
		}
		for _, step := range []float64{1, 10, 36} {
			taken := 0
			start := time.Now()
			err := experiment.NewRunner(integ).RunWithCallback(cmd.Context(), sys, experiment.Config{Dt: step, Steps: n},
				func(*dynamo.System) bool {
					taken++
					return true
				})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%g\t%d\t%v\t%.0f\n",
				name, step, taken-1, elapsed, float64(taken-1)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func tuneStep(cmd *cobra.Command, args []string) error {
	system, scheme := args[0], args[1]

	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(system)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(scheme)
	if err != nil {
		return err
	}

	duration := flagFloat(cmd, "duration")
	target, label := sys, "initial state"
	if registry.HasReference(system) {
		ref, err := registry.GetReference(system)
		if err != nil {
			return err
		}
		if math.Abs(ref.Time()-sys.Time()-duration) < 1e-9 {
			target, label = ref, "reference"
		}
	}

	counts, _ := cmd.Flags().GetIntSlice("counts")
	tol := flagFloat(cmd, "tol")
	choice, tried, err := optim.CheapestStep(cmd.Context(), sys, target, integ, tuneBody, duration, counts, tol)

	fmt.Printf("%s on %s over %g days, scored against the %s\n\n", integ.Name(), system, duration, label)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tDT\tWORST\tEVALS")
	for _, r := range tried {
		fmt.Fprintf(w, "%d\t%g\t%.3e\t%d\n", r.Steps, r.Dt, r.Worst, r.Evaluations)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err != nil {
		return err
	}
	fmt.Printf("\ncheapest: %d steps of %g days (worst %.3e <= %g)\n", choice.Steps, choice.Dt, choice.Worst, tol)
	return nil
}
