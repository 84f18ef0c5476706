package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/experiment"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	integrator string
	configFile string
	preset     string
	save       bool
	validate   bool
	center     string
	perturb    float64
	axis       string
	svgFile    string
	tuneBody   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "solar system integration lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(logLevel, os.Stderr))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker(experiment.NewRegistry(), 1)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "integrate a system and score it against its reference",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integration scheme (naive, averaged, parabolic or 1, 2, 3)")
	runCmd.Flags().Float64("dt", config.DefaultDt, "time step in days")
	runCmd.Flags().Int("steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().Int("record", config.DefaultRecord, "keep a snapshot every n steps (0 keeps first and last)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or ini)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&save, "save", true, "store the run under the data directory")
	runCmd.Flags().BoolVar(&validate, "validate", false, "stop at the first non-finite state")

	compareCmd := &cobra.Command{
		Use:   "compare [system] [integrator1] [integrator2] ...",
		Short: "compare schemes on the same system",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64("dt", config.DefaultDt, "time step in days")
	compareCmd.Flags().Int("steps", config.DefaultSteps, "number of steps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [body]",
		Short: "plot the coordinates of a body over a stored run",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&axis, "axis", "xyz", "coordinates to plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run positions to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newStore().ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and positions to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newStore().ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets for a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for system: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range presets {
				p := config.GetPreset(args[0], name)
				fmt.Printf("  %-8s %-10s dt=%g steps=%d\n", name, p.Integrator, p.Dt, p.Steps)
			}
			return nil
		},
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the tabulated bodies",
		RunE:  listBodies,
	}

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "watch a system evolve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integration scheme")
	liveCmd.Flags().Float64("dt", 1, "time step in days")

	periodCmd := &cobra.Command{
		Use:   "period [run_id] [body]",
		Short: "estimate the orbital period of a body from a stored run",
		Args:  cobra.ExactArgs(2),
		RunE:  estimatePeriod,
	}
	periodCmd.Flags().StringVar(&center, "center", "Sun", "body the orbit is measured around (empty for barycentric)")

	orbitCmd := &cobra.Command{
		Use:   "orbit [system] [body] [body...]",
		Short: "trace the orbits of one or more bodies",
		Args:  cobra.MinimumNArgs(2),
		RunE:  traceOrbit,
	}
	orbitCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integration scheme")
	orbitCmd.Flags().Float64("dt", 1, "time step in days")
	orbitCmd.Flags().Int("steps", 730, "number of steps")
	orbitCmd.Flags().StringVar(&center, "center", "Sun", "body the orbit is drawn around (empty for barycentric)")
	orbitCmd.Flags().StringVar(&svgFile, "svg", "", "also write the orbits to an svg file")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [system] [body]",
		Short: "estimate the largest Lyapunov exponent for a perturbed body",
		Args:  cobra.ExactArgs(2),
		RunE:  estimateLyapunov,
	}
	lyapunovCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integration scheme")
	lyapunovCmd.Flags().Float64("dt", 1, "time step in days")
	lyapunovCmd.Flags().Int("steps", 365, "number of steps")
	lyapunovCmd.Flags().Float64Var(&perturb, "d0", 1e-8, "initial separation in AU")

	benchCmd := &cobra.Command{
		Use:   "bench [system]",
		Short: "measure step throughput of every scheme",
		Args:  cobra.ExactArgs(1),
		RunE:  benchSystem,
	}
	benchCmd.Flags().Int("steps", 1000, "number of steps")

	tuneCmd := &cobra.Command{
		Use:   "tune [system] [integrator]",
		Short: "find the fewest steps that keep a run within tolerance",
		Args:  cobra.ExactArgs(2),
		RunE:  tuneStep,
	}
	tuneCmd.Flags().Float64("duration", 36000, "simulated span in days")
	tuneCmd.Flags().IntSlice("counts", []int{250, 500, 1000, 2000, 4000}, "step counts to try")
	tuneCmd.Flags().Float64("tol", 1e-3, "largest accepted relative discrepancy")
	tuneCmd.Flags().StringVar(&tuneBody, "body", "", "score only this body")

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, bodiesCmd, liveCmd, periodCmd, orbitCmd, lyapunovCmd, benchCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
