package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	logFile    string
	configFile string
	preset     string
	seed       int64
	width      float64
	height     float64
	fps        int
	sound      bool
	spheres    int
	frames     int
	numRuns    int
	outPath    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// newRootCmd registers every command. With no subcommand the root opens the
// window frontend.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bounce",
		Short:         "sphere physics sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bounce", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	addSessionFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&configFile, "config", "", "session file (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "start from a built-in preset")
		cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
		cmd.Flags().Float64Var(&width, "width", 1920, "viewport width")
		cmd.Flags().Float64Var(&height, "height", 1080, "viewport height")
		cmd.Flags().IntVar(&fps, "fps", 60, "frames per second")
		cmd.Flags().BoolVar(&sound, "sound", false, "start with collision sound on")
		cmd.Flags().IntVar(&spheres, "spheres", 0, "extra random spheres to spawn")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless session and record it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addSessionFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a session in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSessionFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run a session in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSessionFlags(guiCmd)
	addSessionFlags(rootCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run independent seeded sessions in parallel",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addSessionFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", 1000, "frames per session")
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of sessions")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "show session and global statistics",
		Args:  cobra.NoArgs,
		RunE:  showStats,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot collision counts of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "collision rate spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, benchCmd, statsCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, presetsCmd)
	return rootCmd
}
