// Command hoopshot solves basketball launcher trajectories from the command line.
//
// The run subcommand keeps the batch contract shared with the WASM build: it
// reads a BatchInput JSON from a file argument (or stdin) and writes the
// BatchLog JSON to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cxd309/hoopshot/internal/config"
	"github.com/cxd309/hoopshot/internal/logging"
)

// app holds the global flags and the logger shared by all subcommands.
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "hoopshot",
		Short: "Basketball launcher trajectory solver",
		Long: `hoopshot finds the launch angle and minimum speed that carry a ball from
the launcher to a target height at a given horizontal distance, assuming
uniform gravity and no air resistance.

Angles are searched on a 0.1° grid between 15° and 75°; the low arc covers
15°–45° and the high arc 45°–75°.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.Logging, a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "hoopshot.yaml", "Config file (defaults apply when missing)")

	rootCmd.AddCommand(
		newRunCmd(a),
		newSolveCmd(a),
		newSimulateCmd(a),
		newTableCmd(a),
		newAimCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
