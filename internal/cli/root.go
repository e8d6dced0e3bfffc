// Package cli wires the gridcore binary's subcommands: "serve" runs the
// paced, websocket-streamed orchestrator; "simulate" runs it unpaced
// for a fixed number of days and prints a summary, per spec §5's two
// pacing modes.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gridcore",
	Short: "National grid tick-loop simulator",
	Long: `gridcore runs the deterministic, fixed-step national electricity
system simulator: weather, demand, supply, dispatch, frequency/reserves,
BESS, and imbalance settlement, advanced one second at a time.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML run config (defaults built in if omitted)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
