package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordvolt/gridcore/internal/clock"
	"github.com/nordvolt/gridcore/internal/runner"
	"github.com/nordvolt/gridcore/internal/world"
)

var (
	replayBaseDir string
	replayDay     string
)

func init() {
	replayCmd.Flags().StringVar(&replayBaseDir, "replay-base-dir", "", "directory holding one CSV subdirectory per historical day (required)")
	replayCmd.Flags().StringVar(&replayDay, "day", "", "ISO date (YYYY-MM-DD) of the historical day to replay (required)")
	replayCmd.MarkFlagRequired("replay-base-dir")
	replayCmd.MarkFlagRequired("day")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run one historical day from a CSV replay source instead of the stochastic models",
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.UseSimulation = false
	cfg.ReplayBaseDir = replayBaseDir
	cfg.Day = replayDay
	if err := cfg.Validate(); err != nil {
		return err
	}

	w, err := world.New(cfg)
	if err != nil {
		return err
	}
	r := runner.New(w)
	r.SimulateUnpaced(clock.SecondsPerDay)

	snap := w.LastSnapshot()
	fmt.Printf(
		"replay %s: frequency=%.3fHz band=%s bessPowerMW=%.1f netCashflowEur=%.2f\n",
		cfg.ReplayDayDir(), snap.Frequency.FrequencyHz, snap.Band, snap.BESS.TotalPowerMW, snap.CumulativeNetCashEur,
	)
	return nil
}
