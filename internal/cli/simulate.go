package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordvolt/gridcore/internal/clock"
	"github.com/nordvolt/gridcore/internal/runner"
	"github.com/nordvolt/gridcore/internal/world"
)

var simulateDays int

func init() {
	simulateCmd.Flags().IntVar(&simulateDays, "days", 1, "number of simulated days to run back-to-back")
	rootCmd.AddCommand(simulateCmd)
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulator unpaced for a fixed number of days and print a summary",
	RunE:  runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if simulateDays < 1 {
		return fmt.Errorf("--days must be >= 1, got %d", simulateDays)
	}

	w, err := world.New(cfg)
	if err != nil {
		return err
	}
	r := runner.New(w)

	for day := 0; day < simulateDays; day++ {
		r.SimulateUnpaced(clock.SecondsPerDay)
		snap := w.LastSnapshot()
		fmt.Printf(
			"day %d: frequency=%.3fHz band=%s bessPowerMW=%.1f netCashflowEur=%.2f\n",
			day+1, snap.Frequency.FrequencyHz, snap.Band, snap.BESS.TotalPowerMW, snap.CumulativeNetCashEur,
		)
		if w.Phase == world.PhaseDayComplete {
			w.ResetToStartOfDay()
		}
	}
	return nil
}
