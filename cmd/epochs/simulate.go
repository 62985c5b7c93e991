package main

import (
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-epochs/internal/app"
	"github.com/coreman2200/funtimes-epochs/internal/driver/fake"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the show headless and print a per-frame summary",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64("seconds", 15, "show time to simulate")
	simulateCmd.Flags().Int("every", 60, "print one line per N frames")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := prepare(cmd, os.Stderr)
	if err != nil {
		return err
	}
	seconds, _ := cmd.Flags().GetFloat64("seconds")
	every, _ := cmd.Flags().GetInt("every")

	drv := &fake.Driver{Out: cmd.OutOrStdout(), Every: every}
	core, err := app.InitCore(cfg, drv)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	n := int(math.Round(seconds * float64(cfg.FPS)))
	return core.Cond.RunFrames(ctx, n, 1/float64(cfg.FPS))
}
