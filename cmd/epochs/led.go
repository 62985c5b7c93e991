package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-epochs/internal/app"
	"github.com/coreman2200/funtimes-epochs/internal/led"
)

var ledCmd = &cobra.Command{
	Use:   "led",
	Short: "Mirror the show onto a WS281x matrix over SPI",
	RunE:  runLED,
}

func init() {
	f := ledCmd.Flags()
	f.String("spi", "", "SPI port name (empty = first available)")
	f.Float64("brightness", 0, "LED brightness 0..1")
	rootCmd.AddCommand(ledCmd)
}

func runLED(cmd *cobra.Command, _ []string) error {
	cfg, err := prepare(cmd, os.Stderr)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("spi") {
		cfg.LED.SPI, _ = fl.GetString("spi")
	}
	if fl.Changed("brightness") {
		cfg.LED.Brightness, _ = fl.GetFloat64("brightness")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	drawer, hw, err := led.Open(cfg.LED)
	if err != nil {
		return err
	}
	strip := led.FromConfig(cfg.LED, drawer)
	defer strip.Close()
	log.Info().Bool("spi", hw).Int("leds", strip.Layout.Count()).Str("drawer", drawer.String()).Msg("led output")

	core, err := app.InitCore(cfg, strip)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	watchConfig(ctx, cmd, core.Apply)
	return core.Cond.Run(ctx)
}
