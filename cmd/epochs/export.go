package main

import (
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-epochs/internal/app"
	"github.com/coreman2200/funtimes-epochs/internal/driver/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the show to a PNG sequence and/or an animated GIF",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("dir", "", "directory for frame_NNNNN.png files")
	f.String("gif", "", "animated GIF path")
	f.Float64("seconds", 0, "show time to render")
	f.Int("export-fps", 0, "frames per second of show time")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := prepare(cmd, os.Stderr)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("dir") {
		cfg.Export.Dir, _ = fl.GetString("dir")
	}
	if fl.Changed("gif") {
		cfg.Export.GIF, _ = fl.GetString("gif")
	}
	if fl.Changed("seconds") {
		cfg.Export.Seconds, _ = fl.GetFloat64("seconds")
	}
	if fl.Changed("export-fps") {
		cfg.Export.FPS, _ = fl.GetInt("export-fps")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w, err := export.NewWriter(cfg.Export.Dir, cfg.Export.GIF, cfg.Export.FPS)
	if err != nil {
		return err
	}
	core, err := app.InitCore(cfg, w)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	n := int(math.Round(cfg.Export.Seconds * float64(cfg.Export.FPS)))
	log.Info().Int("frames", n).Int("fps", cfg.Export.FPS).Msg("exporting")
	runErr := core.Cond.RunFrames(ctx, n, 1/float64(cfg.Export.FPS))
	if err := w.Close(); err != nil {
		return err
	}
	log.Info().Int("written", w.Written()).Msg("export done")
	return runErr
}
