package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-epochs/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "epochs",
	Short: "Earth epochs timed slideshow",
	Long: "Epochs plays a ten-stage animated history of the Earth, ten seconds per stage,\n" +
		"rendered to a terminal, a browser preview, an LED matrix or image files.",
	SilenceUsage: true,
}

func init() {
	addRootFlags(rootCmd)
}

func addRootFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("config", "epochs.yaml", "config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Int("width", 0, "canvas width in pixels")
	pf.Int("height", 0, "canvas height in pixels")
	pf.Int("fps", 0, "frames per second")
	pf.Int("stars", 0, "stars per frame")
	pf.Uint64("seed", 0, "star field seed (0 = random)")
}

func setupLogging(out io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	return nil
}

// loadConfig reads the config file over the defaults, then applies any
// flag the user set explicitly. A missing file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, err
	}

	applyFlags(cmd, cfg)
	return cfg, cfg.Validate()
}

// applyFlags copies every root flag set on the command line into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("log-level") {
		cfg.LogLevel, _ = fl.GetString("log-level")
	}
	if fl.Changed("width") {
		cfg.Width, _ = fl.GetInt("width")
	}
	if fl.Changed("height") {
		cfg.Height, _ = fl.GetInt("height")
	}
	if fl.Changed("fps") {
		cfg.FPS, _ = fl.GetInt("fps")
	}
	if fl.Changed("stars") {
		cfg.Stars, _ = fl.GetInt("stars")
	}
	if fl.Changed("seed") {
		cfg.Seed, _ = fl.GetUint64("seed")
	}
}

// prepare loads config and sets up logging to out.
func prepare(cmd *cobra.Command, out io.Writer) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := setupLogging(out, cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// watchConfig hands reloaded configs to apply while ctx is alive. Flags set
// on the command line keep winning over the file.
func watchConfig(ctx context.Context, cmd *cobra.Command, apply func(*config.Config)) {
	path, _ := cmd.Flags().GetString("config")
	if _, err := os.Stat(path); err != nil {
		log.Debug().Str("path", path).Msg("no config file to watch")
		return
	}
	go func() {
		reload := func(c *config.Config) {
			applyFlags(cmd, c)
			if err := c.Validate(); err != nil {
				log.Warn().Err(err).Msg("config reload rejected")
				return
			}
			apply(c)
		}
		if err := config.Watch(ctx, path, reload); err != nil {
			log.Warn().Err(err).Msg("config watch stopped")
		}
	}()
}
