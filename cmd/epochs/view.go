package main

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-epochs/internal/app"
	"github.com/coreman2200/funtimes-epochs/internal/audio"
	"github.com/coreman2200/funtimes-epochs/internal/driver/term"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Play the show in the terminal",
	RunE:  runView,
}

func init() {
	viewCmd.Flags().String("log-file", "", "write logs here instead of discarding them")
	viewCmd.Flags().Bool("sound", false, "chime on every stage change")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	var out io.Writer = io.Discard
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	cfg, err := prepare(cmd, out)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sound") {
		cfg.Sound, _ = cmd.Flags().GetBool("sound")
	}

	core, err := app.InitCore(cfg)
	if err != nil {
		return err
	}
	screen, err := term.NewScreen()
	if err != nil {
		return err
	}
	viewer := term.New(screen, core.Cond)
	defer viewer.Close()
	core.Eng.AddDriver(viewer)

	if cfg.Sound {
		chime, err := audio.NewChime()
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable")
		}
		defer chime.Close()
		core.Cond.OnStage(chime.Play)
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	watchConfig(ctx, cmd, core.Apply)

	done := make(chan error, 1)
	go func() { done <- core.Cond.Run(ctx) }()

	err = viewer.Run(ctx)
	cancel()
	if rerr := <-done; err == nil {
		err = rerr
	}
	return err
}
