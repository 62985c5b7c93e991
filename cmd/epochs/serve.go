package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-epochs/internal/app"
	"github.com/coreman2200/funtimes-epochs/internal/driver/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream the show to a browser over websockets",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "HTTP listen address")
	serveCmd.Flags().Int("throttle-ms", 0, "minimum gap between streamed frames")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := prepare(cmd, os.Stdout)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("addr") {
		cfg.Serve.Addr, _ = fl.GetString("addr")
	}
	if fl.Changed("throttle-ms") {
		cfg.Serve.ThrottleMs, _ = fl.GetInt("throttle-ms")
	}

	core, err := app.InitCore(cfg)
	if err != nil {
		return err
	}
	hub := ws.NewState(core.Cond, time.Duration(cfg.Serve.ThrottleMs)*time.Millisecond)
	core.Eng.AddDriver(hub)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	watchConfig(ctx, cmd, core.Apply)

	srv := &http.Server{Addr: cfg.Serve.Addr, Handler: hub.Mux()}
	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Serve.Addr).Msg("serving preview")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
			cancel()
		}
	}()

	runErr := core.Cond.Run(ctx)

	shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)
	log.Info().Msg("shutdown complete")

	select {
	case err := <-srvErr:
		return err
	default:
		return runErr
	}
}
