package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ChipTick/internal/usecase"
	"ChipTick/pkg/config"
	xhttp "ChipTick/pkg/http"
	applogger "ChipTick/pkg/logger"
)

// App encapsulates the application lifecycle. It runs in one of two
// modes: a single daily tick invocation, or a long-lived read-only API
// server over the same history document.
type App struct {
	cfg     *config.Config
	log     *applogger.Logger
	runner  *usecase.TickRunner
	handler xhttp.Handler
	closers []io.Closer
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	runner *usecase.TickRunner,
	handler xhttp.Handler,
	closers []io.Closer,
) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		runner:  runner,
		handler: handler,
		closers: closers,
	}
}

// RunTick executes one simulated day ending at today and exits. Errors
// are terminal; the process is expected to rerun on the next schedule.
func (a *App) RunTick(ctx context.Context, today time.Time) error {
	defer a.close()

	res, err := a.runner.Run(ctx, today)
	if err != nil {
		a.log.Error("tick failed", applogger.Error(err))
		return err
	}
	a.log.Info("tick done",
		applogger.String("date", res.Date),
		applogger.Int64("price", res.Price))
	return nil
}

// RunServe starts the HTTP API and blocks until interrupted.
func (a *App) RunServe() error {
	defer a.close()

	srv := xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout),
	)
	if err := srv.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	a.log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("close error", applogger.Error(err))
		}
	}
}
