package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reforma-painel/internal/config"
	"reforma-painel/internal/service/board"
	generate_excel "reforma-painel/internal/service/generate-excel"
	generate_html "reforma-painel/internal/service/generate-html"
	"reforma-painel/internal/service/overview"
	"reforma-painel/internal/storage/sqlstore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, cfg.Log)

	storage, err := sqlstore.New(cfg.Storage)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = storage.Init(initCtx)
	cancel()
	if err != nil {
		log.Error("failed to init db", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := services{
		board:    board.NewService(storage, log, cfg.Board.DoneLimit, time.Now),
		overview: overview.NewService(storage, cfg.Metrics.PendingStatus),
		excel:    generate_excel.NewGenerateService(storage),
		report:   generate_html.NewGenerateService(storage, time.Now),
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, storage, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("driver", cfg.Storage.Driver))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
