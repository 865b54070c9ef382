package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"reforma-painel/internal/config"
)

// dualHandler writes every record to stdout and copies records at or above the
// file level to the error log.
type dualHandler struct {
	console slog.Handler
	file    slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.console.Enabled(ctx, lvl) || h.file.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.console.Enabled(ctx, r.Level) {
		err = h.console.Handle(ctx, r)
	}

	if h.file.Enabled(ctx, r.Level) {
		if fileErr := h.file.Handle(ctx, r.Clone()); fileErr != nil {
			fmt.Fprintf(os.Stderr, "error log: %v\n", fileErr)
		}
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

func (h *dualHandler) derive(fn func(slog.Handler) slog.Handler) *dualHandler {
	return &dualHandler{console: fn(h.console), file: fn(h.file)}
}

// parseLevel accepts slog level names ("warn", "ERROR", "info+2"). Anything
// else means error.
func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelError, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

func newHandler(env string, fileLevel slog.Level, out, errOut io.Writer) slog.Handler {
	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}

	var console slog.Handler
	switch env {
	case envDev:
		console = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	default:
		console = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	}

	if errOut == nil {
		return console
	}

	file := slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: fileLevel, AddSource: true}).
		WithAttrs([]slog.Attr{slog.String("env", env)})

	return &dualHandler{console: console, file: file}
}

func setupLogger(env string, cfg config.Log) *slog.Logger {
	fileLevel, levelErr := parseLevel(cfg.FileLevel)

	var errOut io.Writer
	if cfg.ErrorFile != "" {
		f, err := os.OpenFile(cfg.ErrorFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			slog.Warn("cannot open error log file", slog.String("path", cfg.ErrorFile), slog.String("error", err.Error()))
		} else {
			errOut = f
		}
	}

	log := slog.New(newHandler(env, fileLevel, os.Stdout, errOut))
	if levelErr != nil {
		log.Warn("falling back to error level for the log file", slog.String("error", levelErr.Error()))
	}

	return log
}
