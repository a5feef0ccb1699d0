// Package main is the entry point for the VibeNotes API server.
//
// main stays minimal: parse configuration, build the logger, create the
// server, run it. Everything else lives in internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/config"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/server"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFormat)

	// The database directory must exist before the driver opens the
	// file; the storage roots are created by the server itself.
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger builds a slog.Logger. "pretty" selects tint's colorized
// console handler for development; anything else gets the plain text
// handler.
func newLogger(format string) *slog.Logger {
	if format == "pretty" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
