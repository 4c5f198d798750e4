package main

import (
	"log/slog"
	"os"

	"github.com/iordaniskot/registrar/internal/application"
	"github.com/iordaniskot/registrar/internal/archive/sqlite"
	"github.com/iordaniskot/registrar/internal/config"
	"github.com/iordaniskot/registrar/internal/core"
	"github.com/iordaniskot/registrar/internal/idgen"
	"github.com/iordaniskot/registrar/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"archive_path", cfg.Archive.Path,
		"history_limit", cfg.Archive.HistoryLimit,
		"import_max_file_size", cfg.Import.MaxFileSize,
		"id_prefix", cfg.IDs.Prefix,
	)

	// Open the archive and bring the roster back
	arch, err := sqlite.New(cfg.Archive)
	if err != nil {
		slog.Error("failed to open archive", "error", err)
		os.Exit(1)
	}
	defer arch.Close()

	records, err := arch.LoadRoster()
	if err != nil {
		slog.Error("failed to load roster", "error", err)
		os.Exit(1)
	}

	store := core.NewStore()
	if err := store.ReplaceAll(records); err != nil {
		slog.Error("archived roster is inconsistent", "error", err)
		os.Exit(1)
	}
	slog.Info("roster loaded", "records", store.Len())

	// Run the interactive session
	app := application.New(store, arch, idgen.New(cfg.IDs.Prefix), cfg, os.Stdin, os.Stdout)
	if err := app.Run(); err != nil {
		slog.Error("session failed", "error", err)
		os.Exit(1)
	}
}
