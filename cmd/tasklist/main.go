package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/vbonduro/tasklist/internal/config"
	"github.com/vbonduro/tasklist/internal/db"
	"github.com/vbonduro/tasklist/internal/flash"
	"github.com/vbonduro/tasklist/internal/logging"
	"github.com/vbonduro/tasklist/internal/service"
	"github.com/vbonduro/tasklist/internal/store"
	"github.com/vbonduro/tasklist/internal/web"
	"github.com/vbonduro/tasklist/internal/web/templates"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadArgs(os.Args[1:])
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Debug:      cfg.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("database initialization failed", "path", cfg.DBPath, "error", err)
		return fmt.Errorf("unable to initialize the database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	itemService := service.NewItemService(store.NewItemStore(database), logger)
	server := web.NewServer(itemService, flash.NewStore([]byte(cfg.SecretKey)), templates.FS, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("application started", "addr", cfg.ListenAddr, "db", cfg.DBPath, "debug", cfg.Debug)
	if err := server.Run(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	return nil
}
