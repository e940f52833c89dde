package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/storepulse/storepulse/internal/core/config"
	"github.com/storepulse/storepulse/internal/core/storage/postgres"
	"github.com/storepulse/storepulse/internal/ingestion"
	"github.com/storepulse/storepulse/internal/migrations"
)

// storepulse-ingest loads the CSV exports into Postgres and exits.
func main() {
	configPath := flag.String("config", "storepulse.yaml", "Path to configuration file")
	storeStatus := flag.String("store-status", "", "Override ingestion.store_status_path")
	menuHours := flag.String("menu-hours", "", "Override ingestion.menu_hours_path")
	timezones := flag.String("timezones", "", "Override ingestion.timezones_path")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	paths := ingestion.Paths{
		StoreStatus: override(*storeStatus, cfg.Ingestion.StoreStatusPath),
		MenuHours:   override(*menuHours, cfg.Ingestion.MenuHoursPath),
		Timezones:   override(*timezones, cfg.Ingestion.TimezonesPath),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, paths); err != nil {
		slog.Error("Ingestion failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *corecfg.Config, paths ingestion.Paths) error {
	db, err := postgres.Open(ctx, cfg.Database.DSN, postgres.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	})
	if err != nil {
		return err
	}

	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return err
	}

	adapter, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		db.Close()
		return err
	}
	defer adapter.Close()

	summary, err := ingestion.NewLoader(adapter, cfg.Ingestion.BatchSize).LoadAll(ctx, paths)
	if err != nil {
		return err
	}

	slog.Info("[Ingest] Load complete",
		"observations", summary.Observations,
		"business_hours", summary.BusinessHours,
		"timezones", summary.Timezones,
	)
	return nil
}

func override(flagValue, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	return configured
}
