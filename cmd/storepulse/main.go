package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // Embed zoneinfo so store timezones resolve on minimal images

	corecfg "github.com/storepulse/storepulse/internal/core/config"
	"github.com/storepulse/storepulse/internal/core/storage/postgres"
	"github.com/storepulse/storepulse/internal/core/timezone"
	"github.com/storepulse/storepulse/internal/migrations"
	"github.com/storepulse/storepulse/internal/report"
	"github.com/storepulse/storepulse/internal/reporting"
	"github.com/storepulse/storepulse/internal/server"
)

func main() {
	configPath := flag.String("config", "storepulse.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))
	slog.Info("Loaded config",
		"server", cfg.Server,
		"report", cfg.Report,
		"log_level", cfg.Log.Level,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize Storage (PostgreSQL)
	db, err := postgres.Open(ctx, cfg.Database.DSN, postgres.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 2.1. Run Database Migrations (tables must exist before statements are prepared)
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		db.Close()
		os.Exit(1)
	}

	dbAdapter, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		db.Close()
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 3. Initialize Report Generation
	writer, err := report.NewWriter(cfg.Report.Format)
	if err != nil {
		slog.Error("Invalid report format", "error", err)
		os.Exit(1)
	}
	generator := report.NewGenerator(dbAdapter, timezone.NewLocationCache(), writer, report.Options{
		OutputDir:       cfg.Report.OutputDir,
		WorkerCount:     cfg.Report.WorkerCount,
		DefaultTimezone: cfg.Report.DefaultTimezone,
	})
	tracker := reporting.NewTracker(ctx, generator, cfg.Report.JobTTLDuration())

	// 4. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	reporting.NewService(tracker).RegisterRoutes(srv.Engine)

	// 5. Start periodic reports in background if enabled
	if cfg.Report.CronEnabled {
		scheduler := reporting.NewScheduler(cfg.Report.CronIntervalDuration(), tracker)
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Scheduler stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Periodic reports disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	// Cancelled runs fail fast; wait so the pool is not closed under them.
	tracker.Shutdown()
	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
