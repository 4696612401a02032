package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/music_school/internal/app"
	"github.com/Freeeeeet/music_school/internal/config"
	"github.com/Freeeeeet/music_school/internal/controller"
	"github.com/Freeeeeet/music_school/internal/notify"
	"github.com/Freeeeeet/music_school/internal/repository"
	"github.com/Freeeeeet/music_school/internal/repository/base"
	"github.com/Freeeeeet/music_school/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.Log, "server")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataset, err := app.LoadDataset(ctx, cfg.Seed, logger.Named("seed"))
	if err != nil {
		logger.Fatal("Failed to load seed data", zap.Error(err))
	}

	latency := base.DefaultLatency().Scale(cfg.Store.LatencyScale)
	stores := repository.NewStores(dataset, latency)

	rosterSvc := service.NewRosterService(stores.Students, stores.Teachers, stores.Classes, logger.Named("svc.roster"))
	attendanceSvc := service.NewAttendanceService(stores.Attendance, stores.Students, stores.Classes, logger.Named("svc.attendance"))
	billingSvc := service.NewBillingService(stores.Billing, stores.Students, logger.Named("svc.billing"))
	scheduleSvc := service.NewScheduleService(stores.Events, stores.Replacements, stores.Students, stores.Classes, logger.Named("svc.schedule"))
	reportSvc := service.NewReportService(stores, logger.Named("svc.report"))

	var notifier notify.Notifier = notify.NewLogNotifier(logger.Named("notify"))
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger.Named("notify.telegram"))
		if err != nil {
			logger.Fatal("Failed to init telegram notifier", zap.Error(err))
		}
		notifier = tg
		logger.Info("Telegram digest enabled")
	} else {
		logger.Warn("Telegram is not configured, digest goes to the log only")
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Fatal("Invalid report timezone", zap.Error(err))
	}
	scheduler := app.NewScheduler(reportSvc, notifier, cfg.Reporting.ExportDir, loc, logger.Named("scheduler"))
	if err := scheduler.Start(cfg.Reporting.CronSchedule); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	handlers := controller.NewHandlers(rosterSvc, attendanceSvc, billingSvc, scheduleSvc, reportSvc, logger.Named("handlers"))
	engine := controller.NewRouter(handlers, logger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.Float64("latency_scale", cfg.Store.LatencyScale))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
