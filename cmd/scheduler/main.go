package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/rsawant/invest-engine/internal/collaborator"
	"github.com/rsawant/invest-engine/internal/config"
	"github.com/rsawant/invest-engine/internal/repository"
	"github.com/rsawant/invest-engine/internal/service"
	"github.com/rsawant/invest-engine/pkg/logger"
)

// The scheduler binary is the batch half of transfer execution: the HTTP
// service materializes schedules, this job credits them when due.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting transfer dispatch scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	scheduleRepo := repository.NewScheduleRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	ledger := &collaborator.LogLedger{Log: log}

	dispatcher := service.NewDispatchService(
		scheduleRepo, depositRepo, ledger, log,
		cfg.Scheduler.DispatchLimit,
	)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone: %v", err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	_, err = c.AddFunc(cfg.Scheduler.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := dispatcher.DispatchDue(ctx, time.Now()); err != nil {
			log.WithError(err).Error("dispatch run failed")
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule dispatch job: %v", err)
	}

	c.Start()
	log.Info("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	c.Stop()
	log.Info("Scheduler stopped")
}
