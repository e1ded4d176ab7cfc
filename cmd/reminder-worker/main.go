package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"financepro/internal/amqp"
	"financepro/internal/config"
	"financepro/internal/log"
	"financepro/internal/notify"
	"financepro/internal/storage"
	"financepro/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(os.Getenv("LOG_LEVEL")),
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required: the worker has no other delivery path")
		os.Exit(1)
	}

	kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer kv.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st := store.New(kv)
	trigger := notify.NewTrigger(amqpClient)
	// Headless process, nobody to ask: permission is implied.
	trigger.GrantPermission()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.ReminderSchedule, func() {
		// The server process owns the data; reload before every pass so
		// the evaluation sees its latest writes.
		if err := st.Load(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to reload records", "error", err)
			return
		}
		if fired := trigger.Evaluate(ctx, st.Snapshot()); len(fired) > 0 {
			logger.InfoContext(ctx, "Alerts published", "count", len(fired))
		}
	})
	if err != nil {
		logger.Error("Failed to schedule reminder evaluation", "error", err, "schedule", cfg.ReminderSchedule)
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("Reminder schedule active", "schedule", cfg.ReminderSchedule)

	g, gctx := errgroup.WithContext(ctx)

	// Drain the alerts queue and log deliveries. In a deployment with a
	// push gateway this handler would forward instead of log.
	g.Go(func() error {
		return amqpClient.ConsumeAlerts(gctx, func(msg *amqp.AlertMessage) error {
			logger.InfoContext(gctx, "Alert delivered",
				log.FieldAlertKind, string(msg.Kind),
				"title", msg.Title,
				"body", msg.Body)
			return nil
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		return gctx.Err()
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
