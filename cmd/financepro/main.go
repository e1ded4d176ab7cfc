package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"financepro/internal/amqp"
	"financepro/internal/auth"
	"financepro/internal/config"
	"financepro/internal/core"
	apphttp "financepro/internal/http"
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
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer kv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := store.New(kv)
	if err := st.Load(ctx); err != nil {
		logger.Error("Failed to load records", "error", err)
		os.Exit(1)
	}

	authsvc := auth.NewService(kv)
	if err := authsvc.Load(ctx); err != nil {
		logger.Error("Failed to load user registry", "error", err)
		os.Exit(1)
	}

	// Alert publishing is optional: without AMQP the tracker still works,
	// it just never fires notifications.
	var trigger *notify.Trigger
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without alerts", "error", err)
		} else {
			defer amqpClient.Close()
			trigger = notify.NewTrigger(amqpClient)
			logger.Info("AMQP client initialized - alerts will publish to queue", "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - notifications will not fire")
	}

	if trigger != nil {
		st.SetOnChange(func(data core.AppData) {
			go trigger.Evaluate(context.Background(), data)
		})
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, authsvc, trigger, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting financepro server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
