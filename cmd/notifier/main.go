package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"reservio/internal/notifications"
	"reservio/pkg/config"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "reservio-notifier"
)

func main() {
	cfg := config.Load(ServiceName)

	worker, err := notifications.NewWorker(cfg.KafkaBrokers, cfg.BookingEventsTopic, consumerGroup, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create notifications worker", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Notifications worker stopped with error", "error", err)
	}

	if err := worker.Close(); err != nil {
		cfg.Log.Error("Failed to close notifications worker", "error", err)
	}
	cfg.Log.Info("Notifications worker stopped")
}
