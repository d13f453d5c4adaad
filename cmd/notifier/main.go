package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"aquavalle/internal/notifier"
	"aquavalle/pkg/config"
	"aquavalle/pkg/kafka"
	"aquavalle/pkg/mailer"

	"github.com/joho/godotenv"
)

const ServiceName = "notifier"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting notifier service")

	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
	}, cfg.Log)

	svc := notifier.NewService(mail, cfg)

	tuning, err := kafka.LoadTuning(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka tuning", "error", err)
	}

	consumer, err := kafka.NewConsumer(tuning, cfg.ReservationsTopic, cfg.NotifierGroupID, cfg.ReservationsDLQ, svc.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka.LoggingConsumerMiddleware(cfg.Log))

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil && err != context.Canceled {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}
