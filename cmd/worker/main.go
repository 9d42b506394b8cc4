package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/simplyfly/config"
	"github.com/Domenick1991/simplyfly/internal/email"
	"github.com/Domenick1991/simplyfly/internal/kafka"
	"github.com/Domenick1991/simplyfly/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.WithFields(logrus.Fields{
		"topic": cfg.Kafka.NotificationsTopic,
		"group": cfg.Kafka.GroupID,
	}).Info("notification worker started")

	err = consumer.ConsumeBookingEvents(ctx, sender.Send)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("consumer stopped")
		return
	}
	log.Info("notification worker stopped")
}
