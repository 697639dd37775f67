package main // Entry point of the sales log consumer

import (
	"context"
	"errors"
	"syscall"

	"github.com/sirupsen/logrus"
	"gopkg.in/vrecan/death.v3"

	"github.com/shekhakhaled/adventureland-tickets/internal/config"
	"github.com/shekhakhaled/adventureland-tickets/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := config.InitLogging(cfg.LogLevel); err != nil {
		logrus.WithError(err).Fatal("failed to configure logging")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go death.NewDeath(syscall.SIGINT, syscall.SIGTERM).WaitForDeathWithFunc(cancel)

	consumer := queue.SalesConsumer{URL: cfg.Events.URL, LogDir: cfg.Events.LogDir}
	logrus.WithField("log_dir", cfg.Events.LogDir).Info("consuming ticket.sold events")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Fatal("sales consumer stopped")
	}
	logrus.Info("sales consumer stopped")
}
