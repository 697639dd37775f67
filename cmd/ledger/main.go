package main // Entry point of the ticket ledger console

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/sirupsen/logrus"
	"gopkg.in/vrecan/death.v3"

	"github.com/shekhakhaled/adventureland-tickets/internal/booking"
	"github.com/shekhakhaled/adventureland-tickets/internal/config"
	"github.com/shekhakhaled/adventureland-tickets/internal/handler"
	"github.com/shekhakhaled/adventureland-tickets/internal/repository"
	"github.com/shekhakhaled/adventureland-tickets/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := config.InitLogging(cfg.LogLevel); err != nil {
		logrus.WithError(err).Fatal("failed to configure logging")
	}
	logrus.WithFields(logrus.Fields{"env": cfg.Env, "store": cfg.Store.Kind}).Info("starting ledger")

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("ledger stopped")
	}
}

func run(cfg config.Config, in io.Reader, out io.Writer) error {
	store, closer, err := repository.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store.Kind, err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Error("failed to close store")
		}
	}()

	opts := booking.Options{Store: store, StoreTimeout: cfg.Store.Timeout}
	if cfg.Events.Enabled {
		opts.Publisher = service.NewQueuePublisher(cfg.Events.URL)
	}
	sys := booking.New(opts)

	ctx := context.Background()
	if err := sys.Load(ctx); err != nil {
		return err
	}
	if _, err := sys.SeedDefaults(ctx); err != nil {
		return err
	}

	// The console blocks on stdin, so a signal saves and exits from here.
	d := death.NewDeath(syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	go d.WaitForDeathWithFunc(func() {
		logrus.Info("signal received, saving ledger")
		code := 0
		if err := sys.Save(context.Background()); err != nil {
			logrus.WithError(err).Error("failed to save ledger on shutdown")
			code = 1
		}
		_ = closer.Close()
		os.Exit(code)
	})

	if err := handler.NewConsole(sys, out).Run(ctx, in); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	if err := sys.Save(ctx); err != nil {
		return err
	}
	logrus.Info("ledger saved, goodbye")
	return nil
}
