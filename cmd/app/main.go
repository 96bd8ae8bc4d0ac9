package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"orderledger/cmd"
	httpin "orderledger/internal/adapters/in/http"
	"orderledger/internal/adapters/out/postgres"
	"orderledger/internal/adapters/out/rabbitmq"
	"orderledger/internal/core/ports"
	"orderledger/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("order ledger stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	logger := newLogger(config)
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	if err = postgres.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var publisher ports.EventPublisher
	if config.AMQPURL != "" {
		conn, dialErr := rabbitmq.Dial(config.AMQPURL)
		if dialErr != nil {
			return fmt.Errorf("connect to amqp: %w", dialErr)
		}
		defer conn.Close()

		amqpPublisher, pubErr := rabbitmq.NewPublisher(conn.Channel(), config.AMQPExchange)
		if pubErr != nil {
			return fmt.Errorf("declare exchange: %w", pubErr)
		}
		publisher = amqpPublisher
	} else {
		logger.Info("AMQP_URL is empty, order events are not published")
	}

	collector := metrics.New(nil)

	app, err := cmd.NewCompositionRoot(config, gormDB, publisher, collector, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpin.NewRouter(app.CreateServer(), collector, logger)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.ERROR)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort)
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newLogger(config cmd.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(config.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{Level: level}
	if config.AppMode == cmd.AppModeProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}
