package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop/cmd"
	shophttp "shop/internal/adapters/in/http"
	"shop/internal/adapters/out/kafka"
	"shop/internal/adapters/out/postgres"
	"shop/internal/core/ports"

	gommonlog "github.com/labstack/gommon/log"
	log "github.com/sirupsen/logrus"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	setupLogger(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config); err != nil {
		log.WithError(err).Fatal("shop stopped with error")
	}
	log.Info("shop stopped")
}

func setupLogger(config cmd.Config) {
	if config.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		log.WithError(err).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func run(ctx context.Context, config cmd.Config) error {
	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	root := cmd.NewCompositionRoot(config, db, log.NewEntry(log.StandardLogger()))

	var publisher ports.EventPublisher
	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		kafkaPublisher, kafkaErr := kafka.NewPublisher(brokers, config.KafkaOrderChangedTopic, log.WithField("component", "kafka-publisher"))
		if kafkaErr != nil {
			return kafkaErr
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		log.Warn("KAFKA_HOST is empty, order events stay in the outbox")
	}

	jobManager := root.CreateJobManager(publisher)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := shophttp.NewEcho(root.CreateHTTPServer(), root.Registry(), log.WithField("component", "http"))
	e.Logger.SetLevel(echoLogLevel(log.GetLevel()))

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("port", config.HTTPPort).Info("http server listening")
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func echoLogLevel(level log.Level) gommonlog.Lvl {
	switch level {
	case log.DebugLevel, log.TraceLevel:
		return gommonlog.DEBUG
	case log.InfoLevel:
		return gommonlog.INFO
	case log.WarnLevel:
		return gommonlog.WARN
	default:
		return gommonlog.ERROR
	}
}
