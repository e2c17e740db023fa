package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"shop/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel  string
	LogFormat string

	KafkaHost              string
	KafkaOrderChangedTopic string

	OutboxSchedule  string
	OutboxBatchSize int

	PendingOrderTTL       time.Duration
	PendingExpirySchedule string
	PendingExpiryBatch    int
}

// DefaultConfig returns the values used for keys that are not set.
func DefaultConfig() Config {
	return Config{
		HTTPPort:               "8080",
		DBHost:                 "localhost",
		DBPort:                 "5432",
		DBSslMode:              "disable",
		LogLevel:               "info",
		LogFormat:              "text",
		KafkaOrderChangedTopic: "order.changed",
		OutboxSchedule:         "*/2 * * * * *",
		OutboxBatchSize:        100,
		PendingExpirySchedule:  "0 * * * * *",
		PendingExpiryBatch:     100,
	}
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory, if present, fills variables that are not already set.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromLookup(os.LookupEnv)
}

// ConfigFromLookup builds a Config from lookup, applying defaults for missing
// or empty keys.
func ConfigFromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	get := func(key string, target *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}

	get("HTTP_PORT", &cfg.HTTPPort)
	get("DB_HOST", &cfg.DBHost)
	get("DB_PORT", &cfg.DBPort)
	get("DB_USER", &cfg.DBUser)
	get("DB_PASSWORD", &cfg.DBPassword)
	get("DB_NAME", &cfg.DBName)
	get("DB_SSLMODE", &cfg.DBSslMode)
	get("LOG_LEVEL", &cfg.LogLevel)
	get("LOG_FORMAT", &cfg.LogFormat)
	get("KAFKA_HOST", &cfg.KafkaHost)
	get("KAFKA_ORDER_CHANGED_TOPIC", &cfg.KafkaOrderChangedTopic)
	get("OUTBOX_SCHEDULE", &cfg.OutboxSchedule)
	get("PENDING_EXPIRY_SCHEDULE", &cfg.PendingExpirySchedule)

	var err error
	var raw string
	if get("OUTBOX_BATCH_SIZE", &raw); raw != "" {
		if cfg.OutboxBatchSize, err = positiveInt("OUTBOX_BATCH_SIZE", raw); err != nil {
			return Config{}, err
		}
	}

	raw = ""
	if get("PENDING_EXPIRY_BATCH_SIZE", &raw); raw != "" {
		if cfg.PendingExpiryBatch, err = positiveInt("PENDING_EXPIRY_BATCH_SIZE", raw); err != nil {
			return Config{}, err
		}
	}

	raw = ""
	if get("PENDING_ORDER_TTL", &raw); raw != "" {
		ttl, parseErr := time.ParseDuration(raw)
		if parseErr != nil {
			return Config{}, errs.NewValueIsInvalidErrorWithCause("PENDING_ORDER_TTL", parseErr)
		}
		if ttl < 0 {
			return Config{}, errs.NewValueIsOutOfRangeError("PENDING_ORDER_TTL", raw, "0s", "unbounded")
		}
		cfg.PendingOrderTTL = ttl
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, errs.NewValueIsInvalidErrorWithCause("LOG_FORMAT", fmt.Errorf("%q is neither text nor json", cfg.LogFormat))
	}

	return cfg, nil
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means the relay is off.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func positiveInt(key, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if n <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, n, 1, "unbounded")
	}
	return n, nil
}
