package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	RedisAddr       string
	IdempotencyTTL  time.Duration
	RabbitMQURL     string
	EventsExchange  string
	EventWorkers    int
	EventBuffer     int
	Location        *time.Location
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	AdminMail       string
	AdminPassword   string
}

const (
	defaultRunAddress      = ":3000"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultEventsExchange  = "orders_topic"
	defaultEventWorkers    = 2
	defaultEventBuffer     = 256
	defaultTimeZone        = "Local"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", portAddress(lookup)),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", getString(lookup, "SECRET", defaultJWTSecret)),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		RedisAddr:       getString(lookup, "REDIS_ADDR", ""),
		IdempotencyTTL:  getDuration(lookup, "IDEMPOTENCY_TTL", defaultIdempotencyTTL),
		RabbitMQURL:     getString(lookup, "RABBITMQ_URL", ""),
		EventsExchange:  getString(lookup, "EVENTS_EXCHANGE", defaultEventsExchange),
		EventWorkers:    getInt(lookup, "EVENT_WORKERS", defaultEventWorkers),
		EventBuffer:     getInt(lookup, "EVENT_BUFFER", defaultEventBuffer),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AdminMail:       getString(lookup, "ADMIN_MAIL", ""),
		AdminPassword:   getString(lookup, "ADMIN_PASSWORD", ""),
	}

	fs := flag.NewFlagSet("restaurant", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		idempotencyTTLStr  = cfg.IdempotencyTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		timeZone           = getString(lookup, "TIME_ZONE", defaultTimeZone)
		logLevel           = getString(lookup, "LOG_LEVEL", defaultLogLevel)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for idempotency keys")
	fs.StringVar(&idempotencyTTLStr, "idempotency-ttl", idempotencyTTLStr, "Lifetime of idempotency keys")
	fs.StringVar(&cfg.RabbitMQURL, "amqp", cfg.RabbitMQURL, "RabbitMQ URL for order events")
	fs.StringVar(&cfg.EventsExchange, "events-exchange", cfg.EventsExchange, "Topic exchange for order events")
	fs.IntVar(&cfg.EventWorkers, "event-workers", cfg.EventWorkers, "Number of event publishing workers")
	fs.IntVar(&cfg.EventBuffer, "event-buffer", cfg.EventBuffer, "Capacity of the pending events queue")
	fs.StringVar(&timeZone, "tz", timeZone, "Time zone of sales day and month boundaries")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.IdempotencyTTL, err = time.ParseDuration(idempotencyTTLStr); err != nil {
		return nil, fmt.Errorf("invalid idempotency ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(timeZone); err != nil {
		return nil, fmt.Errorf("invalid time zone: %w", err)
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(logLevel))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.EventWorkers <= 0 {
		cfg.EventWorkers = defaultEventWorkers
	}

	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = defaultIdempotencyTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	return cfg, nil
}

// portAddress keeps the bare PORT variable usable for PaaS deployments.
func portAddress(lookup envLookup) string {
	if port, ok := lookup("PORT"); ok && port != "" {
		return ":" + strings.TrimPrefix(port, ":")
	}
	return defaultRunAddress
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
