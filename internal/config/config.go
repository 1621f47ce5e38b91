package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8747"`

	DatabaseDriver string        `envconfig:"DATABASE_DRIVER" default:"postgres"`
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	StoreTimeout   time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	// Origins allowed for CORS and for the websocket handshake.
	Origins []string `envconfig:"ORIGIN" default:"http://localhost:5173"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	WSSendBuffer     int   `envconfig:"WS_SEND_BUFFER" default:"256"`
	WSMaxMessageSize int64 `envconfig:"WS_MAX_MESSAGE_SIZE" default:"524288"`

	// RequireAuth gates chat routes behind the Account Directory credential.
	RequireAuth bool   `envconfig:"CHAT_REQUIRE_AUTH" default:"false"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
	RedisURL    string `envconfig:"REDIS_URL"`

	Log Log
}

type Log struct {
	Level   string `envconfig:"LOG_LEVEL" default:"info"`
	Backend string `envconfig:"LOG_BACKEND" default:"zap"`
	Env     string `envconfig:"APP_ENV" default:"dev"`
	Service string `envconfig:"SERVICE_NAME" default:"chatrooms"`
}

// Load reads .env.local or .env when present and decodes the process
// environment on top of them.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.StoreTimeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	if c.WSSendBuffer <= 0 {
		return errors.New("WS_SEND_BUFFER must be positive")
	}
	if c.WSMaxMessageSize <= 0 {
		return errors.New("WS_MAX_MESSAGE_SIZE must be positive")
	}
	if c.RequireAuth && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when CHAT_REQUIRE_AUTH is set")
	}
	for i, o := range c.Origins {
		c.Origins[i] = strings.TrimSpace(o)
	}
	return nil
}

func (l Log) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
