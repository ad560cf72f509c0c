package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"secret-santa-backend/internal/common/validation"
)

const (
	StoreDriverRedis  = "redis"
	StoreDriverSQLite = "sqlite"
)

type Config struct {
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"secret-santa-backend"`

	Server struct {
		Port            int           `env:"PORT" envDefault:"8080"`
		Origin          string        `env:"ORIGIN" envDefault:"http://localhost:3000"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	// Store selects where users and assignments live. Redis is still
	// required for the cache and the event streams.
	Store struct {
		Driver     string `env:"STORE_DRIVER" envDefault:"redis"`
		SQLitePath string `env:"SQLITE_PATH" envDefault:"data/santa.db"`
	}

	Telegram struct {
		BotToken    string        `env:"BOT_TOKEN"`
		InitDataTTL time.Duration `env:"INIT_DATA_TTL" envDefault:"24h"`
		AdminIDs    []int64       `env:"ADMIN_IDS" envSeparator:","`
	}

	Draw struct {
		DefaultExchangeID   string        `env:"DEFAULT_EXCHANGE_ID" envDefault:"global-exchange"`
		AssignmentsCacheTTL time.Duration `env:"ASSIGNMENTS_CACHE_TTL" envDefault:"1m"`

		// Seed makes draws reproducible. Zero draws from crypto/rand.
		Seed uint64 `env:"DRAW_SEED" envDefault:"0"`
	}

	Stream struct {
		Enabled      bool   `env:"STREAM_ENABLED" envDefault:"true"`
		Key          string `env:"STREAM_KEY" envDefault:"santa:events"`
		Group        string `env:"STREAM_GROUP" envDefault:"santa_backend_consumers"`
		Consumer     string `env:"STREAM_CONSUMER" envDefault:"santa_worker_1"`
		NotifyKey    string `env:"NOTIFY_STREAM_KEY" envDefault:"santa:notifications"`
		NotifyMaxLen int64  `env:"NOTIFY_STREAM_MAXLEN" envDefault:"10000"`
	}
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is fine: production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverRedis, StoreDriverSQLite:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: want %s or %s", c.Store.Driver, StoreDriverRedis, StoreDriverSQLite)
	}
	if err := validation.ValidateExchangeID(c.Draw.DefaultExchangeID); err != nil {
		return fmt.Errorf("invalid DEFAULT_EXCHANGE_ID: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	return nil
}

func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + strconv.Itoa(c.Redis.Port)
}
