// Package bootstrap wires stores, caches and services from configuration.
// Both the HTTP server and the operator CLI start from here.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/cache"
	"secret-santa-backend/internal/common/config"
	"secret-santa-backend/internal/features/exchange/events"
	exchangerepo "secret-santa-backend/internal/features/exchange/repository"
	exchangeredis "secret-santa-backend/internal/features/exchange/repository/redis"
	exchangesqlite "secret-santa-backend/internal/features/exchange/repository/sqlite"
	exchangeservice "secret-santa-backend/internal/features/exchange/service"
	"secret-santa-backend/internal/features/pairing"
	userrepo "secret-santa-backend/internal/features/user/repository"
	userredis "secret-santa-backend/internal/features/user/repository/redis"
	usersqlite "secret-santa-backend/internal/features/user/repository/sqlite"
	userservice "secret-santa-backend/internal/features/user/service"
	"secret-santa-backend/internal/platform/redis"
	"secret-santa-backend/internal/platform/sqlite"
	"secret-santa-backend/internal/utils/random"
)

type App struct {
	Redis *goredis.Client
	// DB is nil unless STORE_DRIVER=sqlite.
	DB    *sql.DB
	Users userservice.UserService
	Draws exchangeservice.DrawService
}

// New connects to the configured stores and builds the services.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	rdb, err := redis.Open(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info().Str("addr", cfg.RedisAddr()).Msg("Redis connection established")

	app := &App{Redis: rdb}

	var (
		users       userrepo.UserRepository
		assignments exchangerepo.AssignmentRepository
	)
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		app.DB = db
		users = usersqlite.NewSQLiteRepository(db)
		assignments = exchangesqlite.NewSQLiteRepository(db)
		logger.Info().Str("path", cfg.Store.SQLitePath).Msg("SQLite store opened")
	default:
		users = userredis.NewUserRepository(rdb)
		assignments = exchangeredis.NewAssignmentRepository(rdb)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Stream.Enabled {
		publisher = events.NewRedisPublisher(rdb, cfg.Stream.NotifyKey, cfg.Stream.NotifyMaxLen)
	}

	var src random.Source = random.CryptoSource{}
	if cfg.Draw.Seed != 0 {
		logger.Warn().Uint64("seed", cfg.Draw.Seed).Msg("DRAW_SEED is set; draws are reproducible")
		src = random.NewSeededSource(cfg.Draw.Seed)
	}

	app.Users = userservice.NewUserService(users, logger)
	app.Draws = exchangeservice.NewDrawService(
		app.Users,
		pairing.NewEngine(src),
		assignments,
		cache.NewCacheService(rdb),
		publisher,
		cfg.Draw.AssignmentsCacheTTL,
		logger,
	)
	return app, nil
}

// Ping checks every backing store.
func (a *App) Ping(ctx context.Context) error {
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unavailable: %w", err)
	}
	if a.DB != nil {
		if err := a.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("sqlite unavailable: %w", err)
		}
	}
	return nil
}

func (a *App) Close() error {
	var firstErr error
	if a.DB != nil {
		firstErr = a.DB.Close()
	}
	if err := a.Redis.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
