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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"secret-santa-backend/docs"
	"secret-santa-backend/internal/bootstrap"
	"secret-santa-backend/internal/common/config"
	"secret-santa-backend/internal/common/logger"
	"secret-santa-backend/internal/common/middleware"
	exchangehttp "secret-santa-backend/internal/features/exchange/delivery/http"
	userhttp "secret-santa-backend/internal/features/user/delivery/http"
	"secret-santa-backend/internal/workers"
)

// @title           Secret Santa API
// @version         1.0
// @description     Participant registry and gift exchange draws for a Telegram Mini App. Endpoints require init_data authentication.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

// @tag.name users
// @tag.description Participant registry

// @tag.name exchanges
// @tag.description Draws, resets and assignment lookups

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ServiceName, cfg.Debug)
	log.Info().
		Bool("debug", cfg.Debug).
		Str("store", cfg.Store.Driver).
		Msg("Starting Secret Santa backend")

	if cfg.Telegram.BotToken == "" {
		log.Warn().Msg("BOT_TOKEN is not set; authenticated routes will answer 500")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer app.Close()

	workerDone := startWorker(ctx, cfg, app, log)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      newRouter(cfg, app, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("Stream worker did not stop before the shutdown deadline")
	}

	log.Info().Msg("Server exited")
}

// startWorker runs the stream worker until ctx ends. The returned channel is
// closed once the worker has returned, or right away when streams are off.
func startWorker(ctx context.Context, cfg *config.Config, app *bootstrap.App, log zerolog.Logger) <-chan struct{} {
	done := make(chan struct{})
	if !cfg.Stream.Enabled {
		close(done)
		return done
	}

	worker := workers.NewRedisStreamWorker(app.Redis, app.Draws, workers.StreamConfig{
		Stream:            cfg.Stream.Key,
		Group:             cfg.Stream.Group,
		Consumer:          cfg.Stream.Consumer,
		DefaultExchangeID: cfg.Draw.DefaultExchangeID,
	}, log)
	go func() {
		defer close(done)
		worker.Start(ctx)
	}()
	return done
}

func newRouter(cfg *config.Config, app *bootstrap.App, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log, "/health", "/live", "/ready"))
	router.Use(middleware.ErrorHandler(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", middleware.InitDataHeader, "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	auth := middleware.TelegramInitData(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL, log)
	admin := middleware.RequireAdmin(cfg.Telegram.AdminIDs, log)
	self := middleware.RequireSelfOrAdmin("giverId", cfg.Telegram.AdminIDs, log)

	v1 := router.Group("/api/v1")
	userhttp.NewUserHandler(app.Users, log).RegisterRoutes(v1, auth, admin)
	exchangehttp.NewExchangeHandler(app.Draws, log).RegisterRoutes(v1, auth, admin, self)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   cfg.ServiceName,
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := app.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   cfg.ServiceName,
		})
	})

	return router
}
