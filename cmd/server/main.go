// @title           Donaciones Pola de Allande API
// @version         1.0
// @description     Donation tracking for El Día del Inmigrante 2026: donations, referrals, admin review, reporting, event content and GDPR requests.

// @contact.name   Asociación Cultural Pola de Allande
// @contact.email  donaciones@polaallande.org

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/malamapl09/donaciones-pola-allande/internal/app/routes"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/ratelimit"
	"github.com/malamapl09/donaciones-pola-allande/internal/scheduler"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		logger.Error("server stopped: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	// .env is optional, variables may come from the environment
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err := logger.SetupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	if envErr != nil {
		logger.Warning("no .env file loaded: %v", envErr)
	}

	gin.SetMode(cfg.GinMode)
	decimal.MarshalJSONWithoutQuotes = true

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	created, err := database.EnsureAdminExists(pool.GetDB(), cfg.DefaultAdminUsername, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Info("default admin account %q created", cfg.DefaultAdminUsername)
	}

	var redisClient *redis.Client
	if cfg.RateLimitBackend == ratelimit.BackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
	}

	serviceContainer, err := container.NewServiceContainer(pool, cfg, redisClient)
	if err != nil {
		return err
	}
	defer serviceContainer.Close()

	jobs, err := scheduler.Start(pool.GetDB(), serviceContainer.Limiters(), cfg)
	if err != nil {
		return err
	}
	defer jobs.Stop()

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           routes.SetupRouter(serviceContainer),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	printSystemInfo(pool, cfg)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening on http://%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// printSystemInfo logs the runtime and pool state at startup
func printSystemInfo(pool *database.ConnectionPool, cfg *config.Config) {
	if stats, err := pool.Stats(); err == nil {
		logger.Info("database pool: %+v", stats)
	}
	logger.Info("environment=%s db=%s rate_limit_backend=%s cpus=%d goroutines=%d",
		cfg.EnvType, cfg.DBDriver, cfg.RateLimitBackend, runtime.NumCPU(), runtime.NumGoroutine())
}
