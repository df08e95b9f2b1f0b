package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/ratelimit"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

// ServiceContainer wires every service to the shared store and configuration
type ServiceContainer struct {
	pool   *database.ConnectionPool
	config *config.Config
	redis  *redis.Client

	limiters *ratelimit.Set

	jwtService      services.InterfaceJWTService
	adminService    services.InterfaceAdminService
	contentService  services.InterfaceContentService
	donationService services.InterfaceDonationService
	referralService services.InterfaceReferralService
	reportService   services.InterfaceReportService
	privacyService  services.InterfacePrivacyService

	mu sync.RWMutex
}

// NewServiceContainer builds the container. redisClient may be nil unless the
// rate limit backend is redis.
func NewServiceContainer(pool *database.ConnectionPool, cfg *config.Config, redisClient *redis.Client) (*ServiceContainer, error) {
	if pool == nil || pool.GetDB() == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warning("redis ping failed: %v, rate limiting fails open until it recovers", err)
		}
	}

	c := &ServiceContainer{
		pool:   pool,
		config: cfg,
		redis:  redisClient,
	}
	if err := c.initializeServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ServiceContainer) initializeServices() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := c.pool.GetDB()

	limiters, err := ratelimit.NewSet(c.config.RateLimitBackend, c.redis, c.config.RateLimitWindow, map[string]int{
		ratelimit.PolicyDonation: c.config.DonationRateLimit,
		ratelimit.PolicyLogin:    c.config.LoginRateLimit,
		ratelimit.PolicyGeneral:  c.config.GeneralRateLimit,
	})
	if err != nil {
		return err
	}
	c.limiters = limiters

	c.jwtService = services.NewJWTService(c.config, db)
	c.adminService = services.NewAdminService(db, c.config)

	// donations render bank instructions through the content service
	c.contentService = services.NewContentService(db, c.config)
	c.donationService = services.NewDonationService(db, c.config, c.contentService)
	c.referralService = services.NewReferralService(db, c.config)
	c.privacyService = services.NewPrivacyService(db, c.config)

	reportService, err := services.NewReportService(db, c.config)
	if err != nil {
		return fmt.Errorf("create report service: %w", err)
	}
	c.reportService = reportService
	return nil
}

// GetService returns the named service, or nil
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.pool.GetDB()
	case "pool":
		return c.pool
	case "redis":
		return c.redis
	case "limiters":
		return c.limiters
	case "jwt":
		return c.jwtService
	case "admin":
		return c.adminService
	case "content":
		return c.contentService
	case "donation":
		return c.donationService
	case "referral":
		return c.referralService
	case "report":
		return c.reportService
	case "privacy":
		return c.privacyService
	default:
		return nil
	}
}

// GetDB returns the gorm handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool.GetDB()
}

// GetPool returns the connection pool
func (c *ServiceContainer) GetPool() *database.ConnectionPool {
	return c.pool
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// Limiters returns the rate limiters of every policy
func (c *ServiceContainer) Limiters() *ratelimit.Set {
	return c.limiters
}

// Redis returns the redis client, nil when none is configured
func (c *ServiceContainer) Redis() *redis.Client {
	return c.redis
}

// Close releases worker pools. The database pool is owned by the caller.
func (c *ServiceContainer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reportService != nil {
		c.reportService.Close()
	}
}
