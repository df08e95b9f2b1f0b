package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// InterfaceHealthController liveness and readiness endpoints
type InterfaceHealthController interface {
	Ping()
	Status()
	Index()
}

// HealthController reports service health
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HealthResponse body of GET /health
type HealthResponse struct {
	Status      string    `json:"status" example:"OK"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment" example:"SERVER"`
	Database    string    `json:"database" example:"up"`
	Redis       string    `json:"redis,omitempty" example:"up"`
}

// HandleHealthFunc returns the gin handler of a health endpoint
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "index":
			controller.Index()
		default:
			response.Fail(ctx, code.ErrRouteNotFound)
		}
	}
}

// Ping checks the database and, when configured, redis
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (c *HealthController) Ping() {
	ctx, cancel := context.WithTimeout(c.Ctx.Request.Context(), 3*time.Second)
	defer cancel()

	body := HealthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC(),
		Environment: c.Container.GetConfig().EnvType,
		Database:    "up",
	}
	status := http.StatusOK

	if err := c.Container.GetPool().HealthCheck(ctx); err != nil {
		body.Status, body.Database = "DEGRADED", "down"
		status = http.StatusServiceUnavailable
	}
	if client := c.Container.Redis(); client != nil {
		body.Redis = "up"
		if err := client.Ping(ctx).Err(); err != nil {
			// limiters fail open, so redis alone does not fail the check
			body.Redis = "down"
		}
	}

	c.Ctx.JSON(status, body)
}

// Status returns connection pool statistics
// @Summary      Connection pool status
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/status [get]
func (c *HealthController) Status() {
	stats, err := c.Container.GetPool().Stats()
	if err != nil {
		response.Error(c.Ctx, code.Wrap(code.ErrDatabase, err))
		return
	}
	response.Success(c.Ctx, gin.H{
		"database":         stats,
		"rateLimitBackend": c.Container.Limiters().Backend(),
	})
}

// Index lists the public endpoints
func (c *HealthController) Index() {
	response.Success(c.Ctx, gin.H{
		"message": "Donaciones Pola de Allande API",
		"version": "1.0.0",
		"endpoints": []string{
			"GET /api/health",
			"POST /api/donations",
			"GET /api/donations/stats",
			"GET /api/donations/:referenceNumber",
			"POST /api/referrals",
			"GET /api/referrals/:code",
			"GET /api/referrals",
			"GET /api/content",
			"GET /api/content/section/:section",
			"GET /api/content/goals",
			"POST /api/admin/login",
			"GET /api/admin/donations",
			"PATCH /api/admin/donations/:id/status",
			"GET /api/admin/dashboard",
			"GET /api/admin/reports",
			"POST /api/privacy/data-request",
			"GET /api/privacy/policy",
		},
	})
}
