package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/malamapl09/donaciones-pola-allande/docs"
	"github.com/malamapl09/donaciones-pola-allande/internal/app/controllers"
	"github.com/malamapl09/donaciones-pola-allande/internal/app/middleware"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/ratelimit"
)

// localOrigins are accepted by CORS outside production
var localOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://localhost:3000",
}

// SetupRouter builds the gin engine with every route and middleware
func SetupRouter(serviceContainer *container.ServiceContainer) *gin.Engine {
	cfg := serviceContainer.GetConfig()

	r := gin.New()

	origins := []string{cfg.FrontendURL}
	if cfg.EnvType != "SERVER" {
		origins = append(origins, localOrigins...)
	}

	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(origins...))
	r.Use(middleware.BodyLimit(1 << 20))

	r.GET("/", controllers.HandleHealthFunc(serviceContainer, "index"))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, code.ErrRouteNotFound)
	})
	return r
}

// registerRoutes mounts the API under /api
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	limiters := container.Limiters()

	api := r.Group("/api")
	api.Use(middleware.DetectSuspiciousActivity())
	api.Use(middleware.PolicyRateLimiter(limiters, ratelimit.PolicyGeneral))

	registerPublicRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerPublicRoutes mounts the unauthenticated endpoints
func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	limiters := container.Limiters()

	api.GET("/health", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	donations := api.Group("/donations")
	donations.POST("", middleware.PolicyRateLimiter(limiters, ratelimit.PolicyDonation),
		controllers.HandleDonationFunc(container, "createDonation"))
	donations.GET("/stats", controllers.HandleDonationFunc(container, "getStats"))
	donations.GET("/:referenceNumber", controllers.HandleDonationFunc(container, "getByReference"))

	referrals := api.Group("/referrals")
	referrals.POST("", controllers.HandleReferralFunc(container, "createReferral"))
	referrals.GET("", controllers.HandleReferralFunc(container, "listLeaderboard"))
	referrals.GET("/:code", controllers.HandleReferralFunc(container, "getByCode"))

	content := api.Group("/content")
	content.GET("", controllers.HandleContentFunc(container, "getAllSections"))
	content.GET("/goals", controllers.HandleContentFunc(container, "getActiveGoal"))
	content.GET("/section/:section", controllers.HandleContentFunc(container, "getSection"))
	content.GET("/:section", controllers.HandleContentFunc(container, "getSection"))

	privacy := api.Group("/privacy")
	privacy.POST("/data-request", controllers.HandlePrivacyFunc(container, "dataRequest"))
	privacy.GET("/policy", controllers.HandlePrivacyFunc(container, "policy"))
	privacy.GET("/cookies", controllers.HandlePrivacyFunc(container, "cookies"))
}

// registerAdminRoutes mounts login and the bearer-protected endpoints
func registerAdminRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	admin := api.Group("/admin")
	admin.POST("/login", middleware.PolicyRateLimiter(container.Limiters(), ratelimit.PolicyLogin),
		controllers.HandleJWTFunc(container, "login"))

	auth := admin.Group("")
	auth.Use(middleware.AuthenticateAdmin(
		container.GetService("jwt").(services.InterfaceJWTService),
		container.GetService("admin").(services.InterfaceAdminService),
	))

	auth.GET("/donations", controllers.HandleAdminFunc(container, "listDonations"))
	auth.PATCH("/donations/:id/status", controllers.HandleAdminFunc(container, "updateDonationStatus"))
	auth.GET("/dashboard", controllers.HandleAdminFunc(container, "getDashboard"))
	auth.GET("/reports", controllers.HandleAdminFunc(container, "getReports"))
	auth.GET("/content", controllers.HandleContentFunc(container, "listAllSections"))
	auth.PUT("/content", controllers.HandleContentFunc(container, "upsertSection"))
}
