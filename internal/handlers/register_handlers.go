package handlers

import (
	"github.com/byildiz78/kd-cdc-sub000/cmd/docs"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils"
	"github.com/byildiz78/kd-cdc-sub000/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	erpLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services, erpLimiter, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	erpLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1")

	// Operator surface: sync triggers and token provisioning.
	RegisterSyncRoutes(v1, services.Sync, services.Company)
	RegisterERPTokenRoutes(v1, services.ERPToken)

	// ERP surface: bearer-token scoped to one company, rate limited.
	erpGroup := v1.Group("",
		middleware.RateLimit(erpLimiter),
		middleware.ERPAuthMiddleware(services.ERPToken, services.Company, cfg.JWTSecret),
		middleware.PosthogMiddleware(posthogClient),
	)
	RegisterERPRoutes(erpGroup, services.Snapshot)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
