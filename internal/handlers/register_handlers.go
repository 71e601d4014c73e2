package handlers

import (
	"fmt"

	"github.com/SscSPs/transaction_analyzer/cmd/docs"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
	"github.com/SscSPs/transaction_analyzer/internal/middleware"
	"github.com/SscSPs/transaction_analyzer/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	// Add health check route
	r.GET("/health", getHealth)

	if err := setupAPIRoutes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	api := r.Group("/api")

	var importGuards []gin.HandlerFunc
	if cfg.ImportRateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.ImportRateLimit)
		if err != nil {
			return fmt.Errorf("invalid import rate limit %q: %w", cfg.ImportRateLimit, err)
		}
		importGuards = append(importGuards, middleware.RateLimit(limiter))
	}

	registerImportRoutes(api, newImportHandler(service.Import, service.ImportJob, cfg.ImportMaxUploadBytes), importGuards...)
	registerStatisticsRoutes(api, service.Statistics)
	registerTransactionRoutes(api, service.Transaction)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
