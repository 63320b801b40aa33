// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"refundly/internal/cancellations"
	"refundly/internal/notifications"
	"refundly/internal/policy"
	"refundly/internal/products"
	"refundly/internal/shared/config"
	"refundly/internal/shared/database"
	"refundly/pkg/cache"
	"refundly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config         *config.Config
	db             *database.DB
	producer       notifications.Producer
	productService products.Service // For dependency injection
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup product routes (must be before cancellation routes for dependency injection)
		r.setupProductRoutes(api)

		// Setup cancellation routes
		r.setupCancellationRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "refundly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "refundly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupProductRoutes configures product catalog routes
func (r *Router) setupProductRoutes(rg *gin.RouterGroup) {
	appLogger := logger.GetDefault()

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.GetRedisClient())
	}

	productRepo := products.NewRepository(r.db.GetPostgreSQL())
	productService := products.NewService(productRepo, cacheService)
	productController := products.NewController(productService, appLogger)

	// Store product service for dependency injection
	r.productService = productService

	products.SetupProductRoutes(rg, productController)
}

// setupCancellationRoutes configures cancellation routes
func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	appLogger := logger.GetDefault()

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.GetRedisClient())
	}

	cancellationRepo := cancellations.NewRepository(r.db.GetPostgreSQL())
	cancellationService := cancellations.NewService(
		cancellationRepo,
		r.productService,
		policy.NewEngine(),
		r.producer,
		cacheService,
		appLogger,
	)
	cancellationController := cancellations.NewController(cancellationService, appLogger)

	cancellations.SetupCancellationRoutes(rg, cancellationController)
}
