package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/cache"
	"github.com/pageza/pantrypal/backend/internal/metrics"
	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/recommend"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	corpus *recommend.Corpus,
	recommendHandler *api.RecommendHandler,
	recipeHandler *api.RecipeHandler,
	recCache *cache.RecommendationCache,
	m *metrics.Metrics,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(m.HTTPMiddleware())

	// API v1 routes
	v1 := router.Group("/api/v1")
	if rateLimiter != nil {
		v1.Use(rateLimiter.RateLimitMiddleware())
	}
	recommendHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)

	// Operational endpoints stay outside the rate-limited group.
	router.GET("/health", api.Health(corpus, recCache))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	return router
}
