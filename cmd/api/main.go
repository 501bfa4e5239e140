package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/cache"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/dataset"
	"github.com/pageza/pantrypal/backend/internal/logger"
	"github.com/pageza/pantrypal/backend/internal/metrics"
	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/recommend"
	"github.com/pageza/pantrypal/backend/internal/router"
	"github.com/pageza/pantrypal/backend/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Initialize configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	// Load the recipe corpus and fit the vector space before serving.
	src, err := newSource(ctx, cfg)
	if err != nil {
		zapLogger.Fatal("Failed to open dataset source", zap.Error(err))
	}
	corpus, err := recommend.Load(ctx, src)
	if err != nil {
		zapLogger.Fatal("Failed to load recipe corpus", zap.Error(err))
	}
	zapLogger.Info("Corpus loaded",
		zap.String("source", corpus.Source()),
		zap.Int("recipes", corpus.Len()),
		zap.Int("vocabulary_terms", corpus.Terms()),
		zap.Int("cuisines", len(corpus.Cuisines())),
		zap.String("fingerprint", corpus.Fingerprint()),
	)

	engine := recommend.NewEngine(corpus)

	m := metrics.New()
	m.SetCorpusStats(corpus.Len(), corpus.Terms())

	// Redis backs the response cache and the rate limiter. When enabled it
	// must be reachable at startup.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		zapLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))
	}

	var recCache *cache.RecommendationCache
	if redisClient != nil {
		recCache = cache.New(redisClient, cfg.Redis.CacheTTL, zapLogger)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    cfg.RateLimit.Window,
			Limit:     cfg.RateLimit.Limit,
			KeyPrefix: "rate_limit:api",
		})
	}

	recommendHandler := api.NewRecommendHandler(engine, recCache, m, zapLogger, api.Limits{
		DefaultCount: cfg.Recommend.DefaultCount,
		MaxCount:     cfg.Recommend.MaxCount,
	})
	recipeHandler := api.NewRecipeHandler(corpus)

	ginRouter := router.SetupRouter(cfg, zapLogger, corpus, recommendHandler, recipeHandler, recCache, m, rateLimiter)

	// Create and start server
	srv := server.New(cfg, zapLogger, ginRouter)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			zapLogger.Fatal("Server error", zap.Error(err))
		}
	case sig := <-quit:
		zapLogger.Info("Received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	if err := srv.Shutdown(context.Background()); err != nil {
		zapLogger.Fatal("Server shutdown error", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}

// newSource builds the dataset source selected by the configuration.
func newSource(ctx context.Context, cfg *config.Config) (recommend.Source, error) {
	switch cfg.Dataset.Source {
	case "file":
		return dataset.NewFileSource(cfg.Dataset.Path), nil
	case "s3":
		src, err := dataset.NewS3Source(ctx, cfg.Dataset.S3.Bucket, cfg.Dataset.S3.Key, cfg.Dataset.S3.Region)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "database":
		db, err := database.New(cfg)
		if err != nil {
			return nil, err
		}
		return dataset.NewDatabaseSource(db), nil
	default:
		return nil, fmt.Errorf("unsupported dataset source: %q", cfg.Dataset.Source)
	}
}
