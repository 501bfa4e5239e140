package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/cache"
	"github.com/pageza/pantrypal/backend/internal/dataset"
	"github.com/pageza/pantrypal/backend/internal/metrics"
	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/model"
	"github.com/pageza/pantrypal/backend/internal/recommend"
	"github.com/pageza/pantrypal/backend/internal/router"
	"github.com/pageza/pantrypal/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Recommend.DefaultCount = 5
	cfg.Recommend.MaxCount = 50
	return cfg
}

func seedRecipes(t *testing.T, db *gorm.DB) {
	t.Helper()
	// Inserted out of ID order on purpose; the source must return them
	// ordered.
	recipes := []model.Recipe{
		{ID: 303, Cuisine: "chinese", Ingredients: model.StringList{"soy sauce", "ginger", "rice", "scallions"}},
		{ID: 101, Cuisine: "italian", Ingredients: model.StringList{"tomatoes", "basil", "garlic", "olive oil"}},
		{ID: 202, Cuisine: "mexican", Ingredients: model.StringList{"tortillas", "black beans", "cilantro"}},
	}
	require.NoError(t, db.Create(&recipes).Error)
}

func buildRouter(t *testing.T, corpus *recommend.Corpus, recCache *cache.RecommendationCache, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	logger := zap.NewNop()
	m := metrics.New()
	engine := recommend.NewEngine(corpus)

	recommendHandler := api.NewRecommendHandler(engine, recCache, m, logger, api.Limits{
		DefaultCount: cfg.Recommend.DefaultCount,
		MaxCount:     cfg.Recommend.MaxCount,
	})
	recipeHandler := api.NewRecipeHandler(corpus)

	return router.SetupRouter(cfg, logger, corpus, recommendHandler, recipeHandler, recCache, m, limiter)
}

func postRecommendations(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestDatabaseCorpusEndToEnd seeds a containerized PostgreSQL, loads the
// corpus through the database source, and serves recommendations over HTTP.
func TestDatabaseCorpusEndToEnd(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	seedRecipes(t, db)

	corpus, err := recommend.Load(context.Background(), dataset.NewDatabaseSource(db))
	require.NoError(t, err)
	require.Equal(t, 3, corpus.Len())
	assert.Equal(t, "database:recipes", corpus.Source())

	handler := buildRouter(t, corpus, nil, nil)

	w := postRecommendations(handler, `{"ingredients":"tomatoes basil garlic olive oil"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, int64(101), resp.Results[0].ID)
	assert.InDelta(t, 1.0, resp.Results[0].Similarity, 1e-9)

	// Browsing endpoints see the same corpus.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/303", nil)
	get := httptest.NewRecorder()
	handler.ServeHTTP(get, req)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), "Chinese Recipe #303")
}

// TestRecommendationCacheRoundTrip verifies the second identical request is
// served from Redis with an identical payload.
func TestRecommendationCacheRoundTrip(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)

	corpus, err := recommend.NewCorpus([]model.Recipe{
		{ID: 1, Cuisine: "italian", Ingredients: model.StringList{"tomatoes", "basil"}},
		{ID: 2, Cuisine: "thai", Ingredients: model.StringList{"rice noodles", "peanuts"}},
	})
	require.NoError(t, err)

	recCache := cache.New(client, time.Minute, zap.NewNop())
	handler := buildRouter(t, corpus, recCache, nil)

	body := `{"ingredients":"tomatoes basil","count":2}`

	first := postRecommendations(handler, body)
	require.Equal(t, http.StatusOK, first.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	keys, err := client.Keys(ctx, "recommend:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1, "one payload should be cached after the first request")

	second := postRecommendations(handler, body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	// A different query gets its own cache entry.
	third := postRecommendations(handler, `{"ingredients":"rice noodles","count":2}`)
	require.Equal(t, http.StatusOK, third.Code)
	keys, err = client.Keys(ctx, "recommend:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	// Health reports the reachable cache.
	health := httptest.NewRecorder()
	handler.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"cache":"ok"`)
}

// TestRateLimiterBlocksAfterLimit exercises the fixed-window limiter against
// real Redis.
func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)

	corpus, err := recommend.NewCorpus([]model.Recipe{
		{ID: 1, Cuisine: "greek", Ingredients: model.StringList{"cucumber", "feta cheese"}},
	})
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     3,
		KeyPrefix: "rate_limit:integration",
	})
	handler := buildRouter(t, corpus, nil, limiter)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// The read-only probe sees the exhausted window without consuming it.
	// httptest requests all originate from 192.0.2.1.
	allowed, remaining, _, err := limiter.CheckOnly(context.Background(), "192.0.2.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	// Health stays reachable outside the limited group.
	health := httptest.NewRecorder()
	handler.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}
