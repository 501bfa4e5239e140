package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/metrics"
	"github.com/pageza/pantrypal/backend/internal/model"
	"github.com/pageza/pantrypal/backend/internal/recommend"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	corpus, err := recommend.NewCorpus([]model.Recipe{
		{ID: 1, Cuisine: "italian", Ingredients: model.StringList{"tomatoes", "basil", "garlic"}},
		{ID: 2, Cuisine: "thai", Ingredients: model.StringList{"rice noodles", "peanuts", "lime"}},
	})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Recommend.DefaultCount = 5
	cfg.Recommend.MaxCount = 50

	engine := recommend.NewEngine(corpus)
	m := metrics.New()
	logger := zap.NewNop()

	recommendHandler := api.NewRecommendHandler(engine, nil, m, logger, api.Limits{
		DefaultCount: cfg.Recommend.DefaultCount,
		MaxCount:     cfg.Recommend.MaxCount,
	})
	recipeHandler := api.NewRecipeHandler(corpus)

	return SetupRouter(cfg, logger, corpus, recommendHandler, recipeHandler, nil, m, nil)
}

func TestRoutesAreWired(t *testing.T) {
	router := setupRouter(t)

	paths := []string{
		"/health",
		"/metrics",
		"/api/v1/recipes",
		"/api/v1/recipes/1",
		"/api/v1/cuisines",
		"/api/v1/allergens",
		"/api/v1/stats",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

func TestRecommendationRouteAcceptsPost(t *testing.T) {
	router := setupRouter(t)

	body := bytes.NewBufferString(`{"ingredients":"garlic tomatoes"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpointExposesCollectors(t *testing.T) {
	router := setupRouter(t)

	// Drive one API request so the HTTP collectors have samples.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pantrypal_http_requests_total")
}
