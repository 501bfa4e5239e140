package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/cache"
	"github.com/pageza/pantrypal/backend/internal/metrics"
	"github.com/pageza/pantrypal/backend/internal/model"
	"github.com/pageza/pantrypal/backend/internal/recommend"
)

// Limits bounds how many results one request may ask for.
type Limits struct {
	DefaultCount int
	MaxCount     int
}

type RecommendHandler struct {
	engine   *recommend.Engine
	cache    *cache.RecommendationCache
	metrics  *metrics.Metrics
	logger   *zap.Logger
	detector *recommend.Detector
	limits   Limits
}

func NewRecommendHandler(engine *recommend.Engine, recCache *cache.RecommendationCache, m *metrics.Metrics, logger *zap.Logger, limits Limits) *RecommendHandler {
	return &RecommendHandler{
		engine:   engine,
		cache:    recCache,
		metrics:  m,
		logger:   logger,
		detector: recommend.NewDetector(),
		limits:   limits,
	}
}

func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommendations", h.Recommend)
}

// Recommend ranks the corpus against the posted ingredient text and returns
// the top matches after allergen and cuisine filtering.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecommendationServed("invalid_request", 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Count < 0 {
		h.metrics.RecommendationServed("invalid_request", 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must not be negative"})
		return
	}
	count := req.Count
	if count == 0 {
		count = h.limits.DefaultCount
	}
	if count > h.limits.MaxCount {
		count = h.limits.MaxCount
	}

	for _, name := range req.ExcludeAllergens {
		if !h.detector.IsCategory(name) {
			h.metrics.RecommendationServed("invalid_request", 0)
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown allergen category: %s", strings.TrimSpace(name))})
			return
		}
	}

	ctx := c.Request.Context()
	var key string
	if h.cache.Enabled() {
		key = h.cache.Key(h.engine.Corpus().Fingerprint(), req.Ingredients, count, req.ExcludeAllergens, req.Cuisines)
		if payload, ok := h.cache.Get(ctx, key); ok {
			h.metrics.CacheLookup(true)
			h.metrics.RecommendationServed("cache_hit", 0)
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
		h.metrics.CacheLookup(false)
	}

	cuisines := toSet(req.Cuisines)
	fetch := count
	if len(cuisines) > 0 {
		// Over-fetch so the cuisine filter still has enough candidates.
		fetch = count * 3
	}

	start := time.Now()
	recs, err := h.engine.Recommend(req.Ingredients, fetch, req.ExcludeAllergens)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyQuery) {
			h.metrics.RecommendationServed("empty_query", 0)
			c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients must not be empty"})
			return
		}
		h.metrics.RecommendationServed("error", 0)
		h.logger.Error("Recommendation failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute recommendations"})
		return
	}

	results := make([]RecommendationResponse, 0, count)
	for _, rec := range recs {
		if len(cuisines) > 0 && !cuisines[rec.Recipe.Cuisine] {
			continue
		}
		results = append(results, RecommendationResponse{
			RecipeResponse: toRecipeResponse(rec.Recipe),
			Similarity:     rec.Score,
		})
		if len(results) == count {
			break
		}
	}

	payload, err := json.Marshal(RecommendResponse{
		Query:        strings.TrimSpace(req.Ingredients),
		Count:        len(results),
		TotalRecipes: h.engine.Corpus().Len(),
		Results:      results,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode response"})
		return
	}

	h.metrics.RecommendationServed("ok", elapsed)
	if key != "" {
		h.cache.Set(ctx, key, payload)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func toRecipeResponse(rec model.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          rec.ID,
		Name:        rec.Name,
		Cuisine:     rec.Cuisine,
		Ingredients: rec.Ingredients,
		Allergens:   rec.Allergens,
	}
}

// toSet lowercases and trims values into a lookup set, dropping empties.
func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
