package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrypal/backend/internal/cache"
	"github.com/pageza/pantrypal/backend/internal/recommend"
)

// Health reports readiness. The corpus is loaded before the server starts,
// so a serving process is by definition ready; the recipe count doubles as
// a cheap sanity signal. When caching is enabled the Redis connection is
// probed too, but an unreachable cache never fails the check: the service
// degrades to uncached responses.
func Health(corpus *recommend.Corpus, recCache *cache.RecommendationCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"recipes": corpus.Len(),
		}
		if recCache.Enabled() {
			if err := recCache.Ping(c.Request.Context()); err != nil {
				body["cache"] = "unreachable"
			} else {
				body["cache"] = "ok"
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
