package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrypal/backend/internal/recommend"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type RecipeHandler struct {
	corpus   *recommend.Corpus
	detector *recommend.Detector
}

func NewRecipeHandler(corpus *recommend.Corpus) *RecipeHandler {
	return &RecipeHandler{
		corpus:   corpus,
		detector: recommend.NewDetector(),
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
	router.GET("/cuisines", h.ListCuisines)
	router.GET("/allergens", h.ListAllergens)
	router.GET("/stats", h.Stats)
}

// ListRecipes pages through the corpus, optionally filtered to one cuisine.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		offset = parsed
	}

	page, total := h.corpus.Page(c.Query("cuisine"), offset, limit)

	recipes := make([]RecipeResponse, len(page))
	for i, rec := range page {
		recipes[i] = toRecipeResponse(rec)
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, ok := h.corpus.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

func (h *RecipeHandler) ListCuisines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cuisines": h.corpus.Cuisines(),
	})
}

// ListAllergens exposes the detection table so clients can build filters
// from the same categories the server labels with.
func (h *RecipeHandler) ListAllergens(c *gin.Context) {
	table := h.detector.Table()
	allergens := make([]AllergenCategoryResponse, len(table))
	for i, cat := range table {
		allergens[i] = AllergenCategoryResponse{
			Category: cat.Category,
			Keywords: cat.Keywords,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"allergens": allergens,
	})
}

func (h *RecipeHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{
		TotalRecipes:    h.corpus.Len(),
		VocabularyTerms: h.corpus.Terms(),
		Cuisines:        len(h.corpus.Cuisines()),
		Source:          h.corpus.Source(),
		Fingerprint:     h.corpus.Fingerprint(),
	})
}
