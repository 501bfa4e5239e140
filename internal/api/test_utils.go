package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/metrics"
	"github.com/pageza/pantrypal/backend/internal/model"
	"github.com/pageza/pantrypal/backend/internal/recommend"
)

// testRecipes is a tiny corpus with one recipe per cuisine and a known
// allergen spread: dairy (101), none (102), soy (103), dairy+eggs (104),
// none (105), nuts (106).
func testRecipes() []model.Recipe {
	return []model.Recipe{
		{ID: 101, Cuisine: "italian", Ingredients: model.StringList{"tomatoes", "basil", "garlic", "olive oil", "parmesan cheese"}},
		{ID: 102, Cuisine: "mexican", Ingredients: model.StringList{"tortillas", "black beans", "chili powder", "onion", "cilantro"}},
		{ID: 103, Cuisine: "chinese", Ingredients: model.StringList{"soy sauce", "ginger", "garlic", "rice", "sesame oil"}},
		{ID: 104, Cuisine: "greek", Ingredients: model.StringList{"cucumber", "feta cheese", "olive oil", "oregano", "eggs"}},
		{ID: 105, Cuisine: "indian", Ingredients: model.StringList{"lentils", "turmeric", "cumin", "onion", "ginger"}},
		{ID: 106, Cuisine: "thai", Ingredients: model.StringList{"rice noodles", "peanuts", "bean sprouts", "lime", "fish sauce"}},
	}
}

func testCorpus(t *testing.T) *recommend.Corpus {
	t.Helper()
	corpus, err := recommend.NewCorpus(testRecipes())
	require.NoError(t, err)
	return corpus
}

// setupTestRouter builds a router with every handler wired against the
// fixture corpus, caching disabled.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	corpus := testCorpus(t)
	engine := recommend.NewEngine(corpus)

	recommendHandler := NewRecommendHandler(engine, nil, metrics.New(), zap.NewNop(), Limits{DefaultCount: 5, MaxCount: 50})
	recipeHandler := NewRecipeHandler(corpus)

	router := gin.New()
	v1 := router.Group("/api/v1")
	recommendHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	router.GET("/health", Health(corpus, nil))

	return router
}

// performRequest is a helper function to make HTTP requests in tests
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
