package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrypal/backend/internal/model"
)

type fakeSource struct {
	recipes []model.Recipe
	err     error
}

func (s *fakeSource) Fetch(ctx context.Context) ([]model.Recipe, error) {
	return s.recipes, s.err
}

func (s *fakeSource) Name() string { return "fake" }

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

func testCorpus(t *testing.T) *Corpus {
	t.Helper()
	corpus, err := NewCorpus(testRecipes())
	require.NoError(t, err)
	return corpus
}

func TestLoadBuildsCorpus(t *testing.T) {
	corpus, err := Load(context.Background(), &fakeSource{recipes: testRecipes()})

	require.NoError(t, err)
	assert.Equal(t, 6, corpus.Len())
	assert.Greater(t, corpus.Terms(), 0)
	assert.NotEmpty(t, corpus.Fingerprint())
	assert.Equal(t, "fake", corpus.Source())
}

func TestLoadSourceFailure(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := Load(context.Background(), &fakeSource{err: cause})

	require.Error(t, err)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "fake", srcErr.Source)
	assert.ErrorIs(t, err, cause)
}

func TestLoadEmptyDatasetIsAnError(t *testing.T) {
	_, err := Load(context.Background(), &fakeSource{recipes: []model.Recipe{}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRecipes)
	var srcErr *SourceError
	assert.ErrorAs(t, err, &srcErr)
}

func TestNewCorpusRejectsMissingID(t *testing.T) {
	recipes := testRecipes()
	recipes[2].ID = 0

	_, err := NewCorpus(recipes)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 2, formatErr.Index)
	assert.Contains(t, formatErr.Error(), "missing id")
}

func TestNewCorpusRejectsEmptyIngredients(t *testing.T) {
	recipes := testRecipes()
	recipes[4].Ingredients = model.StringList{}

	_, err := NewCorpus(recipes)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 4, formatErr.Index)
	assert.EqualValues(t, 105, formatErr.RecipeID)
	assert.Contains(t, formatErr.Error(), "missing ingredient list")
}

func TestNewCorpusRejectsDuplicateID(t *testing.T) {
	recipes := testRecipes()
	recipes[3].ID = recipes[0].ID

	_, err := NewCorpus(recipes)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Error(), "duplicate id")
}

func TestNewCorpusLabelsAllergens(t *testing.T) {
	corpus := testCorpus(t)

	italian, ok := corpus.ByID(101)
	require.True(t, ok)
	assert.Equal(t, "dairy", italian.Allergens)

	chinese, _ := corpus.ByID(103)
	assert.Equal(t, "soy", chinese.Allergens)

	greek, _ := corpus.ByID(104)
	assert.Equal(t, "dairy, eggs", greek.Allergens)

	indian, _ := corpus.ByID(105)
	assert.Equal(t, NoAllergens, indian.Allergens)

	thai, _ := corpus.ByID(106)
	assert.Equal(t, "nuts", thai.Allergens)
}

func TestNewCorpusDerivesDisplayNames(t *testing.T) {
	recipes := []model.Recipe{
		{ID: 1, Cuisine: "cajun_creole", Ingredients: model.StringList{"rice", "shrimp"}},
		{ID: 2, Cuisine: "italian", Name: "Nonna's Ragu", Ingredients: model.StringList{"beef", "tomatoes"}},
	}
	corpus, err := NewCorpus(recipes)
	require.NoError(t, err)

	derived, _ := corpus.ByID(1)
	assert.Equal(t, "Cajun Creole Recipe #1", derived.Name)

	named, _ := corpus.ByID(2)
	assert.Equal(t, "Nonna's Ragu", named.Name, "existing names are kept")
}

func TestNewCorpusNormalizesCuisine(t *testing.T) {
	recipes := []model.Recipe{
		{ID: 1, Cuisine: " Italian ", Ingredients: model.StringList{"pasta"}},
	}
	corpus, err := NewCorpus(recipes)
	require.NoError(t, err)

	rec, _ := corpus.ByID(1)
	assert.Equal(t, "italian", rec.Cuisine)
}

func TestCorpusByIDMiss(t *testing.T) {
	corpus := testCorpus(t)

	_, ok := corpus.ByID(999999)
	assert.False(t, ok)
}

func TestCorpusCuisinesSortedDistinct(t *testing.T) {
	corpus := testCorpus(t)

	assert.Equal(t, []string{"chinese", "greek", "indian", "italian", "mexican", "thai"}, corpus.Cuisines())
}

func TestCorpusPage(t *testing.T) {
	corpus := testCorpus(t)

	page, total := corpus.Page("", 0, 4)
	assert.Equal(t, 6, total)
	require.Len(t, page, 4)
	assert.EqualValues(t, 101, page[0].ID)

	page, total = corpus.Page("", 4, 4)
	assert.Equal(t, 6, total)
	assert.Len(t, page, 2)

	page, total = corpus.Page("GREEK", 0, 10)
	assert.Equal(t, 1, total)
	require.Len(t, page, 1)
	assert.EqualValues(t, 104, page[0].ID)

	page, total = corpus.Page("", 100, 10)
	assert.Equal(t, 6, total)
	assert.Empty(t, page)
}

func TestCorpusFingerprint(t *testing.T) {
	first := testCorpus(t)
	second := testCorpus(t)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint(), "same content, same fingerprint")

	smaller, err := NewCorpus(testRecipes()[:3])
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint(), smaller.Fingerprint())
}
