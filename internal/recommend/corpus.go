package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/pageza/pantrypal/backend/internal/model"
)

// Source is anything that can produce the raw recipe dataset: a JSON file,
// an S3 object, a database table.
type Source interface {
	// Fetch returns every recipe record in the dataset.
	Fetch(ctx context.Context) ([]model.Recipe, error)
	// Name identifies the source in errors and logs, e.g. "file:train.json".
	Name() string
}

// Corpus is the complete, immutable recipe collection with its fitted
// vector space. It is built once at startup and only read afterwards, so it
// is safe for concurrent use without locks.
type Corpus struct {
	recipes     []model.Recipe
	byID        map[int64]int
	space       *VectorSpace
	docs        []Vector
	cuisines    []string
	fingerprint string
	source      string
}

// Load fetches the dataset from src and builds the corpus. Fetch failures
// and empty datasets surface as *SourceError, malformed records as
// *FormatError. Any error means no corpus: the caller must not serve.
func Load(ctx context.Context, src Source) (*Corpus, error) {
	recipes, err := src.Fetch(ctx)
	if err != nil {
		return nil, &SourceError{Source: src.Name(), Err: err}
	}
	if len(recipes) == 0 {
		return nil, &SourceError{Source: src.Name(), Err: ErrNoRecipes}
	}
	c, err := NewCorpus(recipes)
	if err != nil {
		return nil, err
	}
	c.source = src.Name()
	return c, nil
}

// NewCorpus validates and normalizes the given records, labels allergens,
// and fits the vector space over them.
func NewCorpus(recipes []model.Recipe) (*Corpus, error) {
	c := &Corpus{
		recipes: make([]model.Recipe, len(recipes)),
		byID:    make(map[int64]int, len(recipes)),
	}
	detector := NewDetector()
	cuisines := make(map[string]bool)
	texts := make([]string, len(recipes))

	for i, rec := range recipes {
		if rec.ID == 0 {
			return nil, &FormatError{Index: i, RecipeID: rec.ID, Reason: "missing id"}
		}
		if _, dup := c.byID[rec.ID]; dup {
			return nil, &FormatError{Index: i, RecipeID: rec.ID, Reason: "duplicate id"}
		}
		if len(rec.Ingredients) == 0 {
			return nil, &FormatError{Index: i, RecipeID: rec.ID, Reason: "missing ingredient list"}
		}

		rec.Cuisine = strings.ToLower(strings.TrimSpace(rec.Cuisine))
		rec.SearchText = NormalizeIngredients(rec.Ingredients)
		rec.Allergens = detector.Detect(rec.Ingredients)
		rec.Name = rec.DisplayName()

		c.recipes[i] = rec
		c.byID[rec.ID] = i
		texts[i] = rec.SearchText
		if rec.Cuisine != "" {
			cuisines[rec.Cuisine] = true
		}
	}

	c.space, c.docs = Fit(texts)

	c.cuisines = make([]string, 0, len(cuisines))
	for name := range cuisines {
		c.cuisines = append(c.cuisines, name)
	}
	sort.Strings(c.cuisines)

	c.fingerprint = fingerprint(c.recipes, c.space.Terms())
	return c, nil
}

// fingerprint hashes the recipe IDs and vocabulary size so replicas sharing
// a cache can tell corpora apart.
func fingerprint(recipes []model.Recipe, terms int) string {
	h := sha256.New()
	for _, rec := range recipes {
		fmt.Fprintf(h, "%d\n", rec.ID)
	}
	fmt.Fprintf(h, "terms:%d", terms)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Len returns the number of recipes.
func (c *Corpus) Len() int { return len(c.recipes) }

// Recipe returns the recipe at the given corpus index.
func (c *Corpus) Recipe(i int) model.Recipe { return c.recipes[i] }

// ByID looks a recipe up by its dataset ID.
func (c *Corpus) ByID(id int64) (model.Recipe, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Recipe{}, false
	}
	return c.recipes[i], true
}

// Page returns a slice of the corpus for browsing, optionally restricted to
// one cuisine (case-insensitive), plus the total number of matching
// recipes before pagination.
func (c *Corpus) Page(cuisine string, offset, limit int) ([]model.Recipe, int) {
	cuisine = strings.ToLower(strings.TrimSpace(cuisine))

	var filtered []model.Recipe
	if cuisine == "" {
		filtered = c.recipes
	} else {
		for _, rec := range c.recipes {
			if rec.Cuisine == cuisine {
				filtered = append(filtered, rec)
			}
		}
	}

	total := len(filtered)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []model.Recipe{}, total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := make([]model.Recipe, end-offset)
	copy(page, filtered[offset:end])
	return page, total
}

// Cuisines returns the sorted distinct cuisine names.
func (c *Corpus) Cuisines() []string {
	out := make([]string, len(c.cuisines))
	copy(out, c.cuisines)
	return out
}

// Terms returns the fitted vocabulary size.
func (c *Corpus) Terms() int { return c.space.Terms() }

// Fingerprint identifies the loaded corpus content; it feeds cache keys.
func (c *Corpus) Fingerprint() string { return c.fingerprint }

// Source names where the corpus was loaded from, or "" when it was built
// directly from records.
func (c *Corpus) Source() string { return c.source }
