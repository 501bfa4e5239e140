package recommend

import (
	"strings"

	"github.com/pageza/pantrypal/backend/internal/model"
)

// Recommendation is one ranked result: a corpus recipe and its cosine
// similarity to the query, in [0, 1].
type Recommendation struct {
	Recipe model.Recipe
	Score  float64
}

// Engine answers ingredient queries against a loaded corpus. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	corpus *Corpus
}

// NewEngine returns an engine over the given corpus.
func NewEngine(corpus *Corpus) *Engine {
	return &Engine{corpus: corpus}
}

// Corpus exposes the engine's corpus for browsing endpoints.
func (e *Engine) Corpus() *Corpus { return e.corpus }

// Recommend ranks the whole corpus against the free-text ingredient query,
// drops recipes carrying any of the excluded allergen categories, and
// returns the first topN of what remains.
//
// An empty or whitespace-only query returns ErrEmptyQuery. topN <= 0
// returns an empty result without error. A query containing no known
// ingredient tokens still returns the full ranked list with all scores at
// zero, so callers can distinguish "no signal" from "no data". Filtering
// can legitimately leave fewer than topN results.
func (e *Engine) Recommend(query string, topN int, excludeAllergens []string) ([]Recommendation, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if topN <= 0 {
		return []Recommendation{}, nil
	}

	queryVec := e.corpus.space.Transform(query)
	matches := Rank(queryVec, e.corpus.docs)

	excluded := normalizeExclusions(excludeAllergens)

	results := make([]Recommendation, 0, topN)
	for _, m := range matches {
		rec := e.corpus.recipes[m.Index]
		if hasExcludedAllergen(rec.Allergens, excluded) {
			continue
		}
		results = append(results, Recommendation{Recipe: rec, Score: m.Score})
		if len(results) == topN {
			break
		}
	}
	return results, nil
}

func normalizeExclusions(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	excluded := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			excluded[name] = true
		}
	}
	return excluded
}

// hasExcludedAllergen matches a detector label like "dairy, eggs" against
// the excluded category set. The NoAllergens label never matches anything.
func hasExcludedAllergen(label string, excluded map[string]bool) bool {
	if len(excluded) == 0 || label == NoAllergens {
		return false
	}
	for _, category := range strings.Split(label, ", ") {
		if excluded[strings.ToLower(category)] {
			return true
		}
	}
	return false
}
