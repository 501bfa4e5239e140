package recommend

import "sort"

// Match pairs a corpus index with its cosine similarity to the query.
type Match struct {
	Index int
	Score float64
}

// Rank scores the query vector against every document and returns one Match
// per document, ordered by score descending. Equal scores keep corpus
// order, so the ranking is a deterministic total order. Truncation is the
// caller's concern.
func Rank(query Vector, docs []Vector) []Match {
	matches := make([]Match, len(docs))
	for i, doc := range docs {
		matches[i] = Match{Index: i, Score: dot(query, doc)}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})
	return matches
}

// dot multiplies two sparse unit vectors by merging their sorted component
// lists. Both sides are L2-normalized at construction, so the result is the
// cosine similarity and stays within [0, 1] for non-negative weights.
func dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Dim < b[j].Dim:
			i++
		case a[i].Dim > b[j].Dim:
			j++
		default:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		}
	}
	return sum
}
