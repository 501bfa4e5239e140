package recommend

import (
	"math"
	"sort"
)

// Component is one non-zero dimension of a sparse vector.
type Component struct {
	Dim    int
	Weight float64
}

// Vector is a sparse TF-IDF vector. Components are sorted by dimension and
// the vector is L2-normalized, so cosine similarity reduces to a dot
// product. A nil/empty Vector is the zero vector.
type Vector []Component

// IsZero reports whether the vector has no non-zero components, i.e. none
// of its tokens exist in the vector space.
func (v Vector) IsZero() bool { return len(v) == 0 }

// VectorSpace holds the vocabulary and IDF weights fitted over a corpus.
// It is fitted exactly once at load; Transform never mutates it, so a
// VectorSpace is safe for any number of concurrent readers.
type VectorSpace struct {
	vocab map[string]int
	idf   []float64
}

// Fit builds the vector space over the given documents and returns it
// together with one unit vector per document, in input order.
//
// Term frequency is the raw in-document count. IDF uses the smoothed form
// ln((1+N)/(1+df))+1, which keeps every weight positive and makes a query
// that repeats a document verbatim score cosine 1.0 against it.
func Fit(texts []string) (*VectorSpace, []Vector) {
	space := &VectorSpace{vocab: make(map[string]int)}

	tokenized := make([][]string, len(texts))
	var df []int
	for i, text := range texts {
		tokens := Tokenize(text)
		tokenized[i] = tokens

		seen := make(map[int]bool, len(tokens))
		for _, tok := range tokens {
			dim, ok := space.vocab[tok]
			if !ok {
				dim = len(space.vocab)
				space.vocab[tok] = dim
				df = append(df, 0)
			}
			if !seen[dim] {
				seen[dim] = true
				df[dim]++
			}
		}
	}

	n := float64(len(texts))
	space.idf = make([]float64, len(df))
	for dim, count := range df {
		space.idf[dim] = math.Log((1+n)/(1+float64(count))) + 1
	}

	docs := make([]Vector, len(texts))
	for i, tokens := range tokenized {
		docs[i] = space.vectorize(tokens)
	}
	return space, docs
}

// Transform maps query text into the fitted space. Tokens outside the
// vocabulary contribute nothing; a query with no known tokens yields the
// zero vector. The space itself never grows or changes.
func (s *VectorSpace) Transform(text string) Vector {
	return s.vectorize(Tokenize(text))
}

// Terms returns the vocabulary size.
func (s *VectorSpace) Terms() int { return len(s.vocab) }

func (s *VectorSpace) vectorize(tokens []string) Vector {
	counts := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		if dim, ok := s.vocab[tok]; ok {
			counts[dim]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	v := make(Vector, 0, len(counts))
	for dim, tf := range counts {
		v = append(v, Component{Dim: dim, Weight: float64(tf) * s.idf[dim]})
	}
	sort.Slice(v, func(i, j int) bool { return v[i].Dim < v[j].Dim })

	var sum float64
	for _, c := range v {
		sum += c.Weight * c.Weight
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i].Weight *= inv
	}
	return v
}
