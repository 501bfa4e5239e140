package recommend

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into runs of letters, digits and
// underscores. Single-rune tokens are dropped. Commas and other punctuation
// in free-form ingredient input never reach the vector space.
func Tokenize(text string) []string {
	var tokens []string
	var current []rune

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current = append(current, r)
			continue
		}
		if len(current) >= 2 {
			tokens = append(tokens, string(current))
		}
		current = current[:0]
	}
	if len(current) >= 2 {
		tokens = append(tokens, string(current))
	}

	return tokens
}

// NormalizeIngredients flattens an ingredient list into the lowercase text
// that feeds vectorization. Queries and corpus documents go through the
// same tokenizer, so both sides see identical terms.
func NormalizeIngredients(ingredients []string) string {
	return strings.ToLower(strings.Join(ingredients, " "))
}
