package recommend

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned by Recommend when the query contains no text.
var ErrEmptyQuery = errors.New("query must not be empty")

// ErrNoRecipes marks a dataset source that yielded zero recipes. An empty
// corpus serves nothing, so loading treats it the same as an unreadable
// source.
var ErrNoRecipes = errors.New("dataset contains no recipes")

// SourceError reports a dataset source that could not be read. It wraps the
// underlying cause so callers can inspect it with errors.Is/As.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("dataset source %q: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// FormatError reports a dataset record that does not satisfy the corpus
// schema. A single malformed record fails the whole load: a partially
// loaded corpus would silently change every ranking.
type FormatError struct {
	Index    int
	RecipeID int64
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dataset record %d (recipe id %d): %s", e.Index, e.RecipeID, e.Reason)
}
