package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/pageza/pantrypal/backend/internal/model"
)

// FileSource reads the recipe dataset from a local JSON array file, the
// format the corpus was originally distributed in.
type FileSource struct {
	path string
}

// NewFileSource returns a source for the given file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source in errors and logs.
func (s *FileSource) Name() string { return "file:" + s.path }

// Fetch decodes the whole file in one pass. Datasets are tens of megabytes
// at most and are read exactly once, at startup.
func (s *FileSource) Fetch(ctx context.Context) ([]model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var recipes []model.Recipe
	if err := json.NewDecoder(f).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return recipes, nil
}
