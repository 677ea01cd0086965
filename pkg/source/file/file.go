// Package file loads tier documents from JSON files.
package file

import (
	"context"
	"path/filepath"

	docio "github.com/matzehuels/interlinear/pkg/io"
	"github.com/matzehuels/interlinear/pkg/source"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// Source reads one JSON document file.
type Source struct {
	path string
}

// New returns a source for the JSON document at path.
func New(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Kind() string { return "file" }

// Name returns the absolute path when it can be resolved.
func (s *Source) Name() string {
	if abs, err := filepath.Abs(s.path); err == nil {
		return abs
	}
	return s.path
}

// Load imports the file. Documents without a name are named after the file.
func (s *Source) Load(ctx context.Context) (*tier.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := docio.ImportJSON(s.path)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		base := filepath.Base(s.path)
		doc.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return doc, nil
}

var _ source.Source = (*Source)(nil)
