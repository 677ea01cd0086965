package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/interlinear/pkg/errors"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elicitation.json")
	data := `{"tiers":[{"name":"words","annotations":[{"begin":0,"end":100,"value":"hi"}]}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	src := New(path)
	doc, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Name != "elicitation" {
		t.Errorf("Name = %q, want file base name", doc.Name)
	}
	if src.Kind() != "file" || !filepath.IsAbs(src.Name()) {
		t.Errorf("Kind, Name = %q, %q", src.Kind(), src.Name())
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "none.json")).Load(context.Background())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
