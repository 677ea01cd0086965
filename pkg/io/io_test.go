package io

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/tier"
)

const sample = `{
  "name": "session",
  "media": "s.wav",
  "tiers": [
    {"name": "words", "annotations": [
      {"begin": 0, "end": 420, "value": "hello"},
      {"begin": 500, "end": 900, "value": "world"}
    ]},
    {"name": "gloss", "annotations": []}
  ]
}`

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if doc.Name != "session" || doc.Media != "s.wav" {
		t.Errorf("Name, Media = %q, %q; want session, s.wav", doc.Name, doc.Media)
	}
	if got := strings.Join(doc.TierNames(), ","); got != "words,gloss" {
		t.Errorf("TierNames() = %s", got)
	}
	words, _ := doc.Tier("words")
	if len(words.Annotations) != 2 || words.Annotations[1].Value != "world" || words.Annotations[1].ID != 1 {
		t.Errorf("words = %+v", words.Annotations)
	}
	if doc.MaxEnd() != 900 {
		t.Errorf("MaxEnd() = %d, want 900", doc.MaxEnd())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause error
	}{
		{"malformed", `{"name":`, nil},
		{"empty tier name", `{"tiers":[{"name":""}]}`, tier.ErrInvalidTierName},
		{"duplicate tier", `{"tiers":[{"name":"a"},{"name":"a"}]}`, tier.ErrDuplicateTier},
		{"overlap", `{"tiers":[{"name":"a","annotations":[{"begin":0,"end":10},{"begin":5,"end":20}]}]}`, tier.ErrOverlap},
		{"unordered", `{"tiers":[{"name":"a","annotations":[{"begin":50,"end":60},{"begin":0,"end":10}]}]}`, tier.ErrUnordered},
		{"negative", `{"tiers":[{"name":"a","annotations":[{"begin":10,"end":5}]}]}`, tier.ErrNegativeInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Fatalf("ReadJSON() error = %v, want %s", err, errors.ErrCodeInvalidDocument)
			}
			if tt.cause != nil && !stderrors.Is(err, tt.cause) {
				t.Errorf("ReadJSON() error = %v, want cause %v", err, tt.cause)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}

	var a, b bytes.Buffer
	if err := WriteJSON(doc, &a); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(back, &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("round trip changed document:\n%s\nvs\n%s", a.String(), b.String())
	}
	if !strings.Contains(a.String(), `"annotations": []`) {
		t.Errorf("empty tier should export an empty array:\n%s", a.String())
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestImportJSONExample(t *testing.T) {
	doc, err := ImportJSON(filepath.Join("..", "..", "examples", "session.json"))
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if got := strings.Join(doc.TierNames(), ","); got != "words,gloss,translation" {
		t.Errorf("TierNames() = %s", got)
	}
	if doc.MaxEnd() != 3800 {
		t.Errorf("MaxEnd() = %d, want 3800", doc.MaxEnd())
	}
}
