package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/interlinear/pkg/tier"
)

type document struct {
	Name  string      `json:"name"`
	Media string      `json:"media,omitempty"`
	Tiers []tierEntry `json:"tiers"`
}

type tierEntry struct {
	Name        string       `json:"name"`
	Annotations []annotation `json:"annotations"`
}

type annotation struct {
	Begin int64  `json:"begin"`
	End   int64  `json:"end"`
	Value string `json:"value"`
}

// WriteJSON encodes doc as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(doc *tier.Document, w io.Writer) error {
	out := document{Name: doc.Name, Media: doc.Media, Tiers: make([]tierEntry, 0, doc.TierCount())}
	for _, t := range doc.Tiers() {
		te := tierEntry{Name: t.Name, Annotations: make([]annotation, len(t.Annotations))}
		for i, a := range t.Annotations {
			te.Annotations[i] = annotation{Begin: a.Begin, End: a.End, Value: a.Value}
		}
		out.Tiers = append(out.Tiers, te)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *tier.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
