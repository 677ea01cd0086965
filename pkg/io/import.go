package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// ReadJSON decodes a JSON document from r.
//
// ReadJSON returns an INVALID_DOCUMENT error if the JSON is malformed, a tier
// name is empty or repeated, or a tier is not time-ordered and
// non-overlapping. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tier.Document, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode")
	}
	return build(data)
}

// ImportJSON reads a JSON file at path and returns the decoded document.
// A missing file yields a FILE_NOT_FOUND error.
func ImportJSON(path string) (*tier.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func build(data document) (*tier.Document, error) {
	doc := tier.New(data.Name)
	doc.Media = data.Media
	for _, te := range data.Tiers {
		anns := make([]tier.Annotation, len(te.Annotations))
		for i, a := range te.Annotations {
			anns[i] = tier.Annotation{Begin: a.Begin, End: a.End, Value: a.Value}
		}
		if _, err := doc.AddTier(te.Name, anns); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "tier %q", te.Name)
		}
	}
	if err := doc.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "validate")
	}
	return doc, nil
}
