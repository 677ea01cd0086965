// Package source loads tier documents from where they are stored.
//
// A [Source] yields one [tier.Document]. Two implementations exist: the
// [file] package reads the JSON format of the io package, and the [mongo]
// package assembles a document from annotation records in a MongoDB
// collection. [Cached] wraps a remote source with a document cache.
//
// [file]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/source/file
// [mongo]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/source/mongo
package source

import (
	"bytes"
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/interlinear/pkg/cache"
	docio "github.com/matzehuels/interlinear/pkg/io"
	"github.com/matzehuels/interlinear/pkg/observability"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// Source loads a tier document.
type Source interface {
	// Kind names the backend, e.g. "file" or "mongo".
	Kind() string
	// Name identifies the document within the backend.
	Name() string
	// Load reads and validates the document.
	Load(ctx context.Context) (*tier.Document, error)
}

// Cached returns a Source that serves documents from c before asking src.
// Cache failures are logged and otherwise ignored.
func Cached(src Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) Source {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &cached{src: src, cache: c, keyer: keyer, logger: logger}
}

type cached struct {
	src    Source
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

func (c *cached) Kind() string { return c.src.Kind() }
func (c *cached) Name() string { return c.src.Name() }

func (c *cached) Load(ctx context.Context) (*tier.Document, error) {
	key := c.keyer.DocumentKey(c.src.Kind(), c.src.Name())
	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("document cache read failed", "key", key, "err", err)
	}
	if hit {
		doc, err := docio.ReadJSON(bytes.NewReader(data))
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "document")
			return doc, nil
		}
		c.logger.Warn("discarding corrupt cached document", "key", key, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "document")

	doc, err := c.src.Load(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := docio.WriteJSON(doc, &buf); err == nil {
		if err := c.cache.Set(ctx, key, buf.Bytes(), cache.TTLDocument); err != nil {
			c.logger.Warn("document cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "document", buf.Len())
		}
	}
	return doc, nil
}
