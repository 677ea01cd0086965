// Package cache provides byte-level caching of rendered artifacts.
//
// A [Cache] stores opaque byte slices under string keys with an optional
// time-to-live. Three backends are provided:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries as JSON files for CLI usage
//   - [RedisCache] shares entries between API server instances
//
// Keys are produced by a [Keyer]. The [DefaultKeyer] derives artifact keys
// from a document content hash plus a hash of the render options, so a
// change to either produces a fresh key. [ScopedKeyer] prefixes every key for
// namespace isolation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	// TTLDocument applies to decoded documents loaded from a remote source.
	TTLDocument = 24 * time.Hour
	// TTLArtifact applies to rendered output (text, HTML, ANSI, JSON).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for byte slices.
//
// Get reports a miss with (nil, false, nil); an error means the backend
// failed, not that the key is absent. A ttl of zero means no expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts identifies one rendered artifact of a document.
type ArtifactKeyOpts struct {
	// Format is the output format ("text", "html", "ansi", "json").
	Format string
	// Options holds every render setting that influences the output. It is
	// JSON-encoded and hashed, so it must marshal deterministically.
	Options any
}

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey returns the key of a document loaded from a named source.
	DocumentKey(source, name string) string
	// ArtifactKey returns the key of a rendered artifact of the document with
	// the given content hash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey returns "doc:<source>:<name>".
func (DefaultKeyer) DocumentKey(source, name string) string {
	return "doc:" + source + ":" + name
}

// ArtifactKey returns "artifact:<format>:<hash>" where hash covers the
// document hash and the options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, docHash, opts.Options)
}

var _ Keyer = DefaultKeyer{}
