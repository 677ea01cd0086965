package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/interlinear/pkg/cache"
	docio "github.com/matzehuels/interlinear/pkg/io"
	"github.com/matzehuels/interlinear/pkg/observability"
	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the export → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *tier.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg, err := opts.Config(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.TierCount = len(cfg.Tiers)
	logger := opts.Logger.With("run_id", result.RunID)

	hash, err := DocumentHash(doc)
	if err != nil {
		return nil, err
	}
	result.DocumentHash = hash

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			logger.Info("served from cache", "document", doc.Name, "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Export
	hooks := observability.Pipeline()
	exportStart := time.Now()
	hooks.OnExportStart(ctx, doc.Name, len(cfg.Tiers))
	body, err := interlinear.Export(ctx, cfg, doc)
	result.Stats.ExportTime = time.Since(exportStart)
	if err != nil {
		hooks.OnExportComplete(ctx, doc.Name, 0, result.Stats.ExportTime, err)
		return nil, fmt.Errorf("export: %w", err)
	}
	hooks.OnExportComplete(ctx, doc.Name, len(body.Sections), result.Stats.ExportTime, nil)
	result.Body = body
	result.Stats.BlockCount = len(body.Sections)
	result.Stats.LineCount = body.Lines()

	logger.Info("exported grid",
		"document", doc.Name,
		"tiers", result.Stats.TierCount,
		"blocks", result.Stats.BlockCount,
		"duration", result.Stats.ExportTime)

	// Stage 2: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(body, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	// Cache each format
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return result, nil
}

// cached returns every requested artifact from the cache, or false when any
// one of them is missing.
func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, len(artifacts) == len(opts.Formats)
}

// DocumentHash returns the content hash of doc's canonical JSON form.
func DocumentHash(doc *tier.Document) (string, error) {
	var buf bytes.Buffer
	if err := docio.WriteJSON(doc, &buf); err != nil {
		return "", fmt.Errorf("serialize document for cache key: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
