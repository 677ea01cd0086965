// Package pipeline provides the export pipeline shared by the CLI and the
// HTTP API.
//
// This package turns a tier document plus user-facing [Options] into rendered
// artifacts. By centralizing this logic, the CLI and the API server apply
// the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Export: segment the time range into blocks and lay every configured
//     tier onto the character grid ([interlinear.Export])
//  2. Render: hand the resulting body to one sink per requested format
//     (text, HTML, ANSI, JSON)
//
// Rendered artifacts are cached by document content hash and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Tiers:   []interlinear.TierSetting{{Name: "words", Reference: true}, {Name: "gloss", Italic: true}},
//	    Formats: []string{"html"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/interlinear/pkg/cache"
	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/layout"
	"github.com/matzehuels/interlinear/pkg/tier"
	"github.com/matzehuels/interlinear/pkg/timecode"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTimeUnit is the duration of one character column in milliseconds.
	DefaultTimeUnit = 100

	// DefaultBlockWidth is the nominal number of grid columns per block.
	DefaultBlockWidth = 80

	// DefaultLeftMargin is the width of the tier label column.
	DefaultLeftMargin = 12

	// DefaultTimeFormat is the ruler time format.
	DefaultTimeFormat = "hhmmssms"

	// DefaultAlignment is the alignment of fitted annotation text.
	DefaultAlignment = "left"

	// DefaultColorProfile is used for ANSI output so cached artifacts do not
	// depend on the terminal that produced them.
	DefaultColorProfile = "ansi256"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatANSI = "ansi"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatHTML: true,
	FormatANSI: true,
	FormatJSON: true,
}

// ValidColorProfiles is the set of supported ANSI color profiles.
var ValidColorProfiles = map[string]bool{
	"ascii":     true,
	"ansi":      true,
	"ansi256":   true,
	"truecolor": true,
}

// ContentTypes maps each format to its HTTP content type.
var ContentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatHTML: "text/html; charset=utf-8",
	FormatANSI: "text/plain; charset=utf-8",
	FormatJSON: "application/json",
}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatText: ".txt",
	FormatHTML: ".html",
	FormatANSI: ".ans",
	FormatJSON: ".json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one export run.
// This struct supports JSON serialization for API requests and TOML/YAML
// decoding for config files.
type Options struct {
	// Tier selection. Empty means every tier of the document, in document
	// order, without styles.
	Tiers         []interlinear.TierSetting `json:"tiers,omitempty" toml:"tiers" yaml:"tiers"`
	ReferenceTier string                    `json:"reference_tier,omitempty" toml:"reference_tier" yaml:"reference_tier"`

	// Grid geometry
	TimeUnit   int64 `json:"time_unit,omitempty" toml:"time_unit" yaml:"time_unit"`
	BlockWidth int   `json:"block_width,omitempty" toml:"block_width" yaml:"block_width"`
	LeftMargin int   `json:"left_margin,omitempty" toml:"left_margin" yaml:"left_margin"`

	// Selection in milliseconds. End == 0 means the end of the document.
	Begin int64 `json:"begin,omitempty" toml:"begin" yaml:"begin"`
	End   int64 `json:"end,omitempty" toml:"end" yaml:"end"`

	// Layout switches
	Wrap           bool   `json:"wrap,omitempty" toml:"wrap" yaml:"wrap"`
	ShowBoundaries bool   `json:"show_boundaries,omitempty" toml:"show_boundaries" yaml:"show_boundaries"`
	ShowTimeLine   bool   `json:"show_time_line,omitempty" toml:"show_time_line" yaml:"show_time_line"`
	TimeFormat     string `json:"time_format,omitempty" toml:"time_format" yaml:"time_format"`
	Alignment      string `json:"alignment,omitempty" toml:"alignment" yaml:"alignment"`

	// Render options
	Formats      []string `json:"formats,omitempty" toml:"formats" yaml:"formats"`
	Title        string   `json:"title,omitempty" toml:"title" yaml:"title"`
	Header       string   `json:"header,omitempty" toml:"header" yaml:"header"`
	Footer       string   `json:"footer,omitempty" toml:"footer" yaml:"footer"`
	Fragment     bool     `json:"fragment,omitempty" toml:"fragment" yaml:"fragment"`
	Tokens       bool     `json:"tokens,omitempty" toml:"tokens" yaml:"tokens"`
	ColorProfile string   `json:"color_profile,omitempty" toml:"color_profile" yaml:"color_profile"`

	// Refresh bypasses the artifact cache for reads; results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"-" yaml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// DocumentHash is the content hash of the input document.
	DocumentHash string

	// Body is the exported grid. It is nil when every artifact came from
	// the cache.
	Body *interlinear.Body

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TierCount  int
	BlockCount int
	LineCount  int
	ExportTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, html, ansi, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColorProfile checks that an ANSI color profile name is valid.
func ValidateColorProfile(p string) error {
	if !ValidColorProfiles[p] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid color profile: %q (must be one of: ascii, ansi, ansi256, truecolor)", p)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field that can be
// checked without a document. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateColorProfile(o.ColorProfile); err != nil {
		return err
	}
	if _, err := timecode.Parse(o.TimeFormat); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "time format")
	}
	if _, err := interlinear.ParseAlignment(o.Alignment); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for unset fields.
func (o *Options) SetRenderDefaults() {
	if o.TimeUnit == 0 {
		o.TimeUnit = DefaultTimeUnit
	}
	if o.BlockWidth == 0 {
		o.BlockWidth = DefaultBlockWidth
	}
	if o.LeftMargin == 0 {
		o.LeftMargin = DefaultLeftMargin
	}
	if o.TimeFormat == "" {
		o.TimeFormat = DefaultTimeFormat
	}
	if o.Alignment == "" {
		o.Alignment = DefaultAlignment
	}
	if o.ColorProfile == "" {
		o.ColorProfile = DefaultColorProfile
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Config builds the renderer configuration for doc. Options must have been
// validated. Without explicit tiers every document tier is rendered.
func (o *Options) Config(doc *tier.Document) (interlinear.Config, error) {
	if doc == nil {
		return interlinear.Config{}, errors.New(errors.ErrCodeInvalidDocument, "no document")
	}
	tf, err := timecode.Parse(o.TimeFormat)
	if err != nil {
		return interlinear.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "time format")
	}
	align, err := interlinear.ParseAlignment(o.Alignment)
	if err != nil {
		return interlinear.Config{}, err
	}

	tiers := o.Tiers
	if len(tiers) == 0 {
		for _, name := range doc.TierNames() {
			tiers = append(tiers, interlinear.TierSetting{Name: name})
		}
	}

	return interlinear.Config{
		Tiers:          tiers,
		TimeUnit:       o.TimeUnit,
		BlockWidth:     o.BlockWidth,
		LeftMargin:     o.LeftMargin,
		Begin:          o.Begin,
		End:            o.End,
		Wrap:           o.Wrap,
		ShowBoundaries: o.ShowBoundaries,
		ShowTimeLine:   o.ShowTimeLine,
		TimeFormat:     tf,
		Alignment:      align,
		ReferenceTier:  o.ReferenceTier,
	}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Fields that do not influence the output are left out.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	keyed := *o
	keyed.Formats = nil
	keyed.Refresh = false
	keyed.Logger = nil
	return cache.ArtifactKeyOpts{Format: format, Options: keyed}
}

// Blocks validates opts and returns the block ranges for doc without
// rendering any grid.
func Blocks(doc *tier.Document, opts Options) ([]layout.Block, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg, err := opts.Config(doc)
	if err != nil {
		return nil, err
	}
	return interlinear.Segment(cfg, doc)
}
