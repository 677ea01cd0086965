package interlinear

import (
	"math"
	"strings"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/grid"
	"github.com/matzehuels/interlinear/pkg/timecode"
)

// Alignment of fitted annotation text.
type Alignment = grid.Alignment

const (
	AlignLeft  = grid.AlignLeft
	AlignRight = grid.AlignRight
)

// ParseAlignment converts "left" or "right" (case-insensitive) into an
// Alignment. The empty string yields AlignLeft.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, errors.New(errors.ErrCodeInvalidConfig, "unknown alignment %q (must be left or right)", s)
}

// TierSetting configures how one tier is rendered.
type TierSetting struct {
	Name      string `json:"name" toml:"name" yaml:"name"`
	Underline bool   `json:"underline,omitempty" toml:"underline" yaml:"underline"`
	Bold      bool   `json:"bold,omitempty" toml:"bold" yaml:"bold"`
	Italic    bool   `json:"italic,omitempty" toml:"italic" yaml:"italic"`
	Reference bool   `json:"reference,omitempty" toml:"reference" yaml:"reference"`
}

// Styles returns the enabled styles in opening order.
func (s TierSetting) Styles() []grid.Style {
	var out []grid.Style
	if s.Underline {
		out = append(out, grid.Underline)
	}
	if s.Bold {
		out = append(out, grid.Bold)
	}
	if s.Italic {
		out = append(out, grid.Italic)
	}
	return out
}

// Config holds everything one export run needs. It is read-only during the
// run.
type Config struct {
	// Tiers lists the tiers to render, in output order.
	Tiers []TierSetting

	// TimeUnit is the duration in milliseconds of one character column.
	TimeUnit int64
	// BlockWidth is the nominal number of grid columns per block.
	BlockWidth int
	// LeftMargin is the width of the tier label column.
	LeftMargin int

	// Begin and End select the export range [Begin, End). End <= 0 or
	// math.MaxInt64 means the end of the longest configured tier. A range
	// with Begin > 0 or a finite End is a selection: segmentation stops
	// after the last reference annotation.
	Begin, End int64

	// Wrap cuts reference annotations longer than one block span.
	Wrap bool
	// ShowBoundaries draws [ and ] at annotation edges inside a block.
	ShowBoundaries bool
	// ShowTimeLine adds a ruler line below each block.
	ShowTimeLine bool

	TimeFormat timecode.Format
	Alignment  Alignment

	// ReferenceTier names the tier whose boundaries drive segmentation. It
	// may be left empty when one TierSetting has Reference set.
	ReferenceTier string
}

// BlockSpan returns the duration covered by a full block.
func (c *Config) BlockSpan() int64 {
	return int64(c.BlockWidth) * c.TimeUnit
}

// Selection reports whether the export is limited to part of the timeline.
func (c *Config) Selection() bool {
	return c.Begin > 0 || (c.End > 0 && c.End < math.MaxInt64)
}

// Reference returns the name of the reference tier, or "" when blocks have a
// fixed width.
func (c *Config) Reference() string {
	if c.ReferenceTier != "" {
		return c.ReferenceTier
	}
	for _, s := range c.Tiers {
		if s.Reference {
			return s.Name
		}
	}
	return ""
}

// TierNames returns the configured tier names in order.
func (c *Config) TierNames() []string {
	names := make([]string, len(c.Tiers))
	for i, s := range c.Tiers {
		names[i] = s.Name
	}
	return names
}

// Validate rejects configurations the renderer cannot run with. No defaults
// are filled in here.
func (c *Config) Validate() error {
	if len(c.Tiers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no tiers configured")
	}
	if c.TimeUnit <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "time unit must be positive, got %d", c.TimeUnit)
	}
	if c.BlockWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "block width must be positive, got %d", c.BlockWidth)
	}
	if c.LeftMargin <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "left margin must be positive, got %d", c.LeftMargin)
	}
	if c.Begin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "begin time must not be negative, got %d", c.Begin)
	}
	if c.End > 0 && c.Begin > c.End {
		return errors.New(errors.ErrCodeInvalidConfig, "begin time %d is after end time %d", c.Begin, c.End)
	}
	if !c.TimeFormat.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown time format %v", c.TimeFormat)
	}

	seen := make(map[string]bool, len(c.Tiers))
	var refs []string
	for _, s := range c.Tiers {
		if err := errors.ValidateTierName(s.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "tier setting")
		}
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "tier %q configured twice", s.Name)
		}
		seen[s.Name] = true
		if s.Reference {
			refs = append(refs, s.Name)
		}
	}
	if len(refs) > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "more than one reference tier: %s", strings.Join(refs, ", "))
	}
	if c.ReferenceTier != "" {
		if !seen[c.ReferenceTier] {
			return errors.New(errors.ErrCodeInvalidConfig, "reference tier %q is not among the configured tiers", c.ReferenceTier)
		}
		if len(refs) == 1 && refs[0] != c.ReferenceTier {
			return errors.New(errors.ErrCodeInvalidConfig, "reference tier %q conflicts with %q", c.ReferenceTier, refs[0])
		}
	}
	return nil
}
