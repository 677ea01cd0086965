package interlinear

import (
	"context"
	stderrors "errors"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/layout"
	"github.com/matzehuels/interlinear/pkg/tier"
)

func validConfig() Config {
	return Config{
		Tiers:      []TierSetting{{Name: "words"}},
		TimeUnit:   10,
		BlockWidth: 20,
		LeftMargin: 6,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"no tiers", func(c *Config) { c.Tiers = nil }, false},
		{"zero time unit", func(c *Config) { c.TimeUnit = 0 }, false},
		{"negative block width", func(c *Config) { c.BlockWidth = -1 }, false},
		{"zero margin", func(c *Config) { c.LeftMargin = 0 }, false},
		{"begin after end", func(c *Config) { c.Begin, c.End = 500, 100 }, false},
		{"negative begin", func(c *Config) { c.Begin = -1 }, false},
		{"unbounded end", func(c *Config) { c.Begin = 500 }, true},
		{"duplicate tier", func(c *Config) { c.Tiers = append(c.Tiers, TierSetting{Name: "words"}) }, false},
		{"empty tier name", func(c *Config) { c.Tiers = []TierSetting{{Name: " "}} }, false},
		{"two reference tiers", func(c *Config) {
			c.Tiers = []TierSetting{{Name: "a", Reference: true}, {Name: "b", Reference: true}}
		}, false},
		{"unknown reference name", func(c *Config) { c.ReferenceTier = "gloss" }, false},
		{"reference name", func(c *Config) { c.ReferenceTier = "words" }, true},
		{"conflicting reference", func(c *Config) {
			c.Tiers = []TierSetting{{Name: "a", Reference: true}, {Name: "b"}}
			c.ReferenceTier = "b"
		}, false},
		{"bad time format", func(c *Config) { c.TimeFormat = 99 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("Validate() code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
				}
			}
		})
	}
}

func TestConfigReference(t *testing.T) {
	cfg := validConfig()
	if got := cfg.Reference(); got != "" {
		t.Errorf("Reference() = %q, want empty", got)
	}
	cfg.Tiers = []TierSetting{{Name: "a"}, {Name: "b", Reference: true}}
	if got := cfg.Reference(); got != "b" {
		t.Errorf("Reference() = %q, want b", got)
	}
	cfg.ReferenceTier = "b"
	if got := cfg.Reference(); got != "b" {
		t.Errorf("Reference() = %q, want b", got)
	}
}

func TestConfigSelection(t *testing.T) {
	cfg := validConfig()
	if cfg.Selection() {
		t.Error("Selection() = true for the whole timeline")
	}
	cfg.End = 1000
	if !cfg.Selection() {
		t.Error("Selection() = false with an end time")
	}
	cfg.End, cfg.Begin = 0, 10
	if !cfg.Selection() {
		t.Error("Selection() = false with a begin time")
	}
}

func TestParseAlignment(t *testing.T) {
	for in, want := range map[string]Alignment{"": AlignLeft, "LEFT": AlignLeft, "right": AlignRight} {
		got, err := ParseAlignment(in)
		if err != nil || got != want {
			t.Errorf("ParseAlignment(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlignment("center"); err == nil {
		t.Error("ParseAlignment(center) succeeded")
	}
}

func TestTierSettingStyles(t *testing.T) {
	s := TierSetting{Italic: true, Underline: true}
	got := s.Styles()
	if len(got) != 2 || got[0].String() != "underline" || got[1].String() != "italic" {
		t.Errorf("Styles() = %v", got)
	}
}

func newDoc(t *testing.T, tiers map[string][]tier.Annotation, order ...string) *tier.Document {
	t.Helper()
	doc := tier.New("test")
	for _, name := range order {
		if _, err := doc.AddTier(name, tiers[name]); err != nil {
			t.Fatalf("AddTier(%s): %v", name, err)
		}
	}
	return doc
}

func TestExportContinuation(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{
		"ref": {{Begin: 50, End: 250, Value: "verylongannotation"}},
	}, "ref")
	cfg := Config{
		Tiers:      []TierSetting{{Name: "ref", Reference: true}},
		TimeUnit:   10,
		BlockWidth: 20,
		LeftMargin: 3,
		Wrap:       true,
	}

	body, err := Export(context.Background(), cfg, doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(body.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(body.Sections))
	}

	want := []struct {
		block layout.Block
		line  string
	}{
		{layout.Block{Begin: 0, End: 200}, "ref|     verylongannota..→"},
		{layout.Block{Begin: 200, End: 250}, "ref|tion "},
	}
	for i, w := range want {
		sec := body.Sections[i]
		if sec.Block != w.block {
			t.Errorf("section %d block = %v, want %v", i, sec.Block, w.block)
		}
		row := sec.Rows[0]
		if got := row.Label.String() + row.Cells.String(); got != w.line {
			t.Errorf("section %d = %q, want %q", i, got, w.line)
		}
	}
}

func TestExportSelection(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{
		"words": {{Begin: 0, End: 1000, Value: "x"}},
	}, "words")
	cfg := validConfig()
	cfg.Begin, cfg.End = 100, 300

	body, err := Export(context.Background(), cfg, doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	var blocks []layout.Block
	for _, s := range body.Sections {
		blocks = append(blocks, s.Block)
	}
	if want := []layout.Block{{Begin: 100, End: 300}}; !slices.Equal(blocks, want) {
		t.Errorf("blocks = %v, want %v", blocks, want)
	}
}

func sectionBlocks(body *Body) []layout.Block {
	var blocks []layout.Block
	for _, s := range body.Sections {
		blocks = append(blocks, s.Block)
	}
	return blocks
}

func TestExportWholeTimeline(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{
		"words": {{Begin: 0, End: 300, Value: "x"}},
	}, "words")
	want := []layout.Block{{Begin: 0, End: 200}, {Begin: 200, End: 300}}

	for _, end := range []int64{0, math.MaxInt64} {
		cfg := validConfig()
		cfg.End = end
		if cfg.Selection() {
			t.Errorf("End %d: Selection() = true", end)
		}
		body, err := Export(context.Background(), cfg, doc)
		if err != nil {
			t.Fatalf("End %d: Export() error = %v", end, err)
		}
		if got := sectionBlocks(body); !slices.Equal(got, want) {
			t.Errorf("End %d: blocks = %v, want %v", end, got, want)
		}
	}
}

func TestExportSelectionStopsAfterReference(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{
		"ref":   {{Begin: 0, End: 100, Value: "a"}},
		"words": {{Begin: 0, End: 1000, Value: "x"}},
	}, "ref", "words")
	cfg := validConfig()
	cfg.Tiers = []TierSetting{{Name: "ref", Reference: true}, {Name: "words"}}

	body, err := Export(context.Background(), cfg, doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := sectionBlocks(body); len(got) != 6 || got[len(got)-1].End != 1000 {
		t.Errorf("whole timeline: blocks = %v, want fill up to 1000", got)
	}

	cfg.End = 1000
	body, err = Export(context.Background(), cfg, doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got, want := sectionBlocks(body), []layout.Block{{Begin: 0, End: 100}}; !slices.Equal(got, want) {
		t.Errorf("selection: blocks = %v, want %v", got, want)
	}
}

func TestExportRowsFollowConfiguredOrder(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{
		"a": {{Begin: 0, End: 100, Value: "one"}},
		"b": {{Begin: 0, End: 100, Value: "two"}},
	}, "a", "b")
	cfg := validConfig()
	cfg.Tiers = []TierSetting{{Name: "b"}, {Name: "a"}}
	cfg.ShowTimeLine = true

	body, err := Export(context.Background(), cfg, doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	rows := body.Sections[0].Rows
	if len(rows) != 3 || rows[0].Tier != "b" || rows[1].Tier != "a" || rows[2].Kind != RowRuler {
		t.Errorf("rows = %+v", rows)
	}
	if body.Lines() != 3 {
		t.Errorf("Lines() = %d, want 3", body.Lines())
	}
}

func TestExportEmptyTier(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{
		"words": {{Begin: 0, End: 300, Value: "x"}},
		"empty": nil,
	}, "words", "empty")
	cfg := validConfig()
	cfg.Tiers = append(cfg.Tiers, TierSetting{Name: "empty"})

	body, err := Export(context.Background(), cfg, doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	for _, sec := range body.Sections {
		cells := sec.Rows[1].Cells
		if len(cells.TrimRight()) != 0 {
			t.Errorf("empty tier rendered %q", cells.String())
		}
		if cells.Width() != sec.Block.Columns(cfg.TimeUnit) {
			t.Errorf("empty tier width = %d, want %d", cells.Width(), sec.Block.Columns(cfg.TimeUnit))
		}
	}
}

func TestExportErrors(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{"words": {{Begin: 0, End: 100, Value: "x"}}}, "words")

	cfg := validConfig()
	cfg.Tiers = []TierSetting{{Name: "gloss"}}
	if _, err := Export(context.Background(), cfg, doc); !errors.Is(err, errors.ErrCodeTierNotFound) {
		t.Errorf("missing tier: err = %v, want %s", err, errors.ErrCodeTierNotFound)
	}

	cfg = validConfig()
	cfg.TimeUnit = 0
	if _, err := Export(context.Background(), cfg, doc); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid config: err = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}

	if _, err := Export(context.Background(), validConfig(), nil); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("nil document: err = %v, want %s", err, errors.ErrCodeInvalidDocument)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Export(ctx, validConfig(), doc); !stderrors.Is(err, context.Canceled) {
		t.Errorf("canceled: err = %v, want context.Canceled", err)
	}
}

func TestExportNothingToRender(t *testing.T) {
	doc := newDoc(t, map[string][]tier.Annotation{"words": nil}, "words")
	body, err := Export(context.Background(), validConfig(), doc)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(body.Sections) != 0 {
		t.Errorf("got %d sections, want 0", len(body.Sections))
	}
}
