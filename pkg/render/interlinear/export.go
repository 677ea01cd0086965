package interlinear

import (
	"context"
	"math"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/grid"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/layout"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// RowKind distinguishes annotation rows from the time ruler.
type RowKind string

const (
	RowTier  RowKind = "tier"
	RowRuler RowKind = "ruler"
)

// Row is one output line: a margin label and the grid cells.
type Row struct {
	Kind  RowKind   `json:"kind"`
	Tier  string    `json:"tier,omitempty"`
	Label grid.Line `json:"-"`
	Cells grid.Line `json:"-"`
}

// Section holds the rows of one block.
type Section struct {
	Block layout.Block `json:"block"`
	Rows  []Row        `json:"rows"`
}

// Body is the rendered document body, ready for a sink.
type Body struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Lines returns the number of rows over all sections.
func (b *Body) Lines() int {
	n := 0
	for _, s := range b.Sections {
		n += len(s.Rows)
	}
	return n
}

// Segment validates cfg and computes the blocks for doc.
func Segment(cfg Config, doc *tier.Document) ([]layout.Block, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tiers, err := resolve(cfg, doc)
	if err != nil {
		return nil, err
	}
	return segment(cfg, doc, tiers), nil
}

// Export renders doc according to cfg. Blocks are processed in time order
// and tiers in configured order; ctx is checked between blocks.
func Export(ctx context.Context, cfg Config, doc *tier.Document) (*Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tiers, err := resolve(cfg, doc)
	if err != nil {
		return nil, err
	}

	body := &Body{Title: doc.Name}
	ref := cfg.Reference()
	tr := grid.NewTracker()

	for _, b := range segment(cfg, doc, tiers) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sec := Section{Block: b, Rows: make([]Row, 0, len(tiers)+1)}
		for i, s := range cfg.Tiers {
			p := grid.Params{
				TimeUnit:       cfg.TimeUnit,
				Span:           cfg.BlockSpan(),
				ShowBoundaries: cfg.ShowBoundaries,
				Alignment:      cfg.Alignment,
				Reference:      s.Name == ref,
				Styles:         s.Styles(),
			}
			sec.Rows = append(sec.Rows, Row{
				Kind:  RowTier,
				Tier:  s.Name,
				Label: grid.Label(s.Name, cfg.LeftMargin),
				Cells: grid.RenderTier(b, p, tiers[i].Annotations, tr),
			})
		}
		if cfg.ShowTimeLine {
			sec.Rows = append(sec.Rows, Row{
				Kind:  RowRuler,
				Label: grid.Label(grid.RulerLabel, cfg.LeftMargin),
				Cells: grid.Ruler(b, cfg.TimeUnit, cfg.TimeFormat),
			})
		}
		body.Sections = append(body.Sections, sec)
	}
	return body, nil
}

// resolve looks up the configured tiers in doc, in configured order.
func resolve(cfg Config, doc *tier.Document) ([]*tier.Tier, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no document")
	}
	out := make([]*tier.Tier, len(cfg.Tiers))
	for i, s := range cfg.Tiers {
		t, ok := doc.Tier(s.Name)
		if !ok {
			return nil, errors.New(errors.ErrCodeTierNotFound, "tier %q not found in document %q", s.Name, doc.Name)
		}
		out[i] = t
	}
	return out, nil
}

func segment(cfg Config, doc *tier.Document, tiers []*tier.Tier) []layout.Block {
	p := layout.Params{
		TimeUnit:  cfg.TimeUnit,
		Span:      cfg.BlockSpan(),
		Min:       cfg.Begin,
		Max:       cfg.End,
		Wrap:      cfg.Wrap,
		Selection: cfg.Selection(),
	}
	if cfg.End <= 0 || cfg.End == math.MaxInt64 {
		p.Max = doc.MaxEnd(cfg.TierNames()...)
	}

	var ref []tier.Annotation
	if name := cfg.Reference(); name != "" {
		for i, s := range cfg.Tiers {
			if s.Name == name {
				ref = tiers[i].Annotations
			}
		}
	}
	return layout.Segment(p, ref)
}
