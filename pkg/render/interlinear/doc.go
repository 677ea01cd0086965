// Package interlinear renders time-aligned annotation tiers as an
// interlinear character grid.
//
// # Overview
//
// Each tier of a [tier.Document] holds time-ordered, non-overlapping
// annotations. The export cuts the timeline into blocks and prints one line
// per configured tier for every block, so annotations on different tiers
// that overlap in time line up in columns. One column stands for
// [Config.TimeUnit] milliseconds.
//
// # Rendering Pipeline
//
//  1. Segmentation ([layout]): compute the block ranges. With a reference
//     tier, block edges follow its annotation boundaries.
//  2. Grid ([grid]): render each tier into each block, carrying text that
//     overflows a block into the next one.
//  3. Sink ([sink]): turn the resulting [Body] into text, HTML, ANSI or JSON.
//
// Usage:
//
//	cfg := interlinear.Config{
//	    Tiers:      []interlinear.TierSetting{{Name: "words", Reference: true}, {Name: "gloss"}},
//	    TimeUnit:   100,
//	    BlockWidth: 80,
//	    LeftMargin: 12,
//	}
//	body, err := interlinear.Export(ctx, cfg, doc)
//	if err != nil {
//	    return err
//	}
//	out := sink.RenderText(body)
//
// [layout]: github.com/matzehuels/interlinear/pkg/render/interlinear/layout
// [grid]: github.com/matzehuels/interlinear/pkg/render/interlinear/grid
// [sink]: github.com/matzehuels/interlinear/pkg/render/interlinear/sink
package interlinear
