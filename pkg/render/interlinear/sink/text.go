package sink

import (
	"bytes"
	"strings"

	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/grid"
)

// TextOption configures plain text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	glyphs   grid.Glyphs
	trailing bool
}

// WithTextGlyphs replaces the marker glyphs.
func WithTextGlyphs(g grid.Glyphs) TextOption { return func(r *textRenderer) { r.glyphs = g } }

// WithTextTrailing keeps trailing blanks so every line of a block has the
// same width.
func WithTextTrailing() TextOption { return func(r *textRenderer) { r.trailing = true } }

// RenderText writes the body as plain text. Each row is label plus cells;
// blocks are separated by an empty line. Style runs are dropped.
func RenderText(body *interlinear.Body, opts ...TextOption) []byte {
	r := textRenderer{glyphs: grid.DefaultGlyphs}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	for i, sec := range body.Sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for _, row := range sec.Rows {
			line := row.Label.Render(r.glyphs) + row.Cells.Render(r.glyphs)
			if !r.trailing {
				line = strings.TrimRight(line, r.glyphs.Blank)
			}
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
