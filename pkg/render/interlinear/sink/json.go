package sink

import (
	"encoding/json"

	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/grid"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	tokens bool
}

// WithJSONTokens includes the token stream of every row, for clients that
// draw the grid themselves.
func WithJSONTokens() JSONOption { return func(r *jsonRenderer) { r.tokens = true } }

type jsonOutput struct {
	Title  string      `json:"title"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Begin int64     `json:"begin"`
	End   int64     `json:"end"`
	Rows  []jsonRow `json:"rows"`
}

type jsonRow struct {
	Kind   string      `json:"kind"`
	Tier   string      `json:"tier,omitempty"`
	Label  string      `json:"label"`
	Text   string      `json:"text"`
	Tokens []jsonToken `json:"tokens,omitempty"`
}

type jsonToken struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Count int    `json:"count,omitempty"`
	Style string `json:"style,omitempty"`
	Major bool   `json:"major,omitempty"`
}

// RenderJSON exports the body as pretty-printed JSON: one entry per block
// with the plain text of each row.
func RenderJSON(body *interlinear.Body, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Title: body.Title, Blocks: make([]jsonBlock, 0, len(body.Sections))}
	for _, sec := range body.Sections {
		jb := jsonBlock{Begin: sec.Block.Begin, End: sec.Block.End}
		for _, row := range sec.Rows {
			jr := jsonRow{
				Kind:  string(row.Kind),
				Tier:  row.Tier,
				Label: row.Label.String(),
				Text:  row.Cells.String(),
			}
			if r.tokens {
				jr.Tokens = buildJSONTokens(row.Cells)
			}
			jb.Rows = append(jb.Rows, jr)
		}
		out.Blocks = append(out.Blocks, jb)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONTokens(l grid.Line) []jsonToken {
	toks := make([]jsonToken, 0, len(l))
	for _, t := range l {
		jt := jsonToken{Kind: t.Kind.String(), Text: t.Text, Count: t.Count, Major: t.Major}
		if t.Kind == grid.KindStyleOpen || t.Kind == grid.KindStyleClose {
			jt.Style = t.Style.String()
		}
		toks = append(toks, jt)
	}
	return toks
}
