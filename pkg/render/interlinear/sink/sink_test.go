package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/grid"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/layout"
)

func testBody() *interlinear.Body {
	return &interlinear.Body{
		Title: "t <1>",
		Sections: []interlinear.Section{
			{
				Block: layout.Block{Begin: 0, End: 100},
				Rows: []interlinear.Row{{
					Kind:  interlinear.RowTier,
					Tier:  "w",
					Label: grid.Label("w", 3),
					Cells: grid.Line{
						{Kind: grid.KindStyleOpen, Style: grid.Bold},
						{Kind: grid.KindText, Text: "a<b"},
						{Kind: grid.KindStyleClose, Style: grid.Bold},
						{Kind: grid.KindBlank, Count: 2},
					},
				}},
			},
			{
				Block: layout.Block{Begin: 100, End: 200},
				Rows: []interlinear.Row{{
					Kind:  interlinear.RowTier,
					Tier:  "w",
					Label: grid.Label("w", 3),
					Cells: grid.Line{{Kind: grid.KindText, Text: "x"}, {Kind: grid.KindOverflow}},
				}},
			},
		},
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name string
		opts []TextOption
		want string
	}{
		{"default", nil, "w  |a<b\n\nw  |x→\n"},
		{"trailing", []TextOption{WithTextTrailing()}, "w  |a<b  \n\nw  |x→\n"},
		{"glyphs", []TextOption{WithTextGlyphs(grid.Glyphs{Blank: " ", Separator: ":", Overflow: ">"})}, "w  :a<b\n\nw  :x>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(RenderText(testBody(), tt.opts...)); got != tt.want {
				t.Errorf("RenderText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderHTML(t *testing.T) {
	frag := string(RenderHTML(testBody(), WithHTMLFragment()))
	want := "<pre class=\"interlinear\">\nw&nbsp;&nbsp;|<b>a&lt;b</b>\n\nw&nbsp;&nbsp;|x&rarr;\n</pre>\n"
	if frag != want {
		t.Errorf("RenderHTML(fragment) = %q, want %q", frag, want)
	}

	page := string(RenderHTML(testBody(), WithHTMLHeader("Session & notes"), WithHTMLFooter("end")))
	for _, s := range []string{
		"<!DOCTYPE html>",
		`<meta charset="UTF-8">`,
		"<title>t &lt;1&gt;</title>",
		"<p>Session &amp; notes</p>",
		"<p>end</p>",
		want,
		"</html>",
	} {
		if !strings.Contains(page, s) {
			t.Errorf("RenderHTML() missing %q", s)
		}
	}

	titled := string(RenderHTML(testBody(), WithHTMLTitle("Other"), WithHTMLCharset("ISO-8859-1")))
	if !strings.Contains(titled, "<title>Other</title>") || !strings.Contains(titled, `charset="ISO-8859-1"`) {
		t.Errorf("RenderHTML() ignored title or charset: %s", titled)
	}
}

func TestRenderANSI(t *testing.T) {
	lg := lipgloss.NewRenderer(&bytes.Buffer{})
	lg.SetColorProfile(termenv.ANSI)
	out := string(RenderANSI(testBody(), WithANSIRenderer(lg)))
	colored := out
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("RenderANSI() has no escape sequences: %q", out)
	}
	if !strings.Contains(out, "a<b") {
		t.Errorf("RenderANSI() lost annotation text: %q", out)
	}

	plain := lipgloss.NewRenderer(&bytes.Buffer{})
	plain.SetColorProfile(termenv.Ascii)
	out = string(RenderANSI(testBody(), WithANSIRenderer(plain)))
	if strings.Contains(out, "\x1b[") {
		t.Errorf("RenderANSI() with ascii profile has escapes: %q", out)
	}
	if strings.Count(out, "\n") != 3 {
		t.Errorf("RenderANSI() = %q, want 3 lines", out)
	}
	if stripped := ansi.Strip(colored); stripped != out {
		t.Errorf("colored output differs from plain output after stripping:\n%q\n%q", stripped, out)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testBody(), WithJSONTokens())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Title != "t <1>" {
		t.Errorf("Title = %q", out.Title)
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("Blocks count = %d, want 2", len(out.Blocks))
	}
	row := out.Blocks[0].Rows[0]
	if row.Kind != "tier" || row.Tier != "w" || row.Label != "w  |" || row.Text != "a<b  " {
		t.Errorf("row = %+v", row)
	}
	if len(row.Tokens) != 4 || row.Tokens[0].Kind != "style_open" || row.Tokens[0].Style != "bold" {
		t.Errorf("tokens = %+v", row.Tokens)
	}
	if out.Blocks[1].Begin != 100 || out.Blocks[1].End != 200 {
		t.Errorf("block 2 = %+v", out.Blocks[1])
	}

	data, err = RenderJSON(testBody())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if bytes.Contains(data, []byte(`"tokens"`)) {
		t.Error("RenderJSON() without WithJSONTokens included tokens")
	}
}
