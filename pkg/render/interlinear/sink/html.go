package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/grid"
)

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title    string
	header   string
	footer   string
	fragment bool
	charset  string
}

// WithHTMLTitle overrides the document title, which defaults to the body
// title.
func WithHTMLTitle(s string) HTMLOption { return func(r *htmlRenderer) { r.title = s } }

// WithHTMLHeader adds a paragraph above the grid.
func WithHTMLHeader(s string) HTMLOption { return func(r *htmlRenderer) { r.header = s } }

// WithHTMLFooter adds a paragraph below the grid.
func WithHTMLFooter(s string) HTMLOption { return func(r *htmlRenderer) { r.footer = s } }

// WithHTMLFragment emits only the <pre> element without the document
// wrapper.
func WithHTMLFragment() HTMLOption { return func(r *htmlRenderer) { r.fragment = true } }

// WithHTMLCharset sets the declared charset (default UTF-8).
func WithHTMLCharset(cs string) HTMLOption { return func(r *htmlRenderer) { r.charset = cs } }

// htmlGlyphs are the markers as written inside the <pre> element.
var htmlGlyphs = grid.Glyphs{
	Blank:     "&nbsp;",
	BeginMark: "[",
	EndMark:   "]",
	Overflow:  "&rarr;",
	Separator: "|",
	MajorTick: "|",
	MinorTick: ".",
}

var htmlTags = map[grid.Style]string{
	grid.Underline: "u",
	grid.Bold:      "b",
	grid.Italic:    "i",
}

// RenderHTML writes the body as an HTML document with the grid in a single
// <pre> element. Annotation text is escaped, blanks become &nbsp; and the
// overflow arrow &rarr;; underline, bold and italic runs become <u>, <b> and
// <i>.
func RenderHTML(body *interlinear.Body, opts ...HTMLOption) []byte {
	r := htmlRenderer{title: body.Title, charset: "UTF-8"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if !r.fragment {
		buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
		fmt.Fprintf(&buf, "<meta charset=\"%s\">\n", html.EscapeString(r.charset))
		fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(r.title))
		buf.WriteString("</head>\n<body>\n")
		if r.header != "" {
			fmt.Fprintf(&buf, "<p>%s</p>\n", html.EscapeString(r.header))
		}
	}

	buf.WriteString("<pre class=\"interlinear\">\n")
	for i, sec := range body.Sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for _, row := range sec.Rows {
			writeHTMLLine(&buf, row.Label)
			writeHTMLLine(&buf, row.Cells.TrimRight())
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("</pre>\n")

	if !r.fragment {
		if r.footer != "" {
			fmt.Fprintf(&buf, "<p>%s</p>\n", html.EscapeString(r.footer))
		}
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes()
}

func writeHTMLLine(buf *bytes.Buffer, l grid.Line) {
	for _, tok := range l {
		switch tok.Kind {
		case grid.KindStyleOpen:
			fmt.Fprintf(buf, "<%s>", htmlTags[tok.Style])
		case grid.KindStyleClose:
			fmt.Fprintf(buf, "</%s>", htmlTags[tok.Style])
		case grid.KindText, grid.KindEllipsis:
			buf.WriteString(html.EscapeString(tok.Text))
		default:
			buf.WriteString(htmlGlyphs.Glyph(tok))
		}
	}
}
