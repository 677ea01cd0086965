package sink

import (
	"bytes"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/grid"
)

var (
	colorLabel  = lipgloss.Color("36")  // Teal - tier labels
	colorMarker = lipgloss.Color("245") // Gray - boundary and overflow markers
	colorRuler  = lipgloss.Color("240") // Dim gray - time ruler
)

// ANSIOption configures terminal rendering via [RenderANSI].
type ANSIOption func(*ansiRenderer)

type ansiRenderer struct {
	lg *lipgloss.Renderer
}

// WithANSIRenderer uses lg for styling. The default renderer inspects
// standard output to pick a color profile.
func WithANSIRenderer(lg *lipgloss.Renderer) ANSIOption {
	return func(r *ansiRenderer) { r.lg = lg }
}

// WithANSIProfile forces a color profile, e.g. termenv.ANSI256 when writing
// to a pager or termenv.Ascii for no escapes at all.
func WithANSIProfile(p termenv.Profile) ANSIOption {
	return func(r *ansiRenderer) {
		if r.lg == nil {
			r.lg = lipgloss.NewRenderer(os.Stdout)
		}
		r.lg.SetColorProfile(p)
	}
}

// RenderANSI writes the body with terminal escape sequences: tier styles
// become underline, bold and italic, labels and markers are colored.
func RenderANSI(body *interlinear.Body, opts ...ANSIOption) []byte {
	r := ansiRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.lg == nil {
		r.lg = lipgloss.DefaultRenderer()
	}

	label := r.lg.NewStyle().Foreground(colorLabel).Bold(true)
	marker := r.lg.NewStyle().Foreground(colorMarker)
	ruler := r.lg.NewStyle().Foreground(colorRuler)

	var buf bytes.Buffer
	for i, sec := range body.Sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for _, row := range sec.Rows {
			buf.WriteString(label.Render(row.Label.String()))
			if row.Kind == interlinear.RowRuler {
				buf.WriteString(ruler.Render(row.Cells.String()))
			} else {
				buf.WriteString(r.cells(row.Cells.TrimRight(), marker))
			}
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func (r *ansiRenderer) cells(l grid.Line, marker lipgloss.Style) string {
	var sb strings.Builder
	var active []grid.Style
	for _, tok := range l {
		switch tok.Kind {
		case grid.KindStyleOpen:
			active = append(active, tok.Style)
		case grid.KindStyleClose:
			if n := len(active); n > 0 {
				active = active[:n-1]
			}
		case grid.KindBeginMark, grid.KindEndMark, grid.KindOverflow, grid.KindEllipsis:
			sb.WriteString(marker.Render(grid.DefaultGlyphs.Glyph(tok)))
		case grid.KindText:
			sb.WriteString(r.textStyle(active).Render(tok.Text))
		default:
			sb.WriteString(grid.DefaultGlyphs.Glyph(tok))
		}
	}
	return sb.String()
}

func (r *ansiRenderer) textStyle(active []grid.Style) lipgloss.Style {
	s := r.lg.NewStyle()
	for _, st := range active {
		switch st {
		case grid.Underline:
			s = s.Underline(true)
		case grid.Bold:
			s = s.Bold(true)
		case grid.Italic:
			s = s.Italic(true)
		}
	}
	return s
}
