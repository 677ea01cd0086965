package grid

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a [Token].
type Kind int

const (
	// KindText is annotation or label text.
	KindText Kind = iota
	// KindBlank is Count columns of padding.
	KindBlank
	// KindEllipsis marks elided text. Its Text is "." or "..".
	KindEllipsis
	// KindBeginMark marks an annotation begin inside the block.
	KindBeginMark
	// KindEndMark marks an annotation end inside the block.
	KindEndMark
	// KindOverflow marks text that continues in the next block.
	KindOverflow
	// KindStyleOpen starts a Style run. It occupies no column.
	KindStyleOpen
	// KindStyleClose ends a Style run. It occupies no column.
	KindStyleClose
	// KindSeparator divides the label margin from the grid.
	KindSeparator
	// KindTick is one ruler column.
	KindTick
)

var kindNames = [...]string{
	KindText:       "text",
	KindBlank:      "blank",
	KindEllipsis:   "ellipsis",
	KindBeginMark:  "begin",
	KindEndMark:    "end",
	KindOverflow:   "overflow",
	KindStyleOpen:  "style_open",
	KindStyleClose: "style_close",
	KindSeparator:  "separator",
	KindTick:       "tick",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Style is a presentational text attribute. Sinks decide how to draw it.
type Style int

const (
	Underline Style = iota
	Bold
	Italic
)

func (s Style) String() string {
	switch s {
	case Underline:
		return "underline"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	}
	return "unknown"
}

// Token is one element of a rendered [Line].
type Token struct {
	Kind  Kind
	Text  string // KindText, KindEllipsis
	Count int    // KindBlank
	Style Style  // KindStyleOpen, KindStyleClose
	Major bool   // KindTick: column starts a new second
}

// Width returns the number of character columns the token occupies.
func (t Token) Width() int {
	switch t.Kind {
	case KindText, KindEllipsis:
		return utf8.RuneCountInString(t.Text)
	case KindBlank:
		return t.Count
	case KindStyleOpen, KindStyleClose:
		return 0
	default:
		return 1
	}
}

// Glyphs maps the column-occupying marker kinds to output strings.
type Glyphs struct {
	Blank     string
	BeginMark string
	EndMark   string
	Overflow  string
	Separator string
	MajorTick string
	MinorTick string
}

// DefaultGlyphs are the plain-text markers.
var DefaultGlyphs = Glyphs{
	Blank:     " ",
	BeginMark: "[",
	EndMark:   "]",
	Overflow:  "→",
	Separator: "|",
	MajorTick: "|",
	MinorTick: ".",
}

// Glyph returns the output string for t. Style tokens yield "".
func (g Glyphs) Glyph(t Token) string {
	switch t.Kind {
	case KindText, KindEllipsis:
		return t.Text
	case KindBlank:
		return strings.Repeat(g.Blank, t.Count)
	case KindBeginMark:
		return g.BeginMark
	case KindEndMark:
		return g.EndMark
	case KindOverflow:
		return g.Overflow
	case KindSeparator:
		return g.Separator
	case KindTick:
		if t.Major {
			return g.MajorTick
		}
		return g.MinorTick
	}
	return ""
}

// Line is the token sequence of one output line.
type Line []Token

// Width returns the total number of columns of the line.
func (l Line) Width() int {
	n := 0
	for _, t := range l {
		n += t.Width()
	}
	return n
}

// Render writes the line with g, dropping style tokens.
func (l Line) Render(g Glyphs) string {
	var sb strings.Builder
	for _, t := range l {
		sb.WriteString(g.Glyph(t))
	}
	return sb.String()
}

// String renders the line with [DefaultGlyphs].
func (l Line) String() string { return l.Render(DefaultGlyphs) }

// TrimRight returns the line without trailing blank tokens.
func (l Line) TrimRight() Line {
	i := len(l)
	for i > 0 && l[i-1].Kind == KindBlank {
		i--
	}
	return l[:i]
}

// append adds t, merging consecutive blanks.
func (l Line) append(t Token) Line {
	if t.Kind == KindBlank {
		if t.Count <= 0 {
			return l
		}
		if n := len(l); n > 0 && l[n-1].Kind == KindBlank {
			l[n-1].Count += t.Count
			return l
		}
	}
	return append(l, t)
}
