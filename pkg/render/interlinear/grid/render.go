package grid

import (
	"github.com/matzehuels/interlinear/pkg/render/interlinear/layout"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// Alignment places fitted text within the columns up to its end time.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Params holds the per-tier inputs of [RenderTier].
type Params struct {
	// TimeUnit is the duration of one character column.
	TimeUnit int64
	// Span is the nominal block duration. Text of an annotation that ends in
	// a short block may run on up to Begin+Span.
	Span int64
	// ShowBoundaries draws begin and end markers for annotation edges that
	// fall inside the block.
	ShowBoundaries bool
	// Alignment applies to fitted text. The reference tier is always left
	// aligned.
	Alignment Alignment
	Reference bool
	// Styles are opened in order around each annotation and closed in
	// reverse order.
	Styles []Style
}

// Placement classifies an annotation against a block.
type Placement struct {
	StartsInside bool // begin in [b.Begin, b.End-2u)
	EndsInside   bool // end in (b.Begin+u, b.End]
	Spans        bool // begins before and ends after the block
	Overflows    bool // end beyond b.End+u
}

// Included reports whether the annotation is drawn in the block.
func (p Placement) Included() bool {
	return p.StartsInside || p.EndsInside || p.Spans
}

// Place classifies a against b for the column width unit.
func Place(a tier.Annotation, b layout.Block, unit int64) Placement {
	return Placement{
		StartsInside: a.Begin >= b.Begin && a.Begin < b.End-2*unit,
		EndsInside:   a.End > b.Begin+unit && a.End <= b.End,
		Spans:        a.Begin < b.Begin && a.End > b.End,
		Overflows:    a.End > b.End+unit,
	}
}

// cursor accumulates tokens and the time represented by the columns written
// so far.
type cursor struct {
	line Line
	at   int64
	unit int64
}

func (c cursor) put(t Token) cursor {
	c.line = c.line.append(t)
	c.at += c.unit * int64(t.Width())
	return c
}

func (c cursor) text(s []rune) cursor {
	if len(s) == 0 {
		return c
	}
	return c.put(Token{Kind: KindText, Text: string(s)})
}

func (c cursor) blanks(n int64) cursor {
	if n <= 0 {
		return c
	}
	return c.put(Token{Kind: KindBlank, Count: int(n)})
}

func (c cursor) open(styles []Style) cursor {
	for _, s := range styles {
		c = c.put(Token{Kind: KindStyleOpen, Style: s})
	}
	return c
}

func (c cursor) close(styles []Style) cursor {
	for i := len(styles) - 1; i >= 0; i-- {
		c = c.put(Token{Kind: KindStyleClose, Style: styles[i]})
	}
	return c
}

// RenderTier renders the annotations of one tier into block b. The
// annotations must be time-ordered. tr carries continuation offsets between
// blocks and is updated in place.
//
// The line covers at least the block's columns; text of an annotation ending
// inside a short block may extend it up to b.Begin+p.Span, and a truncated
// value runs two columns further for its ellipsis.
func RenderTier(b layout.Block, p Params, anns []tier.Annotation, tr *Tracker) Line {
	if p.TimeUnit <= 0 || b.End <= b.Begin {
		return nil
	}
	c := cursor{at: b.Begin, unit: p.TimeUnit}
	for _, a := range anns {
		if a.Begin > b.End {
			break
		}
		if a.End < b.Begin {
			continue
		}
		pl := Place(a, b, p.TimeUnit)
		if !pl.Included() {
			continue
		}
		c = renderAnnotation(c, b, p, a, pl, tr)
	}
	if c.at < b.End {
		c = c.blanks(ceilDiv(b.End-c.at, p.TimeUnit))
	}
	return c.line
}

func renderAnnotation(c cursor, b layout.Block, p Params, a tier.Annotation, pl Placement, tr *Tracker) cursor {
	u := p.TimeUnit
	text := []rune(a.Value)
	start := tr.Resume(a.ID, text)
	rest := text[start:]

	beginMarked := p.ShowBoundaries && pl.StartsInside
	endMarked := p.ShowBoundaries && pl.EndsInside

	c = pad(c, a.Begin, beginMarked)

	localEnd := a.End
	limit := max(b.End, b.Begin+p.Span)
	if pl.Overflows {
		localEnd = b.End
		limit = b.End
	}

	cols := len(rest) + boolCols(pl.Overflows) + boolCols(beginMarked) + boolCols(endMarked)
	if c.at+u*int64(cols) > limit {
		c = truncated(c, p, a, pl, tr, text, start, limit, beginMarked, endMarked)
	} else {
		c = fitted(c, p, localEnd, pl, rest, beginMarked, endMarked)
		tr.Clear(a.ID)
	}

	if !p.ShowBoundaries && c.at < b.End {
		c = c.blanks(1)
	}
	return c
}

// pad advances to within half a column of begin. Without a begin marker one
// more blank keeps neighbors apart.
func pad(c cursor, begin int64, beginMarked bool) cursor {
	u := c.unit
	if begin-c.at <= u/2 {
		return c
	}
	var n int64
	for begin-u-(c.at+n*u) > u/2 {
		n++
	}
	if !beginMarked {
		n++
	}
	return c.blanks(n)
}

func fitted(c cursor, p Params, localEnd int64, pl Placement, rest []rune, beginMarked, endMarked bool) cursor {
	u := p.TimeUnit
	if beginMarked {
		c = c.put(Token{Kind: KindBeginMark})
	}
	c = c.open(p.Styles)

	trailing := int64(boolCols(pl.Overflows) + boolCols(endMarked))
	fill := max(0, (localEnd-c.at-u*int64(len(rest))-u*trailing)/u)
	if p.Alignment == AlignRight && !p.Reference {
		c = c.blanks(fill)
		c = c.text(rest)
	} else {
		c = c.text(rest)
		c = c.blanks(fill)
	}

	if pl.Overflows {
		c = c.put(Token{Kind: KindOverflow})
	}
	if endMarked {
		c = c.put(Token{Kind: KindEndMark})
	}
	return c.close(p.Styles)
}

// truncated writes one rune per remaining column followed by an ellipsis.
// When that would leave out exactly the last two runes the whole text is
// written instead. Text not fully written stays tracked for the next block.
func truncated(c cursor, p Params, a tier.Annotation, pl Placement, tr *Tracker, text []rune, start int, limit int64, beginMarked, endMarked bool) cursor {
	u := p.TimeUnit
	rest := text[start:]

	if beginMarked {
		c = c.put(Token{Kind: KindBeginMark})
	}
	c = c.open(p.Styles)

	// Overflow and end marker columns are reserved ahead of the text.
	reserved := int64(boolCols(pl.Overflows) + boolCols(endMarked))
	remaining := limit - c.at - u*reserved

	next := start
	switch {
	case remaining >= 2*u:
		numChars := ceilDiv(remaining, u)
		// Empirical: eliding exactly the last two runes is replaced by the
		// full text.
		if numChars >= int64(len(rest)) || numChars == int64(len(rest))-2 {
			c = c.text(rest)
			next = len(text)
		} else {
			c = c.text(rest[:numChars])
			c = c.put(Token{Kind: KindEllipsis, Text: ".."})
			next = start + int(numChars)
		}
	case remaining > 0:
		c = c.put(Token{Kind: KindEllipsis, Text: "."})
	}

	if next < len(text) {
		tr.Set(a.ID, next)
	} else {
		tr.Clear(a.ID)
	}

	if pl.Overflows {
		c = c.put(Token{Kind: KindOverflow})
	}
	if endMarked {
		c = c.put(Token{Kind: KindEndMark})
	}
	return c.close(p.Styles)
}

func boolCols(b bool) int {
	if b {
		return 1
	}
	return 0
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
