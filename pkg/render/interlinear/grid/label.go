package grid

import (
	"github.com/matzehuels/interlinear/pkg/render/interlinear/layout"
	"github.com/matzehuels/interlinear/pkg/timecode"
)

// RulerLabel is the margin label of the time ruler line.
const RulerLabel = "Time"

// Label renders name into a margin of width columns followed by the
// separator. Longer names are cut to width-2 runes plus "..".
func Label(name string, width int) Line {
	var l Line
	r := []rune(name)
	switch {
	case width <= 0:
	case len(r) > width && width < 2:
		l = l.append(Token{Kind: KindText, Text: string(r[:width])})
	case len(r) > width:
		if width > 2 {
			l = l.append(Token{Kind: KindText, Text: string(r[:width-2])})
		}
		l = l.append(Token{Kind: KindEllipsis, Text: ".."})
	default:
		if len(r) > 0 {
			l = l.append(Token{Kind: KindText, Text: name})
		}
		l = l.append(Token{Kind: KindBlank, Count: width - len(r)})
	}
	return l.append(Token{Kind: KindSeparator})
}

// Ruler renders the time line of block b: the formatted begin time followed
// by one tick per column. Major ticks mark columns that contain a
// whole-second boundary.
func Ruler(b layout.Block, unit int64, f timecode.Format) Line {
	cols := b.Columns(unit)
	if cols == 0 {
		return nil
	}
	l := Line{{Kind: KindText, Text: timecode.Millis(b.Begin, f)}}
	for i := range cols {
		t := b.Begin + int64(i)*unit
		l = l.append(Token{Kind: KindTick, Major: wholeSecond(t, unit)})
	}
	return l
}

// wholeSecond reports whether the column [t, t+unit) contains a multiple of
// 1000ms.
func wholeSecond(t, unit int64) bool {
	return t%1000 == 0 || t/1000 != (t+unit-1)/1000
}
