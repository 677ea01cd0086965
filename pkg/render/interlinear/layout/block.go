package layout

import "fmt"

// Block is a time range [Begin, End) rendered as one set of aligned lines,
// one per configured tier. All times are in milliseconds.
type Block struct {
	Begin int64 `json:"begin"`
	End   int64 `json:"end"`
}

// Duration returns the time span covered by the block.
func (b Block) Duration() int64 { return b.End - b.Begin }

// Columns returns the number of character columns the block occupies at the
// given time unit, rounding a partial last column up.
func (b Block) Columns(unit int64) int {
	if unit <= 0 || b.End <= b.Begin {
		return 0
	}
	return int((b.End - b.Begin + unit - 1) / unit)
}

// Contains reports whether t lies in [Begin, End).
func (b Block) Contains(t int64) bool { return t >= b.Begin && t < b.End }

func (b Block) String() string { return fmt.Sprintf("[%d,%d)", b.Begin, b.End) }
