package grid

import "github.com/matzehuels/interlinear/pkg/tier"

// Tracker remembers, per annotation, the rune offset at which rendering
// resumes in the next block. One Tracker belongs to one export run and must
// not be shared between concurrent runs.
type Tracker struct {
	entries map[tier.ID]entry
}

type entry struct {
	offset int // resume offset as written by the last truncation
	from   int // offset the last render actually started at
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[tier.ID]entry)}
}

// Get returns the raw resume offset for id.
func (t *Tracker) Get(id tier.ID) (int, bool) {
	e, ok := t.entries[id]
	return e.offset, ok
}

// Set stores the resume offset for id.
func (t *Tracker) Set(id tier.ID, offset int) {
	e := t.entries[id]
	e.offset = offset
	t.entries[id] = e
}

// Clear drops any state for id.
func (t *Tracker) Clear(id tier.ID) {
	delete(t.entries, id)
}

// Len returns the number of tracked annotations.
func (t *Tracker) Len() int { return len(t.entries) }

// Resume returns the offset into text where the next render of id starts:
// the stored offset snapped back to the start of its word. When snapping
// would land at or before the previous start, the raw offset is used so a
// word longer than a block still advances.
func (t *Tracker) Resume(id tier.ID, text []rune) int {
	e, ok := t.entries[id]
	if !ok {
		return 0
	}
	start := SnapBack(text, e.offset)
	if start <= e.from {
		start = min(e.offset, len(text))
	}
	e.from = start
	t.entries[id] = e
	return start
}

// SnapBack moves off back to the start of the word containing it. An offset
// sitting on a space skips forward past the spaces instead. Without a space
// before off, off is returned unchanged.
func SnapBack(text []rune, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(text) {
		return len(text)
	}
	if text[off] == ' ' {
		for off < len(text) && text[off] == ' ' {
			off++
		}
		return off
	}
	for i := off; i > 0; i-- {
		if text[i-1] == ' ' {
			return i
		}
	}
	return off
}
