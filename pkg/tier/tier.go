package tier

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidTierName is returned by [Document.AddTier] when the tier name
	// is empty.
	ErrInvalidTierName = errors.New("tier name must not be empty")

	// ErrDuplicateTier is returned by [Document.AddTier] when a tier with the
	// same name already exists in the document.
	ErrDuplicateTier = errors.New("duplicate tier name")

	// ErrNegativeInterval is returned by [Document.Validate] when an
	// annotation ends before it begins or begins before zero.
	ErrNegativeInterval = errors.New("annotation interval is negative")

	// ErrUnordered is returned by [Document.Validate] when annotations on a
	// tier are not sorted by begin time.
	ErrUnordered = errors.New("annotations are not time-ordered")

	// ErrOverlap is returned by [Document.Validate] when two consecutive
	// annotations on a tier overlap in time.
	ErrOverlap = errors.New("annotations overlap")
)

// ID identifies one annotation within a [Document]. IDs are assigned by
// [Document.AddTier] in insertion order and are stable for the lifetime of the
// document, so two annotations with the same text never share an identity.
type ID int

// Annotation is a time interval [Begin, End) in milliseconds with a text value.
// The value may be empty.
type Annotation struct {
	ID    ID
	Begin int64
	End   int64
	Value string
}

// Duration returns End - Begin.
func (a Annotation) Duration() int64 { return a.End - a.Begin }

// Tier is a named, time-ordered, non-overlapping sequence of annotations.
type Tier struct {
	Name        string
	Annotations []Annotation
}

// MaxEnd returns the largest end time on the tier, or 0 for an empty tier.
func (t *Tier) MaxEnd() int64 {
	var end int64
	for _, a := range t.Annotations {
		end = max(end, a.End)
	}
	return end
}

// Document is an ordered set of tiers. It plays the role of the annotation
// store: renderers only read from it.
//
// The zero value is not usable - use [New] to create a document.
// Document is not safe for concurrent mutation; concurrent readers are fine.
type Document struct {
	Name string
	// Media names the recording the tiers annotate. Informational only.
	Media string

	tiers []*Tier
	index map[string]*Tier
	next  ID
}

// New creates an empty document.
func New(name string) *Document {
	return &Document{
		Name:  name,
		index: make(map[string]*Tier),
	}
}

// AddTier appends a tier and assigns fresh IDs to its annotations. Any ID
// already present on the passed annotations is overwritten. The annotations
// slice is copied.
func (d *Document) AddTier(name string, annotations []Annotation) (*Tier, error) {
	if name == "" {
		return nil, ErrInvalidTierName
	}
	if _, exists := d.index[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTier, name)
	}

	t := &Tier{Name: name, Annotations: slices.Clone(annotations)}
	for i := range t.Annotations {
		t.Annotations[i].ID = d.next
		d.next++
	}
	d.tiers = append(d.tiers, t)
	d.index[name] = t
	return t, nil
}

// Tier returns the tier with the given name.
func (d *Document) Tier(name string) (*Tier, bool) {
	t, ok := d.index[name]
	return t, ok
}

// Tiers returns all tiers in insertion order.
func (d *Document) Tiers() []*Tier {
	return slices.Clone(d.tiers)
}

// TierNames returns the tier names in insertion order.
func (d *Document) TierNames() []string {
	names := make([]string, len(d.tiers))
	for i, t := range d.tiers {
		names[i] = t.Name
	}
	return names
}

// TierCount returns the number of tiers.
func (d *Document) TierCount() int { return len(d.tiers) }

// AnnotationCount returns the number of annotations over all tiers.
func (d *Document) AnnotationCount() int { return int(d.next) }

// MaxEnd returns the largest end time over the named tiers. With no names it
// considers every tier. Unknown names are ignored.
func (d *Document) MaxEnd(names ...string) int64 {
	var end int64
	if len(names) == 0 {
		for _, t := range d.tiers {
			end = max(end, t.MaxEnd())
		}
		return end
	}
	for _, n := range names {
		if t, ok := d.index[n]; ok {
			end = max(end, t.MaxEnd())
		}
	}
	return end
}

// Validate checks that every tier is time-ordered and non-overlapping and
// that no interval is negative. Importers call it; renderers never do.
func (d *Document) Validate() error {
	for _, t := range d.tiers {
		for i, a := range t.Annotations {
			if a.Begin < 0 || a.End < a.Begin {
				return fmt.Errorf("tier %s, annotation %d [%d,%d): %w", t.Name, i, a.Begin, a.End, ErrNegativeInterval)
			}
			if i == 0 {
				continue
			}
			prev := t.Annotations[i-1]
			if a.Begin < prev.Begin {
				return fmt.Errorf("tier %s, annotation %d: %w", t.Name, i, ErrUnordered)
			}
			if a.Begin < prev.End {
				return fmt.Errorf("tier %s, annotations %d and %d: %w", t.Name, i-1, i, ErrOverlap)
			}
		}
	}
	return nil
}
