package tier

import (
	"errors"
	"testing"
)

func TestAddTierAssignsIDs(t *testing.T) {
	doc := New("test")

	words, err := doc.AddTier("words", []Annotation{
		{Begin: 0, End: 10, Value: "a"},
		{Begin: 10, End: 20, Value: "a"},
	})
	if err != nil {
		t.Fatalf("AddTier: %v", err)
	}
	gloss, err := doc.AddTier("gloss", []Annotation{{ID: 99, Begin: 0, End: 20, Value: "a"}})
	if err != nil {
		t.Fatalf("AddTier: %v", err)
	}

	if words.Annotations[0].ID != 0 || words.Annotations[1].ID != 1 {
		t.Errorf("words IDs = %d,%d, want 0,1", words.Annotations[0].ID, words.Annotations[1].ID)
	}
	if gloss.Annotations[0].ID != 2 {
		t.Errorf("gloss ID = %d, want 2 (caller IDs are overwritten)", gloss.Annotations[0].ID)
	}
	if doc.AnnotationCount() != 3 {
		t.Errorf("AnnotationCount() = %d, want 3", doc.AnnotationCount())
	}
}

func TestAddTierCopiesInput(t *testing.T) {
	doc := New("test")
	in := []Annotation{{Begin: 0, End: 10, Value: "x"}}
	tr, _ := doc.AddTier("t", in)
	in[0].Value = "changed"
	if tr.Annotations[0].Value != "x" {
		t.Errorf("tier shares the caller's slice")
	}
}

func TestAddTierErrors(t *testing.T) {
	doc := New("test")
	if _, err := doc.AddTier("", nil); !errors.Is(err, ErrInvalidTierName) {
		t.Errorf("empty name: err = %v, want ErrInvalidTierName", err)
	}
	if _, err := doc.AddTier("a", nil); err != nil {
		t.Fatalf("AddTier: %v", err)
	}
	if _, err := doc.AddTier("a", nil); !errors.Is(err, ErrDuplicateTier) {
		t.Errorf("duplicate: err = %v, want ErrDuplicateTier", err)
	}
}

func TestLookupAndOrder(t *testing.T) {
	doc := New("test")
	for _, n := range []string{"b", "a", "c"} {
		if _, err := doc.AddTier(n, nil); err != nil {
			t.Fatal(err)
		}
	}

	names := doc.TierNames()
	want := []string{"b", "a", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("TierNames() = %v, want %v", names, want)
		}
	}
	if _, ok := doc.Tier("a"); !ok {
		t.Error("Tier(a) not found")
	}
	if _, ok := doc.Tier("z"); ok {
		t.Error("Tier(z) should not exist")
	}
	if doc.TierCount() != 3 {
		t.Errorf("TierCount() = %d, want 3", doc.TierCount())
	}
}

func TestMaxEnd(t *testing.T) {
	doc := New("test")
	doc.AddTier("a", []Annotation{{Begin: 0, End: 100}, {Begin: 100, End: 250}})
	doc.AddTier("b", []Annotation{{Begin: 0, End: 900}})
	doc.AddTier("empty", nil)

	tests := []struct {
		name  string
		tiers []string
		want  int64
	}{
		{"all", nil, 900},
		{"only a", []string{"a"}, 250},
		{"empty tier", []string{"empty"}, 0},
		{"unknown ignored", []string{"a", "missing"}, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.MaxEnd(tt.tiers...); got != tt.want {
				t.Errorf("MaxEnd() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		anns []Annotation
		want error
	}{
		{"valid", []Annotation{{Begin: 0, End: 10}, {Begin: 10, End: 20}}, nil},
		{"zero length", []Annotation{{Begin: 5, End: 5}}, nil},
		{"gap", []Annotation{{Begin: 0, End: 10}, {Begin: 50, End: 60}}, nil},
		{"negative begin", []Annotation{{Begin: -1, End: 10}}, ErrNegativeInterval},
		{"end before begin", []Annotation{{Begin: 10, End: 5}}, ErrNegativeInterval},
		{"unordered", []Annotation{{Begin: 20, End: 30}, {Begin: 0, End: 10}}, ErrUnordered},
		{"overlap", []Annotation{{Begin: 0, End: 15}, {Begin: 10, End: 20}}, ErrOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := New("test")
			doc.AddTier("t", tt.anns)
			err := doc.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
