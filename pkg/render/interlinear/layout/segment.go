package layout

import (
	"math"

	"github.com/matzehuels/interlinear/pkg/tier"
)

// Params holds the numeric inputs of block segmentation.
type Params struct {
	// TimeUnit is the duration represented by one character column.
	TimeUnit int64
	// Span is the nominal duration of one block (block width * TimeUnit).
	Span int64
	// Min and Max bound the export range [Min, Max).
	Min, Max int64
	// Wrap enables splitting reference annotations longer than Span.
	Wrap bool
	// Selection stops segmentation once the reference tier is exhausted
	// instead of filling up to Max with fixed blocks.
	Selection bool
}

// state is a step of the reference-tier segmentation loop.
type state int

const (
	stateScanning state = iota
	stateEmittingGap
	stateEmittingWrap
	stateAbsorbing
	stateFilling
	stateDone
)

// Segment computes the ordered blocks covering [p.Min, p.Max).
//
// Without reference annotations the range is cut into blocks of p.Span.
// With a reference tier, block edges follow reference annotation boundaries:
// a long gap before the next reference annotation gets its own block, an
// over-long annotation is cut at p.Span when wrapping is enabled, and short
// annotations are absorbed into one block while their text still fits. Once
// the reference tier is exhausted the remainder is filled with fixed blocks,
// unless p.Selection is set.
//
// Time arithmetic saturates at math.MaxInt64.
//
// Every iteration either emits a block that starts at the previous block's
// end and is strictly longer than zero, or advances the reference cursor, so
// the loop always terminates.
func Segment(p Params, ref []tier.Annotation) []Block {
	if p.Span <= 0 || p.TimeUnit <= 0 || p.Min >= p.Max {
		return nil
	}
	s := &segmenter{p: p, ref: ref, begin: p.Min}
	st := stateScanning
	if len(ref) == 0 {
		st = stateFilling
	}
	for st != stateDone {
		switch st {
		case stateScanning:
			st = s.scan()
		case stateEmittingGap:
			st = s.emitGap()
		case stateEmittingWrap:
			st = s.emitWrap()
		case stateAbsorbing:
			st = s.absorb()
		case stateFilling:
			st = s.fill()
		}
	}
	return s.blocks
}

type segmenter struct {
	p      Params
	ref    []tier.Annotation
	i      int
	begin  int64
	blocks []Block
}

func (s *segmenter) scan() state {
	if s.begin >= s.p.Max {
		return stateDone
	}
	for s.i < len(s.ref) && s.ref[s.i].End <= s.begin {
		s.i++
	}
	if s.i >= len(s.ref) || s.ref[s.i].Begin >= s.p.Max {
		if s.p.Selection {
			return stateDone
		}
		return stateFilling
	}

	r := s.ref[s.i]
	switch {
	case r.Begin > addSat(s.begin, s.p.Span/2):
		return stateEmittingGap
	case s.p.Wrap && r.End > addSat(s.begin, s.p.Span):
		return stateEmittingWrap
	default:
		return stateAbsorbing
	}
}

// emitGap gives the stretch before the current reference annotation its own
// block. The annotation is examined again from the new block begin.
func (s *segmenter) emitGap() state {
	s.emit(min(s.ref[s.i].Begin, addSat(s.begin, s.p.Span)))
	return stateScanning
}

// emitWrap emits one full block inside an over-long reference annotation.
func (s *segmenter) emitWrap() state {
	s.emit(addSat(s.begin, s.p.Span))
	return stateScanning
}

// absorb ends the block at the current reference annotation and extends it
// over following annotations while their text fits in the remaining columns.
// An absorbed annotation may end beyond one span; the block then ends with it.
func (s *segmenter) absorb() state {
	limit := addSat(s.begin, s.p.Span)
	r := s.ref[s.i]
	end := r.End
	col := max(s.project(s.begin, r), r.End)
	s.i++

	for s.i < len(s.ref) {
		n := s.ref[s.i]
		if n.Begin >= s.p.Max {
			break
		}
		next := s.project(col, n)
		if next > limit {
			break
		}
		end = n.End
		col = max(next, n.End)
		s.i++
	}

	s.emit(end)
	return stateScanning
}

// project returns the column counter after writing a's text followed by one
// separator, starting no earlier than a's begin time.
func (s *segmenter) project(col int64, a tier.Annotation) int64 {
	cols := int64(len([]rune(a.Value)) + 1)
	if cols > math.MaxInt64/s.p.TimeUnit {
		return math.MaxInt64
	}
	return addSat(max(col, a.Begin), s.p.TimeUnit*cols)
}

func (s *segmenter) fill() state {
	for s.begin < s.p.Max {
		s.emit(addSat(s.begin, s.p.Span))
	}
	return stateDone
}

func (s *segmenter) emit(end int64) {
	end = min(end, s.p.Max)
	if end <= s.begin {
		return
	}
	s.blocks = append(s.blocks, Block{Begin: s.begin, End: end})
	s.begin = end
}

// addSat returns t+d for d >= 0, capped at math.MaxInt64.
func addSat(t, d int64) int64 {
	if t > math.MaxInt64-d {
		return math.MaxInt64
	}
	return t + d
}
