// Package grid lays annotation text onto a fixed-width character grid.
//
// # Columns and Time
//
// One column stands for [Params.TimeUnit] milliseconds. [RenderTier] walks a
// tier's annotations for one block while keeping a cursor that holds the
// time represented by the columns written so far. Annotations are padded to
// their begin time, written when they fit, and otherwise cut with an
// ellipsis.
//
// # Continuation
//
// An annotation that runs past the block end is marked with an overflow
// token. When its text was cut, the resume offset is stored in a [Tracker]
// and the next block picks it up there, snapped back to the start of the
// word so words are not split. Text written in full clears the entry. A
// Tracker belongs to a single export run.
//
// # Output
//
// The result is a [Line] of tokens rather than a string: text, blanks,
// ellipses, boundary and overflow markers, and zero-width style runs. Sinks
// map them to plain text, HTML or terminal styles. [Line.String] uses
// [DefaultGlyphs].
//
// [Label] and [Ruler] produce the margin label and the optional time ruler.
package grid
