// Package tier provides the annotation document model consumed by the
// interlinear renderer.
//
// # Overview
//
// A [Document] is an ordered set of named [Tier] values. Each tier holds a
// time-ordered, non-overlapping sequence of [Annotation] intervals
// [Begin, End) in milliseconds, each with a (possibly empty) text value.
//
// # Identity
//
// Annotations carry an explicit [ID] assigned by [Document.AddTier]. The
// renderer keys its continuation state by this ID, so two annotations with
// equal text and equal times on different tiers remain distinct:
//
//	doc := tier.New("session-01")
//	doc.AddTier("words", []tier.Annotation{
//	    {Begin: 0, End: 400, Value: "so"},
//	    {Begin: 400, End: 900, Value: "anyway"},
//	})
//
// # Validation
//
// [Document.Validate] reports unordered, overlapping or negative intervals.
// Importers such as [io.ReadJSON] call it so malformed input is rejected at
// the boundary; the renderer itself never validates or mutates a document.
//
// [io.ReadJSON]: github.com/matzehuels/interlinear/pkg/io.ReadJSON
package tier
