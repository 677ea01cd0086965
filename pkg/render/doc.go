// Package render groups the interlinear renderer and its output sinks.
//
// Rendering is split into three stages:
//
//  1. [interlinear/layout] cuts the export range into blocks.
//  2. [interlinear/grid] lays each tier of a block onto a character grid and
//     writes labels and rulers.
//  3. [interlinear/sink] turns the resulting token lines into plain text,
//     HTML, ANSI or JSON.
//
// The [interlinear] package ties the stages together: [interlinear.Export]
// runs the first two and returns a format-agnostic [interlinear.Body] that
// any sink can consume.
//
// [interlinear]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear
// [interlinear.Export]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear#Export
// [interlinear.Body]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear#Body
// [interlinear/layout]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear/layout
// [interlinear/grid]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear/grid
// [interlinear/sink]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear/sink
package render
