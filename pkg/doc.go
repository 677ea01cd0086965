// Package pkg provides the libraries behind interlinear, a time-aligned
// character-grid exporter for annotation tiers.
//
// # Overview
//
// A document holds named tiers (words, glosses, translations, ...) of
// time-stamped annotations. Interlinear lays every selected tier onto a shared
// grid in which one character column stands for a fixed slice of time, cuts
// the timeline into blocks that fit a page width and writes the result as
// plain text, HTML, colored terminal text or JSON.
//
// # Architecture
//
// The typical data flow:
//
//	JSON file / MongoDB
//	         ↓
//	    [source], [io] (load and validate a [tier] document)
//	         ↓
//	    [render/interlinear] (segment into blocks, lay out the grid)
//	         ↓
//	    [render/interlinear/sink] (text, HTML, ANSI, JSON)
//
// [pipeline] wires these stages together with defaults, validation and an
// artifact [cache]. The CLI and the HTTP [api] both go through it.
//
// # Quick Start
//
//	doc, _ := io.ImportJSON("session.json")
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Tiers: []interlinear.TierSetting{
//	        {Name: "words", Reference: true},
//	        {Name: "gloss", Italic: true},
//	    },
//	    ShowTimeLine: true,
//	    Formats:      []string{"text"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts["text"])
//
// # Main Packages
//
// [tier] - The annotation store: documents, tiers and annotations with stable
// IDs.
//
// [io] - JSON import and export of documents.
//
// [source] - Document sources (file, MongoDB) and a caching wrapper.
//
// [render/interlinear] - Block segmentation and grid layout. See [render] for
// the stage breakdown.
//
// [timecode] - Time formats for rulers (hh:mm:ss.ms, seconds, frames).
//
// [pipeline] - Options, defaults and the cached export runner.
//
// [cache] - File, Redis and null caches plus key derivation.
//
// [config] - TOML, YAML and JSON option files.
//
// [api] - HTTP render API.
//
// [observability] - Hooks for logging and metrics.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [tier]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/tier
// [io]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/io
// [source]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/source
// [render]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render
// [render/interlinear]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear
// [render/interlinear/sink]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/render/interlinear/sink
// [timecode]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/timecode
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/interlinear/pkg/errors
package pkg
