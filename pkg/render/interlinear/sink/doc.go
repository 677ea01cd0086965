// Package sink provides output format renderers for interlinear bodies.
//
// # Overview
//
// A "sink" turns a rendered [interlinear.Body] into bytes:
//
//   - Text: plain monospaced lines ([RenderText])
//   - HTML: a document with the grid in a <pre> element ([RenderHTML])
//   - ANSI: terminal output with lipgloss styles ([RenderANSI])
//   - JSON: block and row data for other tools ([RenderJSON])
//
// Every sink writes the rows of a block below each other and separates
// blocks with an empty line. The grid itself never changes between sinks;
// only the mapping of markers and style runs differs.
//
// Basic usage:
//
//	body, err := interlinear.Export(ctx, cfg, doc)
//	if err != nil {
//	    return err
//	}
//	page := sink.RenderHTML(body, sink.WithHTMLHeader("Session 12"))
package sink
