// Package api serves the export pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz                 liveness check with build version
//	POST /render?format=html      render a document, body is a [RenderRequest]
//	POST /blocks                  block ranges of a document, no rendering
//
// The render response body is the artifact itself with the content type of
// the format. The headers X-Run-ID and X-Cache (hit or miss) describe the
// run. Errors are JSON objects carrying the error code of the errors
// package:
//
//	{"error": {"code": "TIER_NOT_FOUND", "message": "tier \"gloss\" not found"}, "request_id": "..."}
//
// Every response carries an X-Request-ID header; a client-supplied value is
// kept.
package api
