// Package io provides JSON import and export for annotation documents.
//
// # JSON Format
//
// A document is an object with a name and an ordered array of tiers. Each
// tier holds its annotations in time order:
//
//	{
//	  "name": "session-12",
//	  "media": "session-12.wav",
//	  "tiers": [
//	    {
//	      "name": "words",
//	      "annotations": [
//	        {"begin": 0, "end": 420, "value": "hello"},
//	        {"begin": 500, "end": 900, "value": "world"}
//	      ]
//	    },
//	    {"name": "gloss", "annotations": []}
//	  ]
//	}
//
// Times are integer milliseconds. Values may be empty. Annotation IDs are not
// part of the format; they are assigned on import.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the result: tier names must be
// unique and every tier must be time-ordered and non-overlapping. Failures
// carry the INVALID_DOCUMENT code from the errors package; a missing file
// carries FILE_NOT_FOUND.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. Tier order and annotation order are preserved, so a
// document survives an export and re-import unchanged apart from IDs.
package io
