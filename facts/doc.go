// Package facts turns ingested policy documents into structured fact rows.
//
// The extractor reconstructs a document's text from its stored chunks,
// prompts the generation provider with a fixed eight-category taxonomy, and
// persists whatever facts it can recover from the response. Model output is
// parsed tolerantly: JSON wrapped in code fences or prose still parses, and
// an unrecoverable response degrades to zero facts rather than failing the
// document.
//
// Fact rows are append only. Re-running extraction adds new rows next to
// the old ones; consumers that need the latest run filter by InsertedAt.
package facts
