// Package ingestion runs the document processing pipeline.
//
// A Queue accepts jobs without blocking and drains them with exactly one
// worker goroutine, so documents are chunked, embedded, persisted, and
// fact-extracted strictly one at a time. A job that fails at any step
// leaves its document in status failed with no chunks written beyond the
// all-or-nothing batch; there is no automatic retry.
//
// The queue is in-process and non-persistent. Jobs enqueued but not yet
// started are lost on restart, and their documents stay in status
// processing until an operator intervenes.
package ingestion
