// Package ingest imports delimited analysis files into the snapshot store.
//
// Files are read and parsed concurrently on a worker pool. Their records are
// concatenated in argument order and written as one snapshot, so a failed
// import leaves the previous snapshot untouched.
package ingest
