// Package source reads analysis records from delimited text.
//
// Input may be a local file or an http(s) URL. ParseDelimited detects the
// delimiter and the column layout from the header row. Loader wraps fetching
// and parsing with a fallback to a built-in list, so callers always receive
// records to index.
package source
