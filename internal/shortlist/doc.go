// Package shortlist owns the durable per-conversation list of selected
// titles.
//
// Each conversation holds at most ten entries, unique by catalog id, in
// insertion order. The whole state lives in a single versioned JSON document
// that only this package reads or writes; every mutation persists a full
// snapshot via a write-temp-then-rename sequence, so a crash mid-write never
// corrupts the previously committed document.
//
// Loading is lenient: a missing or unparsable file starts the store empty
// rather than refusing to start.
package shortlist
