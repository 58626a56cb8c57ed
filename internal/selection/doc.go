// Package selection keeps each conversation's most recent search result set
// in memory so "add" callbacks can be resolved against exactly what was shown.
//
// The cache is never persisted: after a restart stale callbacks resolve to
// nothing and the flow answers with a defined not-found notice instead of
// adding wrong data.
package selection
