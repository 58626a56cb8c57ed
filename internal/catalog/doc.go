// Package catalog provides the TMDB client used to search titles, fetch
// details, pick trailers, and download poster bytes.
//
// Every remote call runs through a bounded retry loop with a fixed backoff
// schedule and a status classification that separates transient conditions
// (network failures, 429, 5xx) from rejections (401, 403, 404). Failures
// surface as *Error values tagged with a stable ErrorKind so callers can map
// each kind to its own user-facing message.
//
// Search results arrive as tagged union shapes on the wire (movie, tv,
// person) and are normalized into the single Item type here, so downstream
// code never branches on the wire shape again.
package catalog
