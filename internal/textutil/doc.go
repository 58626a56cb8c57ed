// Package textutil provides text processing utilities for chat output.
//
// The primary use cases are:
//   - Escaping user and catalog text for HTML parse mode
//   - Clipping long synopses to a rune budget with an ellipsis
//   - Joining formatted blocks and splitting them into transport-sized chunks
//
// All helpers operate on runes, not bytes, so multi-byte titles and synopses
// never get cut mid-character.
package textutil
