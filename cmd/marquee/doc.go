// Package main hosts the marquee CLI entrypoint and command graph.
//
// The Cobra-based command tree starts the update loop, inspects the
// persisted shortlists, and scaffolds configuration. It centralizes
// configuration resolution and logger setup so subcommands can focus on
// user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
