// Package flow is the interaction state machine that turns inbound chat
// events into view models.
//
// It orchestrates the catalog client, the shortlist store, and the selection
// coordinator: free text triggers a search, callback tokens mutate or display
// the shortlist, and /vote composes a poll bundle from the stored entries.
// Every failure at this boundary resolves to a short user-facing notice; the
// process keeps serving other conversations.
//
// The flow never talks to the transport directly. It returns view models
// (notices, result lists, detail views, vote packs) that the bot layer
// renders, which keeps the whole machine testable with a fake catalog.
package flow
