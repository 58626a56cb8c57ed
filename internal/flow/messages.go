package flow

import (
	"fmt"

	"marquee/internal/catalog"
	"marquee/internal/shortlist"
)

// User-facing strings. Every failure surfaced to the chat resolves to exactly
// one of these; internal detail stays in the logs.
const (
	msgHelp = "Send me a movie or series title and I'll suggest matches.\n\n" +
		"/list — show the shortlist\n" +
		"/vote — start a poll over the shortlist\n" +
		"/reset — clear the shortlist\n" +
		"/help — this message"

	msgNoResults    = "No matches found. Try a different title."
	msgPickPrompt   = "Pick a title to add to the shortlist:"
	msgEmptyList    = "The shortlist is empty. Send me a title to get started."
	msgListCleared  = "Shortlist cleared."
	msgVoteTooSmall = "A poll needs at least 2 titles on the shortlist. Add more and run /vote again."
	msgSaveFailed   = "Couldn't save that change. Please try again."

	ackAdded         = "Added to the shortlist"
	ackAlreadyListed = "Already on the shortlist"
	ackRemoved       = "Removed from the shortlist"
	ackNotListed     = "That title is not on the shortlist"
	ackStale         = "That result has expired. Search again, please."
	ackPersonSkipped = "People can't be added to the shortlist"
	ackUnknownAction = "I don't recognize that button anymore"
	ackDetailsSent   = "Details sent"
)

var ackListFull = fmt.Sprintf("The shortlist already has %d titles", shortlist.MaxEntries)

// userMessage maps a catalog failure to the single message the chat sees.
func userMessage(err error) string {
	kind, ok := catalog.KindOf(err)
	if !ok {
		return "Something went wrong talking to the catalog. Please try again."
	}
	switch kind {
	case catalog.ErrorNetworkUnavailable:
		return "The catalog is unreachable right now. Please try again in a minute."
	case catalog.ErrorRateLimited:
		return "The catalog is rate limiting us. Please wait a moment and try again."
	case catalog.ErrorAuthInvalid:
		return "The catalog rejected the bot's credentials. This needs an operator's attention."
	case catalog.ErrorForbidden:
		return "The catalog refused that request."
	case catalog.ErrorNotFound:
		return "The catalog has no record of that title."
	case catalog.ErrorUpstreamServer:
		return "The catalog is having trouble right now. Please try again later."
	default:
		return "The catalog returned an unexpected response. Please try again later."
	}
}
