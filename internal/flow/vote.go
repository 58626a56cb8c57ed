package flow

import (
	"context"
	"strings"

	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/textutil"
)

// Vote composes the poll bundle for the conversation's shortlist: the poll
// options, the poster album, the joined synopses, and the trailer digest.
// Per-entry detail and trailer lookups are best effort; a title whose lookup
// fails is still a poll option, it just contributes no synopsis or trailer.
func (f *Flow) Vote(ctx context.Context, chatID int64) []View {
	entries := f.store.Get(chatID)
	if len(entries) < 2 {
		return []View{Notice{Text: msgVoteTooSmall}}
	}

	logger := logging.WithContext(ctx, f.logger)

	options := make([]string, 0, len(entries))
	posters := make([]string, 0, len(entries))
	blocks := make([]string, 0, len(entries))
	trailers := make([]string, 0, len(entries))
	for _, entry := range entries {
		options = append(options, entry.Label())
		if entry.PosterPath != "" {
			posters = append(posters, entry.PosterPath)
		}

		kind := catalog.ParseKind(entry.Kind)
		item, err := f.catalog.GetDetails(ctx, entry.ID, kind)
		if err != nil {
			logger.Warn("vote detail lookup failed",
				logging.Int64("title_id", entry.ID),
				logging.Error(err))
			continue
		}
		blocks = append(blocks, resultBlock(item, voteSynopsisLimit))

		url, err := f.catalog.BestTrailerURL(ctx, entry.ID, kind)
		switch {
		case err != nil:
			logger.Warn("vote trailer lookup failed",
				logging.Int64("title_id", entry.ID),
				logging.Error(err))
		case url != "":
			trailers = append(trailers, "• <b>"+textutil.EscapeHTML(item.Title)+"</b>: "+url)
		}
	}

	trailerText := ""
	if len(trailers) > 0 {
		trailerText = "<b>Trailers:</b>\n" + strings.Join(trailers, "\n")
	}

	return []View{VoteView{
		Question:        f.poll.Question,
		Options:         options,
		Anonymous:       f.poll.Anonymous,
		MultipleAnswers: f.poll.MultipleAnswers,
		PosterPaths:     posters,
		AlbumCaption:    textutil.Clip(albumCaption, albumCaptionLimit),
		SynopsisChunks:  textutil.SplitChunks(textutil.JoinBlocks(blocks, voteJoinLimit), messageChunkLimit),
		TrailerText:     trailerText,
		Attribution:     attributionLine,
	}}
}
