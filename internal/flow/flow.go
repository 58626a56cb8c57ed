package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/selection"
	"marquee/internal/shortlist"
	"marquee/internal/textutil"
)

// Catalog is the slice of the catalog client the flow depends on. Tests
// substitute a scripted fake.
type Catalog interface {
	SearchMulti(ctx context.Context, query string, limit int) ([]catalog.Item, error)
	GetDetails(ctx context.Context, id int64, kind catalog.Kind) (catalog.Item, error)
	BestTrailerURL(ctx context.Context, id int64, kind catalog.Kind) (string, error)
}

// PollSettings configures the polls /vote creates.
type PollSettings struct {
	Question        string
	Anonymous       bool
	MultipleAnswers bool
}

// Flow drives all conversation state transitions. It is safe for concurrent
// use by the per-update goroutines of the bot layer.
type Flow struct {
	catalog Catalog
	store   *shortlist.Store
	recent  *selection.Coordinator
	poll    PollSettings
	logger  *slog.Logger
}

func New(cat Catalog, store *shortlist.Store, recent *selection.Coordinator, poll PollSettings, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Flow{
		catalog: cat,
		store:   store,
		recent:  recent,
		poll:    poll,
		logger:  logging.NewComponentLogger(logger, "flow"),
	}
}

// Help explains the commands.
func (f *Flow) Help() View {
	return Notice{Text: msgHelp}
}

// Search runs a catalog search for free text and records the results as the
// conversation's active selection set. Empty queries are ignored.
func (f *Flow) Search(ctx context.Context, chatID int64, query string) []View {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	items, err := f.catalog.SearchMulti(ctx, query, shortlist.MaxEntries)
	if err != nil {
		logging.WithContext(ctx, f.logger).Error("catalog search failed",
			logging.String("query", query),
			logging.Error(err))
		return []View{Notice{Text: userMessage(err)}}
	}
	if len(items) == 0 {
		return []View{Notice{Text: msgNoResults}}
	}

	// Record before rendering so a button press can never reference a set
	// the coordinator has not seen yet.
	f.recent.RecordSearch(chatID, items)

	blocks := make([]string, 0, len(items))
	buttons := make([]Button, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, resultBlock(item, searchSynopsisLimit))
		if item.Kind == catalog.KindPerson {
			continue
		}
		buttons = append(buttons, Button{
			Label: "+ " + item.Label(),
			Token: FormatToken(ActionAdd, item.ID),
		})
	}
	return []View{SearchView{
		Text:    textutil.JoinBlocks(blocks, voteJoinLimit),
		Prompt:  msgPickPrompt,
		Buttons: buttons,
	}}
}

// List renders the current shortlist.
func (f *Flow) List(chatID int64) View {
	entries := f.store.Get(chatID)
	if len(entries) == 0 {
		return Notice{Text: msgEmptyList}
	}
	return listView(entries)
}

// Reset clears the shortlist and the active selection set.
func (f *Flow) Reset(ctx context.Context, chatID int64) View {
	if err := f.store.Remove(chatID); err != nil {
		logging.WithContext(ctx, f.logger).Error("shortlist reset failed", logging.Error(err))
		return Notice{Text: msgSaveFailed}
	}
	f.recent.Clear(chatID)
	return Notice{Text: msgListCleared}
}

// Callback dispatches a pressed inline button. It always returns an
// acknowledgement for the transport to answer the callback with; views are
// the follow-up messages, if any. Tokens this bot never produced get a
// generic acknowledgement and no side effects.
func (f *Flow) Callback(ctx context.Context, chatID int64, data string) (string, []View) {
	action, id, kind, ok := ParseToken(data)
	if !ok {
		logging.WithContext(ctx, f.logger).Warn("unparsable callback token",
			logging.String("data", data))
		return ackUnknownAction, nil
	}
	switch action {
	case ActionAdd:
		return f.addEntry(ctx, chatID, id)
	case ActionDelete:
		return f.deleteEntry(ctx, chatID, id)
	default:
		return f.showEntry(ctx, chatID, id, kind)
	}
}

func (f *Flow) addEntry(ctx context.Context, chatID, id int64) (string, []View) {
	item, ok := f.recent.Resolve(chatID, id)
	if !ok {
		return ackStale, nil
	}
	if item.Kind == catalog.KindPerson {
		return ackPersonSkipped, nil
	}

	outcome, err := f.store.Insert(chatID, entryFromItem(item))
	if err != nil {
		logging.WithContext(ctx, f.logger).Error("shortlist insert failed",
			logging.Int64("title_id", id),
			logging.Error(err))
		return msgSaveFailed, nil
	}
	switch outcome {
	case shortlist.AlreadyPresent:
		return ackAlreadyListed, nil
	case shortlist.Full:
		return ackListFull, nil
	default:
		return ackAdded, []View{listView(f.store.Get(chatID))}
	}
}

func (f *Flow) deleteEntry(ctx context.Context, chatID, id int64) (string, []View) {
	outcome, err := f.store.DeleteEntry(chatID, id)
	if err != nil {
		logging.WithContext(ctx, f.logger).Error("shortlist delete failed",
			logging.Int64("title_id", id),
			logging.Error(err))
		return msgSaveFailed, nil
	}
	if outcome == shortlist.NotFound {
		return ackNotListed, nil
	}
	return ackRemoved, []View{f.List(chatID)}
}

func (f *Flow) showEntry(ctx context.Context, chatID, id int64, kind catalog.Kind) (string, []View) {
	if kind == "" {
		// Tokens from keyboards rendered before kinds were encoded carry no
		// third segment; the stored entry still knows.
		kind = catalog.KindMovie
		for _, entry := range f.store.Get(chatID) {
			if entry.ID == id {
				kind = catalog.ParseKind(entry.Kind)
				break
			}
		}
	}

	item, err := f.catalog.GetDetails(ctx, id, kind)
	if err != nil {
		logging.WithContext(ctx, f.logger).Error("detail lookup failed",
			logging.Int64("title_id", id),
			logging.String("kind", string(kind)),
			logging.Error(err))
		return userMessage(err), nil
	}
	return ackDetailsSent, []View{DetailView{
		Text:       resultBlock(item, detailSynopsisLimit),
		PosterPath: item.ImagePath,
	}}
}

// resultBlock renders one title as an HTML block: bold label, optional kind
// marker, italic clipped synopsis.
func resultBlock(item catalog.Item, synopsisLimit int) string {
	head := "<b>" + textutil.EscapeHTML(item.Title) + "</b>"
	if year := item.Year(); year != "" {
		head += " (" + year + ")"
	}
	switch item.Kind {
	case catalog.KindSeries:
		head += " · series"
	case catalog.KindPerson:
		head += " · person"
	}

	synopsis := "<i>No synopsis available.</i>"
	if item.Synopsis != "" {
		synopsis = "<i>" + textutil.EscapeHTML(textutil.Clip(item.Synopsis, synopsisLimit)) + "</i>"
	}
	return head + "\n" + synopsis
}

func listView(entries []shortlist.Entry) ListView {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf("<b>Shortlist (%d/%d):</b>", len(entries), shortlist.MaxEntries))
	rows := make([][]Button, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, textutil.EscapeHTML(entry.Label())))
		rows = append(rows, []Button{
			{Label: "🎬 " + entry.Label(), Token: FormatShowToken(entry.ID, catalog.ParseKind(entry.Kind))},
			{Label: "🗑 Remove", Token: FormatToken(ActionDelete, entry.ID)},
		})
	}
	return ListView{Text: strings.Join(lines, "\n"), Rows: rows}
}

func entryFromItem(item catalog.Item) shortlist.Entry {
	return shortlist.Entry{
		ID:            item.ID,
		Title:         item.Title,
		OriginalTitle: item.OriginalTitle,
		PosterPath:    item.ImagePath,
		ReleaseDate:   item.ReleaseDate,
		Kind:          string(item.Kind),
	}
}
