package flow

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/selection"
	"marquee/internal/shortlist"
)

type fakeCatalog struct {
	searchItems []catalog.Item
	searchErr   error
	details     map[int64]catalog.Item
	detailErr   error
	trailers    map[int64]string
	trailerErr  error

	detailKinds map[int64]catalog.Kind
}

func (f *fakeCatalog) SearchMulti(_ context.Context, _ string, _ int) ([]catalog.Item, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchItems, nil
}

func (f *fakeCatalog) GetDetails(_ context.Context, id int64, kind catalog.Kind) (catalog.Item, error) {
	if f.detailKinds == nil {
		f.detailKinds = make(map[int64]catalog.Kind)
	}
	f.detailKinds[id] = kind
	if f.detailErr != nil {
		return catalog.Item{}, f.detailErr
	}
	item, ok := f.details[id]
	if !ok {
		return catalog.Item{}, &catalog.Error{Kind: catalog.ErrorNotFound, Op: "details"}
	}
	return item, nil
}

func (f *fakeCatalog) BestTrailerURL(_ context.Context, id int64, _ catalog.Kind) (string, error) {
	if f.trailerErr != nil {
		return "", f.trailerErr
	}
	return f.trailers[id], nil
}

func newTestFlow(t *testing.T, cat *fakeCatalog) (*Flow, *shortlist.Store) {
	t.Helper()
	store, err := shortlist.Open(filepath.Join(t.TempDir(), "state.json"), logging.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	poll := PollSettings{Question: "What are we watching?", MultipleAnswers: true}
	return New(cat, store, selection.New(0), poll, logging.NewNop()), store
}

func movieItem(id int64, title, date string) catalog.Item {
	return catalog.Item{
		ID:          id,
		Kind:        catalog.KindMovie,
		Title:       title,
		ReleaseDate: date,
		Synopsis:    "A story about " + title + ".",
		ImagePath:   "/p.jpg",
	}
}

func TestSearchRendersResultsAndButtons(t *testing.T) {
	cat := &fakeCatalog{searchItems: []catalog.Item{
		movieItem(603, "The Matrix", "1999-03-31"),
		{ID: 6384, Kind: catalog.KindPerson, Title: "Keanu Reeves"},
	}}
	flow, _ := newTestFlow(t, cat)

	views := flow.Search(context.Background(), 1, "matrix")
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	search, ok := views[0].(SearchView)
	if !ok {
		t.Fatalf("expected SearchView, got %T", views[0])
	}
	if !strings.Contains(search.Text, "<b>The Matrix</b> (1999)") {
		t.Errorf("unexpected search text: %q", search.Text)
	}
	if !strings.Contains(search.Text, "Keanu Reeves") {
		t.Errorf("person result missing from text: %q", search.Text)
	}
	if len(search.Buttons) != 1 {
		t.Fatalf("expected 1 add button (person excluded), got %d", len(search.Buttons))
	}
	if search.Buttons[0].Token != "add:603" {
		t.Errorf("unexpected token %q", search.Buttons[0].Token)
	}
}

func TestSearchEmptyQueryIgnored(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{})
	if views := flow.Search(context.Background(), 1, "   "); views != nil {
		t.Fatalf("expected no views for blank query, got %v", views)
	}
}

func TestSearchFailureBecomesNotice(t *testing.T) {
	cat := &fakeCatalog{searchErr: &catalog.Error{Kind: catalog.ErrorRateLimited, Op: "search"}}
	flow, _ := newTestFlow(t, cat)

	views := flow.Search(context.Background(), 1, "matrix")
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	notice, ok := views[0].(Notice)
	if !ok {
		t.Fatalf("expected Notice, got %T", views[0])
	}
	if !strings.Contains(notice.Text, "rate limiting") {
		t.Errorf("unexpected notice: %q", notice.Text)
	}
}

func TestSearchNoResults(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeCatalog{})
	views := flow.Search(context.Background(), 1, "zzzz")
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if notice, ok := views[0].(Notice); !ok || notice.Text != msgNoResults {
		t.Errorf("expected no-results notice, got %#v", views[0])
	}
}

func TestAddFromSearchResults(t *testing.T) {
	cat := &fakeCatalog{searchItems: []catalog.Item{movieItem(603, "The Matrix", "1999-03-31")}}
	flow, store := newTestFlow(t, cat)
	ctx := context.Background()

	flow.Search(ctx, 1, "matrix")

	ack, views := flow.Callback(ctx, 1, "add:603")
	if ack != ackAdded {
		t.Fatalf("expected %q, got %q", ackAdded, ack)
	}
	if len(views) != 1 {
		t.Fatalf("expected refreshed list view, got %d views", len(views))
	}
	if _, ok := views[0].(ListView); !ok {
		t.Fatalf("expected ListView, got %T", views[0])
	}
	entries := store.Get(1)
	if len(entries) != 1 || entries[0].ID != 603 || entries[0].Kind != "movie" {
		t.Errorf("unexpected stored entries: %#v", entries)
	}

	// Repeat press is acknowledged without a second list message.
	ack, views = flow.Callback(ctx, 1, "add:603")
	if ack != ackAlreadyListed || views != nil {
		t.Errorf("expected duplicate ack with no views, got %q %v", ack, views)
	}
}

func TestAddWithoutActiveSearch(t *testing.T) {
	flow, store := newTestFlow(t, &fakeCatalog{})
	ack, views := flow.Callback(context.Background(), 1, "add:603")
	if ack != ackStale || views != nil {
		t.Errorf("expected stale ack, got %q %v", ack, views)
	}
	if got := store.Get(1); len(got) != 0 {
		t.Errorf("store should be untouched, got %#v", got)
	}
}

func TestAddPersonRejected(t *testing.T) {
	cat := &fakeCatalog{searchItems: []catalog.Item{
		{ID: 6384, Kind: catalog.KindPerson, Title: "Keanu Reeves"},
	}}
	flow, store := newTestFlow(t, cat)
	ctx := context.Background()
	flow.Search(ctx, 1, "keanu")

	ack, _ := flow.Callback(ctx, 1, "add:6384")
	if ack != ackPersonSkipped {
		t.Errorf("expected %q, got %q", ackPersonSkipped, ack)
	}
	if got := store.Get(1); len(got) != 0 {
		t.Errorf("person must not be stored, got %#v", got)
	}
}

func TestAddWhenFull(t *testing.T) {
	flow, store := newTestFlow(t, &fakeCatalog{searchItems: []catalog.Item{movieItem(999, "Overflow", "2024-01-01")}})
	ctx := context.Background()
	for i := int64(1); i <= shortlist.MaxEntries; i++ {
		if _, err := store.Insert(1, shortlist.Entry{ID: i, Title: "Seed"}); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}
	flow.Search(ctx, 1, "overflow")

	ack, views := flow.Callback(ctx, 1, "add:999")
	if ack != ackListFull || views != nil {
		t.Errorf("expected full ack, got %q %v", ack, views)
	}
	if got := store.Get(1); len(got) != shortlist.MaxEntries {
		t.Errorf("cap violated: %d entries", len(got))
	}
}

func TestDeleteEntry(t *testing.T) {
	flow, store := newTestFlow(t, &fakeCatalog{})
	ctx := context.Background()
	store.Insert(1, shortlist.Entry{ID: 603, Title: "The Matrix", Kind: "movie"})

	ack, views := flow.Callback(ctx, 1, "del:603")
	if ack != ackRemoved {
		t.Fatalf("expected %q, got %q", ackRemoved, ack)
	}
	if len(views) != 1 {
		t.Fatalf("expected refreshed view, got %d", len(views))
	}
	if notice, ok := views[0].(Notice); !ok || notice.Text != msgEmptyList {
		t.Errorf("expected empty-list notice after last delete, got %#v", views[0])
	}

	ack, views = flow.Callback(ctx, 1, "del:603")
	if ack != ackNotListed || views != nil {
		t.Errorf("expected not-listed ack, got %q %v", ack, views)
	}
}

func TestCallbackUnknownTokens(t *testing.T) {
	flow, store := newTestFlow(t, &fakeCatalog{})
	for _, data := range []string{"", "noise", "frobnicate:5", "add:abc", "show:5:banana", "add:1:2:3"} {
		ack, views := flow.Callback(context.Background(), 1, data)
		if ack != ackUnknownAction || views != nil {
			t.Errorf("token %q: expected generic ack, got %q %v", data, ack, views)
		}
	}
	if got := store.Get(1); len(got) != 0 {
		t.Errorf("unknown tokens must not mutate state, got %#v", got)
	}
}

func TestShowUsesTokenKind(t *testing.T) {
	cat := &fakeCatalog{details: map[int64]catalog.Item{
		1399: {ID: 1399, Kind: catalog.KindSeries, Title: "Game of Thrones"},
	}}
	flow, _ := newTestFlow(t, cat)

	ack, views := flow.Callback(context.Background(), 1, "show:1399:tv")
	if ack != ackDetailsSent {
		t.Fatalf("expected %q, got %q", ackDetailsSent, ack)
	}
	if cat.detailKinds[1399] != catalog.KindSeries {
		t.Errorf("expected tv lookup, got %q", cat.detailKinds[1399])
	}
	if len(views) != 1 {
		t.Fatalf("expected detail view, got %d", len(views))
	}
	if _, ok := views[0].(DetailView); !ok {
		t.Fatalf("expected DetailView, got %T", views[0])
	}
}

func TestShowLegacyTokenFallsBackToStoredKind(t *testing.T) {
	cat := &fakeCatalog{details: map[int64]catalog.Item{
		1399: {ID: 1399, Kind: catalog.KindSeries, Title: "Game of Thrones"},
	}}
	flow, store := newTestFlow(t, cat)
	store.Insert(7, shortlist.Entry{ID: 1399, Title: "Game of Thrones", Kind: "tv"})

	if ack, _ := flow.Callback(context.Background(), 7, "show:1399"); ack != ackDetailsSent {
		t.Fatalf("unexpected ack %q", ack)
	}
	if cat.detailKinds[1399] != catalog.KindSeries {
		t.Errorf("expected stored kind tv, got %q", cat.detailKinds[1399])
	}
}

func TestShowFailureSurfacesCatalogMessage(t *testing.T) {
	cat := &fakeCatalog{detailErr: &catalog.Error{Kind: catalog.ErrorNotFound, Op: "details"}}
	flow, _ := newTestFlow(t, cat)

	ack, views := flow.Callback(context.Background(), 1, "show:42:movie")
	if !strings.Contains(ack, "no record") {
		t.Errorf("unexpected ack: %q", ack)
	}
	if views != nil {
		t.Errorf("expected no views on failure, got %v", views)
	}
}

func TestResetClearsEverything(t *testing.T) {
	cat := &fakeCatalog{searchItems: []catalog.Item{movieItem(603, "The Matrix", "1999-03-31")}}
	flow, store := newTestFlow(t, cat)
	ctx := context.Background()

	flow.Search(ctx, 1, "matrix")
	flow.Callback(ctx, 1, "add:603")

	view := flow.Reset(ctx, 1)
	if notice, ok := view.(Notice); !ok || notice.Text != msgListCleared {
		t.Fatalf("unexpected reset view: %#v", view)
	}
	if got := store.Get(1); len(got) != 0 {
		t.Errorf("store not cleared: %#v", got)
	}
	if ack, _ := flow.Callback(ctx, 1, "add:603"); ack != ackStale {
		t.Errorf("selection should be cleared, got ack %q", ack)
	}
}

func TestListScopedPerConversation(t *testing.T) {
	flow, store := newTestFlow(t, &fakeCatalog{})
	store.Insert(1, shortlist.Entry{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31", Kind: "movie"})

	view := flow.List(1)
	list, ok := view.(ListView)
	if !ok {
		t.Fatalf("expected ListView, got %T", view)
	}
	if !strings.Contains(list.Text, "The Matrix (1999)") {
		t.Errorf("unexpected list text: %q", list.Text)
	}
	if len(list.Rows) != 1 || len(list.Rows[0]) != 2 {
		t.Fatalf("unexpected rows: %#v", list.Rows)
	}
	if list.Rows[0][0].Token != "show:603:movie" || list.Rows[0][1].Token != "del:603" {
		t.Errorf("unexpected tokens: %#v", list.Rows[0])
	}

	if notice, ok := flow.List(2).(Notice); !ok || notice.Text != msgEmptyList {
		t.Errorf("other conversation should be empty")
	}
}
