package shortlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"marquee/internal/logging"
)

// MaxEntries is the hard cap on a conversation's shortlist.
const MaxEntries = 10

const currentVersion = 1

// Entry is the durable subset of a catalog item. The synopsis is deliberately
// not persisted; it is re-fetched on demand to avoid staleness.
type Entry struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	PosterPath    string `json:"poster_path,omitempty"`
	ReleaseDate   string `json:"release_date,omitempty"`
	Kind          string `json:"kind,omitempty"`
}

// Year returns the four-digit year of the release date, or "" when unknown.
func (e Entry) Year() string {
	if len(e.ReleaseDate) >= 4 {
		return e.ReleaseDate[:4]
	}
	return ""
}

// Label renders "Title (Year)" or just the title when the year is unknown.
func (e Entry) Label() string {
	if year := e.Year(); year != "" {
		return e.Title + " (" + year + ")"
	}
	return e.Title
}

// InsertOutcome reports what an Insert did.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	AlreadyPresent
	Full
)

// DeleteOutcome reports what a DeleteEntry did.
type DeleteOutcome int

const (
	Removed DeleteOutcome = iota
	NotFound
)

type document struct {
	Version int               `json:"version"`
	Chats   map[int64][]Entry `json:"chats"`
}

// Store provides thread-safe access to the persisted shortlists. All
// mutations pass through the single store-wide flush path, so per-chat
// mutation order is linearized.
type Store struct {
	path   string
	logger *slog.Logger

	mu  sync.RWMutex // guards doc
	doc document

	flushMu sync.Mutex // serializes snapshot writes
}

// Open loads the state file at path, starting empty when the file is missing
// or unreadable.
func Open(path string, logger *slog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("shortlist store path required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "shortlist")

	s := &Store{
		path:   path,
		logger: logger,
		doc:    document{Version: currentVersion, Chats: make(map[int64][]Entry)},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the state file.
func (s *Store) Path() string { return s.path }

// Get returns a copy of the conversation's shortlist, empty when absent.
func (s *Store) Get(chatID int64) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.doc.Chats[chatID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Chats returns every conversation id with a stored shortlist, in ascending
// order.
func (s *Store) Chats() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.doc.Chats))
	for id := range s.doc.Chats {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Replace swaps the conversation's shortlist wholesale, truncating to the
// first MaxEntries entries. Durable before returning success.
func (s *Store) Replace(chatID int64, entries []Entry) error {
	trimmed := make([]Entry, 0, MaxEntries)
	for _, entry := range entries {
		if len(trimmed) == MaxEntries {
			break
		}
		trimmed = append(trimmed, entry)
	}

	s.mu.Lock()
	s.doc.Chats[chatID] = trimmed
	s.mu.Unlock()

	return s.flush()
}

// Remove deletes the conversation's shortlist entirely. Durable before
// returning success.
func (s *Store) Remove(chatID int64) error {
	s.mu.Lock()
	delete(s.doc.Chats, chatID)
	s.mu.Unlock()

	return s.flush()
}

// Insert appends the entry unless its id is already present or the list is
// full. Only a successful append touches the disk.
func (s *Store) Insert(chatID int64, entry Entry) (InsertOutcome, error) {
	s.mu.Lock()
	entries := s.doc.Chats[chatID]
	for _, existing := range entries {
		if existing.ID == entry.ID {
			s.mu.Unlock()
			return AlreadyPresent, nil
		}
	}
	if len(entries) >= MaxEntries {
		s.mu.Unlock()
		return Full, nil
	}
	s.doc.Chats[chatID] = append(entries, entry)
	s.mu.Unlock()

	if err := s.flush(); err != nil {
		return Inserted, err
	}
	return Inserted, nil
}

// DeleteEntry removes a single entry by id. Only a removal touches the disk.
func (s *Store) DeleteEntry(chatID int64, id int64) (DeleteOutcome, error) {
	s.mu.Lock()
	entries := s.doc.Chats[chatID]
	kept := entries[:0:0]
	for _, entry := range entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	removed := len(kept) < len(entries)
	if removed {
		s.doc.Chats[chatID] = kept
	}
	s.mu.Unlock()

	if !removed {
		return NotFound, nil
	}
	if err := s.flush(); err != nil {
		return Removed, err
	}
	return Removed, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read state file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("state file unparsable, starting empty",
			logging.String("path", s.path),
			logging.Error(err))
		return nil
	}
	if doc.Version == 0 {
		doc.Version = currentVersion
	}
	if doc.Chats == nil {
		doc.Chats = make(map[int64][]Entry)
	}
	s.doc = doc
	return nil
}

// flush snapshots the whole document and writes it atomically. The snapshot
// is taken under the read lock so concurrent mutations block only for the
// marshal, never for the disk write.
func (s *Store) flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.RLock()
	data, err := json.MarshalIndent(s.doc, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
