// Package journal holds the mood journal's entry store, the weekly trend
// aggregation and the analyze-and-save pipeline that ties them to the
// classifier.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"io.winapps.moodjournal/internal/kvstore"
	journalmodels "io.winapps.moodjournal/internal/models/journal"
	"io.winapps.moodjournal/internal/sentiment"
)

// EntriesKey is the key the whole entry list is persisted under
const EntriesKey = "daily_entries"

// Draft is an entry before the store assigns its id and date
type Draft struct {
	Text      string
	Sentiment sentiment.Label
	Summary   string
	Advice    string
}

// Store keeps the entry list, most recent first, as one JSON value.
//
// Appends from one Store are serialized. Two processes sharing a backend can
// still interleave their read-modify-write cycles and lose an entry.
type Store struct {
	kv     kvstore.Store
	logger *zap.SugaredLogger
	now    func() time.Time
	mu     sync.Mutex
}

type StoreOption func(*Store)

// WithClock replaces time.Now for id and date assignment
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(kv kvstore.Store, logger *zap.SugaredLogger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Store{kv: kv, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stamps d with an id and date, prepends it and writes the whole list back
func (s *Store) Append(ctx context.Context, d Draft) (journalmodels.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return journalmodels.Entry{}, err
	}

	now := s.now()
	id := now.UnixMilli()
	// Keep ids unique when two entries land in the same millisecond
	if len(entries) > 0 && entries[0].ID >= id {
		id = entries[0].ID + 1
	}

	entry := journalmodels.Entry{
		ID:        id,
		Date:      journalmodels.FormatDate(now),
		Text:      d.Text,
		Sentiment: d.Sentiment,
		Summary:   d.Summary,
		Advice:    d.Advice,
	}

	entries = append([]journalmodels.Entry{entry}, entries...)
	raw, err := json.Marshal(entries)
	if err != nil {
		return journalmodels.Entry{}, fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := s.kv.Set(ctx, EntriesKey, string(raw)); err != nil {
		return journalmodels.Entry{}, fmt.Errorf("failed to write entries: %w", err)
	}

	return entry, nil
}

// LoadAll returns every stored entry, most recent first. Read and decode
// failures are logged and yield an empty list.
func (s *Store) LoadAll(ctx context.Context) []journalmodels.Entry {
	entries, err := s.read(ctx)
	if err != nil {
		s.logger.Warnw("failed to load entries, returning empty history", "error", err)
		return []journalmodels.Entry{}
	}
	return entries
}

func (s *Store) read(ctx context.Context) ([]journalmodels.Entry, error) {
	raw, err := s.kv.Get(ctx, EntriesKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []journalmodels.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	var entries []journalmodels.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	if entries == nil {
		entries = []journalmodels.Entry{}
	}
	return entries, nil
}
