// Package memory provides an in-process tab event journal.
package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/cafe/internal/services/tab/storage"
)

// Store keeps tab histories in memory.
type Store struct {
	mu     sync.Mutex
	events map[string][]storage.Record
	now    func() time.Time
}

var _ storage.EventStore = (*Store)(nil)

// New creates an empty in-memory journal. now stamps records without a
// timestamp; nil uses time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		events: make(map[string][]storage.Record),
		now:    now,
	}
}

// Load returns a copy of a tab's history.
func (s *Store) Load(ctx context.Context, tabID string) ([]storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("event store is required")
	}
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return nil, storage.ErrTabIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneRecords(s.events[tabID]), nil
}

// Append adds records when the tab is still at expectedVersion.
func (s *Store) Append(ctx context.Context, tabID string, expectedVersion uint64, records []storage.Record) ([]storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("event store is required")
	}
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return nil, storage.ErrTabIDRequired
	}
	if len(records) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.events[tabID]
	if storage.Version(history) != expectedVersion {
		return nil, storage.ErrVersionConflict
	}
	prevChain := ""
	if len(history) > 0 {
		prevChain = history[len(history)-1].ChainHash
	}
	sealed, err := storage.Seal(tabID, expectedVersion, prevChain, records, s.now)
	if err != nil {
		return nil, err
	}
	s.events[tabID] = append(slices.Clip(history), cloneRecords(sealed)...)
	return sealed, nil
}

// ListTabs returns tab ids in lexical order.
func (s *Store) ListTabs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("event store is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func cloneRecords(records []storage.Record) []storage.Record {
	if len(records) == 0 {
		return nil
	}
	cloned := make([]storage.Record, len(records))
	for i, rec := range records {
		rec.PayloadJSON = slices.Clone(rec.PayloadJSON)
		cloned[i] = rec
	}
	return cloned
}
