package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrVersionConflict indicates another append landed after the caller
	// read the history its decision was based on.
	ErrVersionConflict = errors.New("tab version conflict")
	// ErrTabIDRequired indicates a missing tab id.
	ErrTabIDRequired = errors.New("tab id is required")
	// ErrChainBroken indicates a stored history whose hashes do not verify.
	ErrChainBroken = errors.New("tab event chain is broken")
)

// Record is one persisted tab event.
type Record struct {
	// TabID is the aggregate the event belongs to.
	TabID string
	// Seq is the 1-based position in the tab's history. Assigned on append.
	Seq uint64
	// Type is the event variant name, e.g. "drinks_ordered".
	Type string
	// Timestamp is when the event was decided, truncated to milliseconds.
	Timestamp time.Time
	// PayloadJSON is the variant's JSON body.
	PayloadJSON []byte
	// Hash is the content hash of the event. Assigned on append.
	Hash string
	// PrevHash is the previous record's ChainHash, empty for the first.
	PrevHash string
	// ChainHash links this record to its predecessor. Assigned on append.
	ChainHash string
}

// EventStore is the append-only tab journal.
type EventStore interface {
	// Load returns the full history of a tab in sequence order. An unknown
	// tab has an empty history.
	Load(ctx context.Context, tabID string) ([]Record, error)
	// Append adds records after expectedVersion, the last Seq the caller
	// observed (0 for a new tab). It fails with ErrVersionConflict if the
	// tab has moved on. All records are stored or none are.
	Append(ctx context.Context, tabID string, expectedVersion uint64, records []Record) ([]Record, error)
	// ListTabs returns the ids of every tab with at least one event.
	ListTabs(ctx context.Context) ([]string, error)
}

// Version returns the Seq of the last record, or 0 for an empty history.
func Version(records []Record) uint64 {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)-1].Seq
}
