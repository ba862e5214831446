package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/louisbranch/cafe/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/cafe/internal/services/tab/storage"
	"github.com/louisbranch/cafe/internal/services/tab/storage/sqlite/migrations"
)

// Store is a SQLite-backed tab journal.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.EventStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp records without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the journal at path and applies
// migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.EventsFS, "events"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Close closes the underlying database. It is nil-safe.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns a tab's history in sequence order.
func (s *Store) Load(ctx context.Context, tabID string) ([]storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return nil, storage.ErrTabIDRequired
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT tab_id, seq, event_type, timestamp, payload_json, event_hash, prev_chain_hash, chain_hash
FROM tab_events
WHERE tab_id = ?
ORDER BY seq`, tabID)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		var (
			rec    storage.Record
			seq    int64
			millis int64
		)
		if err := rows.Scan(&rec.TabID, &seq, &rec.Type, &millis, &rec.PayloadJSON, &rec.Hash, &rec.PrevHash, &rec.ChainHash); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Seq = uint64(seq)
		rec.Timestamp = time.UnixMilli(millis).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

// Append stores records atomically after expectedVersion.
func (s *Store) Append(ctx context.Context, tabID string, expectedVersion uint64, records []storage.Record) ([]storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return nil, storage.ErrTabIDRequired
	}
	if len(records) == 0 {
		return nil, nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var (
		headSeq   int64
		headChain string
	)
	err = tx.QueryRowContext(ctx, `
SELECT seq, chain_hash FROM tab_events WHERE tab_id = ? ORDER BY seq DESC LIMIT 1`, tabID).Scan(&headSeq, &headChain)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read head: %w", err)
	}
	if uint64(headSeq) != expectedVersion {
		return nil, storage.ErrVersionConflict
	}

	sealed, err := storage.Seal(tabID, expectedVersion, headChain, records, s.now)
	if err != nil {
		return nil, err
	}
	for _, rec := range sealed {
		payload := rec.PayloadJSON
		if payload == nil {
			payload = []byte("null")
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tab_events (tab_id, seq, event_type, timestamp, payload_json, event_hash, prev_chain_hash, chain_hash)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.TabID, int64(rec.Seq), rec.Type, rec.Timestamp.UnixMilli(), payload, rec.Hash, rec.PrevHash, rec.ChainHash,
		); err != nil {
			if isConstraintError(err) || isBusyError(err) {
				return nil, fmt.Errorf("%w: %v", storage.ErrVersionConflict, err)
			}
			return nil, fmt.Errorf("append event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		if isBusyError(err) {
			return nil, fmt.Errorf("%w: %v", storage.ErrVersionConflict, err)
		}
		return nil, fmt.Errorf("commit: %w", err)
	}
	return sealed, nil
}

// ListTabs returns tab ids in lexical order.
func (s *Store) ListTabs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT DISTINCT tab_id FROM tab_events ORDER BY tab_id`)
	if err != nil {
		return nil, fmt.Errorf("list tabs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tab id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tab ids: %w", err)
	}
	return ids, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func isBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}
