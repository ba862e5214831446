// Package sqlite implements the tab event journal on SQLite.
//
// Each tab's history is a run of rows keyed by (tab_id, seq). Appends read
// the current head inside the write transaction, so a stale expected version
// is reported as storage.ErrVersionConflict rather than silently interleaved.
package sqlite
