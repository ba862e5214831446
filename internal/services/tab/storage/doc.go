// Package storage defines the tab event journal: the record envelope the
// journal persists, the store contract the engine appends through, and the
// hash chain that makes each tab's history tamper-evident.
//
// Implementations live in subpackages: memory for tests and single-process
// use, sqlite for durable storage.
package storage
