// Package engine runs tab commands against the event journal.
//
// Execute is the caller loop around the pure tab aggregate: load the history,
// replay it, decide, and append the emitted events at the version the
// decision was based on. A concurrent append surfaces as a version conflict
// and the whole cycle is retried against the fresh history.
package engine
