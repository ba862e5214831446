// Package tab implements the restaurant tab aggregate.
//
// A tab is opened for a table, accumulates drink and food orders, and tracks
// which ordered items are still outstanding until they are marked served.
// Decide validates commands against folded state and returns the resulting
// events; Evolve folds those events back into state. Both are pure: the same
// history always yields the same state, live or replayed.
//
// Prices are float64. Served totals are approximate and must not be used for
// billing arithmetic that needs exact decimal results.
package tab
