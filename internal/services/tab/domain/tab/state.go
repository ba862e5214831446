package tab

// State is the tab folded from its events.
//
// Decide only reads it. Evolve replaces the outstanding slices instead of
// writing through them, so a State value handed to Decide is never changed
// behind the caller's back.
type State struct {
	// TabOpen turns true on the first TabOpened and never reverts.
	TabOpen bool
	// OutstandingDrinks holds ordered drinks not yet matched by a serve.
	OutstandingDrinks []OrderedItem
	// OutstandingFood holds ordered food not yet matched by a serve.
	OutstandingFood []OrderedItem
	// ServedItemsValue is the sum of prices of every served item.
	ServedItemsValue float64
}
