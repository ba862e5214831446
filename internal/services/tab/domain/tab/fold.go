package tab

import "slices"

// Evolve applies one event to state.
//
// Events are trusted: a served menu number with no outstanding match is
// skipped rather than reported.
func Evolve(state *State, evt Event) {
	switch e := evt.(type) {
	case TabOpened:
		state.TabOpen = true
	case DrinksOrdered:
		state.OutstandingDrinks = append(slices.Clip(state.OutstandingDrinks), e.Items...)
	case FoodOrdered:
		state.OutstandingFood = append(slices.Clip(state.OutstandingFood), e.Items...)
	case DrinksServed:
		state.OutstandingDrinks = serve(state, state.OutstandingDrinks, e.MenuNumbers)
	case FoodServed:
		state.OutstandingFood = serve(state, state.OutstandingFood, e.MenuNumbers)
	}
}

// Fold is Evolve in value form: it returns the updated copy.
func Fold(state State, evt Event) State {
	Evolve(&state, evt)
	return state
}

// serve removes the first outstanding match for each menu number, adding its
// price to the served value, and returns the remaining items.
func serve(state *State, outstanding []OrderedItem, menuNumbers []int) []OrderedItem {
	if len(menuNumbers) == 0 {
		return outstanding
	}
	remaining := slices.Clone(outstanding)
	for _, number := range menuNumbers {
		idx := indexOfMenuNumber(remaining, number)
		if idx < 0 {
			continue
		}
		state.ServedItemsValue += remaining[idx].Price
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	return remaining
}
