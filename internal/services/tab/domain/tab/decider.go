package tab

import "slices"

// Decide returns the events a command produces against current state.
//
// A rejection returns no events. Commands this revision does not handle
// succeed with no events.
func Decide(state State, cmd Command) ([]Event, error) {
	switch c := cmd.(type) {
	case OpenTab:
		// Re-opening an open tab is accepted and records another TabOpened.
		return []Event{TabOpened{TableNumber: c.TableNumber, Waiter: c.Waiter}}, nil

	case PlaceOrder:
		if !state.TabOpen {
			return nil, TabNotOpen
		}
		food, drinks := partitionItems(c.Items)
		var events []Event
		if len(food) > 0 {
			events = append(events, FoodOrdered{Items: food})
		}
		if len(drinks) > 0 {
			events = append(events, DrinksOrdered{Items: drinks})
		}
		return events, nil

	case MarkDrinksServed:
		if !allOutstanding(state.OutstandingDrinks, c.MenuNumbers) {
			return nil, DrinksNotOutstanding
		}
		return []Event{DrinksServed{MenuNumbers: slices.Clone(c.MenuNumbers)}}, nil

	case MarkFoodServed:
		if !allOutstanding(state.OutstandingFood, c.MenuNumbers) {
			return nil, FoodNotOutstanding
		}
		return []Event{FoodServed{MenuNumbers: slices.Clone(c.MenuNumbers)}}, nil
	}
	return nil, nil
}

// partitionItems splits items by IsDrink, keeping input order in each part.
func partitionItems(items []OrderedItem) (food, drinks []OrderedItem) {
	for _, item := range items {
		if item.IsDrink {
			drinks = append(drinks, item)
		} else {
			food = append(food, item)
		}
	}
	return food, drinks
}
