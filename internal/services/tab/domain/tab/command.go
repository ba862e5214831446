package tab

import "github.com/google/uuid"

// Command is a request to change a tab.
//
// The set of commands is closed: only types declared in this package satisfy
// the interface.
type Command interface {
	// TabID routes the command to its aggregate. Decision logic ignores it.
	TabID() uuid.UUID
	command()
}

// OpenTab opens a tab for a table.
type OpenTab struct {
	ID          uuid.UUID
	TableNumber int
	Waiter      string
}

// PlaceOrder orders items on an open tab. Drinks and food may be mixed.
type PlaceOrder struct {
	ID    uuid.UUID
	Items []OrderedItem
}

// MarkDrinksServed confirms outstanding drinks were served. Menu numbers may
// repeat; each occurrence consumes one outstanding drink.
type MarkDrinksServed struct {
	ID          uuid.UUID
	MenuNumbers []int
}

// MarkFoodServed confirms outstanding food was served.
type MarkFoodServed struct {
	ID          uuid.UUID
	MenuNumbers []int
}

func (c OpenTab) TabID() uuid.UUID          { return c.ID }
func (c PlaceOrder) TabID() uuid.UUID       { return c.ID }
func (c MarkDrinksServed) TabID() uuid.UUID { return c.ID }
func (c MarkFoodServed) TabID() uuid.UUID   { return c.ID }

func (OpenTab) command()          {}
func (PlaceOrder) command()       {}
func (MarkDrinksServed) command() {}
func (MarkFoodServed) command()   {}

// CommandName returns a stable label for logs and traces.
func CommandName(cmd Command) string {
	switch cmd.(type) {
	case OpenTab:
		return "open_tab"
	case PlaceOrder:
		return "place_order"
	case MarkDrinksServed:
		return "mark_drinks_served"
	case MarkFoodServed:
		return "mark_food_served"
	default:
		return "unknown"
	}
}
