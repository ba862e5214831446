package tab

// EventType names an event variant in its wire and storage form.
type EventType string

const (
	EventTypeTabOpened     EventType = "tab_opened"
	EventTypeDrinksOrdered EventType = "drinks_ordered"
	EventTypeFoodOrdered   EventType = "food_ordered"
	EventTypeDrinksServed  EventType = "drinks_served"
	EventTypeFoodServed    EventType = "food_served"
)

// EventTypes lists every event variant the tab folds.
func EventTypes() []EventType {
	return []EventType{
		EventTypeTabOpened,
		EventTypeDrinksOrdered,
		EventTypeFoodOrdered,
		EventTypeDrinksServed,
		EventTypeFoodServed,
	}
}

// Event is an accepted fact about a tab. The set of events is closed.
type Event interface {
	Type() EventType
	event()
}

// TabOpened records that a tab was opened for a table.
type TabOpened struct {
	TableNumber int    `json:"table_number"`
	Waiter      string `json:"waiter"`
}

// DrinksOrdered records one batch of drinks, in order-entry order.
type DrinksOrdered struct {
	Items []OrderedItem `json:"items"`
}

// FoodOrdered records one batch of food, in order-entry order.
type FoodOrdered struct {
	Items []OrderedItem `json:"items"`
}

// DrinksServed records the menu numbers of drinks that were served.
type DrinksServed struct {
	MenuNumbers []int `json:"menu_numbers"`
}

// FoodServed records the menu numbers of food that was served.
type FoodServed struct {
	MenuNumbers []int `json:"menu_numbers"`
}

func (TabOpened) Type() EventType     { return EventTypeTabOpened }
func (DrinksOrdered) Type() EventType { return EventTypeDrinksOrdered }
func (FoodOrdered) Type() EventType   { return EventTypeFoodOrdered }
func (DrinksServed) Type() EventType  { return EventTypeDrinksServed }
func (FoodServed) Type() EventType    { return EventTypeFoodServed }

func (TabOpened) event()     {}
func (DrinksOrdered) event() {}
func (FoodOrdered) event()   {}
func (DrinksServed) event()  {}
func (FoodServed) event()    {}
