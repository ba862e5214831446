package tab

// CommandError identifies which business precondition rejected a command.
// It carries no payload; compare with errors.Is or ==.
type CommandError int

const (
	// TabNotOpen rejects orders placed before the tab was opened.
	TabNotOpen CommandError = iota + 1
	// DrinksNotOutstanding rejects serving drinks that are not outstanding.
	DrinksNotOutstanding
	// FoodNotOutstanding rejects serving food that is not outstanding.
	FoodNotOutstanding
)

// Error implements error.
func (e CommandError) Error() string {
	switch e {
	case TabNotOpen:
		return "tab is not open"
	case DrinksNotOutstanding:
		return "drinks are not outstanding"
	case FoodNotOutstanding:
		return "food is not outstanding"
	default:
		return "unknown tab command error"
	}
}

// Code returns the machine-readable rejection code.
func (e CommandError) Code() string {
	switch e {
	case TabNotOpen:
		return "TAB_NOT_OPEN"
	case DrinksNotOutstanding:
		return "TAB_DRINKS_NOT_OUTSTANDING"
	case FoodNotOutstanding:
		return "TAB_FOOD_NOT_OUTSTANDING"
	default:
		return "TAB_UNKNOWN"
	}
}
