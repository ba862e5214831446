package tab

// OrderedItem is one line of an order.
//
// MenuNumber is the serving key within a tab. It is not unique: two entries
// with the same menu number are independent outstanding items.
type OrderedItem struct {
	MenuNumber  int     `json:"menu_number"`
	Description string  `json:"description"`
	IsDrink     bool    `json:"is_drink"`
	Price       float64 `json:"price"`
}
