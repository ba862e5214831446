package httpapi

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/cafe/internal/services/tab/domain/tab"
)

type openTabRequest struct {
	TableNumber int    `json:"table_number"`
	Waiter      string `json:"waiter"`
}

type placeOrderRequest struct {
	Items []tab.OrderedItem `json:"items"`
}

type markServedRequest struct {
	MenuNumbers []int `json:"menu_numbers"`
}

type commandResponse struct {
	TabID   string            `json:"tab_id"`
	Version uint64            `json:"version"`
	Events  []json.RawMessage `json:"events"`
}

type tabResponse struct {
	TabID                   string            `json:"tab_id"`
	Version                 uint64            `json:"version"`
	TabOpen                 bool              `json:"tab_open"`
	Status                  string            `json:"status"`
	OutstandingDrinks       []tab.OrderedItem `json:"outstanding_drinks"`
	OutstandingFood         []tab.OrderedItem `json:"outstanding_food"`
	ServedItemsValue        float64           `json:"served_items_value"`
	ServedItemsValueDisplay string            `json:"served_items_value_display"`
	Locale                  string            `json:"locale"`
}

type eventEnvelope struct {
	Seq       uint64          `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	Hash      string          `json:"hash"`
	ChainHash string          `json:"chain_hash"`
	Event     json.RawMessage `json:"event"`
}

type eventsResponse struct {
	TabID  string          `json:"tab_id"`
	Events []eventEnvelope `json:"events"`
}

type listTabsResponse struct {
	TabIDs []string `json:"tab_ids"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func encodeEvents(events []tab.Event) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(events))
	for _, evt := range events {
		data, err := tab.MarshalEvent(evt)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func nonNilItems(items []tab.OrderedItem) []tab.OrderedItem {
	if items == nil {
		return []tab.OrderedItem{}
	}
	return items
}
