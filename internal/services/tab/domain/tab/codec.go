package tab

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEventType indicates a payload whose type is not a tab event.
var ErrUnknownEventType = errors.New("unknown tab event type")

// EncodePayload returns the event type and its JSON payload for storage.
func EncodePayload(evt Event) (EventType, []byte, error) {
	if evt == nil {
		return "", nil, errors.New("event is required")
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s payload: %w", evt.Type(), err)
	}
	return evt.Type(), payload, nil
}

// DecodePayload rebuilds an event from its stored type and payload.
func DecodePayload(eventType EventType, payload []byte) (Event, error) {
	switch eventType {
	case EventTypeTabOpened:
		return decodeAs[TabOpened](eventType, payload)
	case EventTypeDrinksOrdered:
		return decodeAs[DrinksOrdered](eventType, payload)
	case EventTypeFoodOrdered:
		return decodeAs[FoodOrdered](eventType, payload)
	case EventTypeDrinksServed:
		return decodeAs[DrinksServed](eventType, payload)
	case EventTypeFoodServed:
		return decodeAs[FoodServed](eventType, payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
}

func decodeAs[E Event](eventType EventType, payload []byte) (Event, error) {
	var evt E
	if len(payload) == 0 {
		return evt, nil
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", eventType, err)
	}
	return evt, nil
}

// MarshalEvent encodes an event as a tagged union keyed by "type", e.g.
// {"type":"drinks_served","menu_numbers":[1,2]}.
func MarshalEvent(evt Event) ([]byte, error) {
	eventType, payload, err := EncodePayload(evt)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	tag, err := json.Marshal(eventType)
	if err != nil {
		return nil, err
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

// UnmarshalEvent decodes the tagged-union form produced by MarshalEvent.
func UnmarshalEvent(data []byte) (Event, error) {
	var head struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode event type: %w", err)
	}
	return DecodePayload(head.Type, data)
}
