package tab

import (
	"errors"
	"reflect"
	"testing"
)

func TestMarshalEventTaggedUnion(t *testing.T) {
	data, err := MarshalEvent(DrinksServed{MenuNumbers: []int{1, 2}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"menu_numbers":[1,2],"type":"drinks_served"}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}

func TestMarshalEventItemFields(t *testing.T) {
	data, err := MarshalEvent(FoodOrdered{Items: []OrderedItem{{MenuNumber: 7, Description: "Soup", Price: 4.5}}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"items":[{"menu_number":7,"description":"Soup","is_drink":false,"price":4.5}],"type":"food_ordered"}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}

func TestUnmarshalEventRestoresVariant(t *testing.T) {
	events := []Event{
		TabOpened{TableNumber: 42, Waiter: "Derek"},
		DrinksOrdered{Items: []OrderedItem{drink(1, 2.5)}},
		FoodOrdered{Items: []OrderedItem{food(3, 9)}},
		DrinksServed{MenuNumbers: []int{1}},
		FoodServed{MenuNumbers: []int{3, 3}},
	}
	for _, evt := range events {
		data, err := MarshalEvent(evt)
		if err != nil {
			t.Fatalf("marshal %s: %v", evt.Type(), err)
		}
		decoded, err := UnmarshalEvent(data)
		if err != nil {
			t.Fatalf("unmarshal %s: %v", evt.Type(), err)
		}
		if !reflect.DeepEqual(decoded, evt) {
			t.Fatalf("decoded = %#v, want %#v", decoded, evt)
		}
	}
}

func TestDecodePayloadUnknownType(t *testing.T) {
	_, err := DecodePayload(EventType("tab_closed"), []byte(`{}`))
	if !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("err = %v, want %v", err, ErrUnknownEventType)
	}
}

func TestDecodePayloadInvalidJSON(t *testing.T) {
	if _, err := DecodePayload(EventTypeTabOpened, []byte(`{"table_number":"x"}`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEncodePayloadRequiresEvent(t *testing.T) {
	if _, _, err := EncodePayload(nil); err == nil {
		t.Fatal("expected error for nil event")
	}
}

func TestCommandErrorCodes(t *testing.T) {
	tests := []struct {
		err  CommandError
		code string
	}{
		{TabNotOpen, "TAB_NOT_OPEN"},
		{DrinksNotOutstanding, "TAB_DRINKS_NOT_OUTSTANDING"},
		{FoodNotOutstanding, "TAB_FOOD_NOT_OUTSTANDING"},
	}
	for _, tc := range tests {
		if got := tc.err.Code(); got != tc.code {
			t.Fatalf("code = %s, want %s", got, tc.code)
		}
		if tc.err.Error() == "" {
			t.Fatalf("%s has empty message", tc.code)
		}
	}
}
