package kafka

import (
	"testing"
)

func TestNewMessageHeaders(t *testing.T) {
	msg := NewMessage("bk-1", "booking.created", "bookings", map[string]string{"id": "bk-1"})

	if msg.Key != "bk-1" {
		t.Errorf("expected key bk-1, got %s", msg.Key)
	}
	if msg.EventType() != "booking.created" {
		t.Errorf("expected event type booking.created, got %s", msg.EventType())
	}
	if msg.EventID() == "" {
		t.Error("expected a generated event id")
	}
	if msg.Headers[HeaderSource] != "bookings" {
		t.Errorf("expected source bookings, got %s", msg.Headers[HeaderSource])
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("expected a timestamp header")
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected a non-zero timestamp")
	}
}

func TestNewMessageEventIDsAreUnique(t *testing.T) {
	a := NewMessage("k", "t", "s", nil)
	b := NewMessage("k", "t", "s", nil)
	if a.EventID() == b.EventID() {
		t.Error("expected distinct event ids per message")
	}
}

func TestDecodeValue(t *testing.T) {
	type payload struct {
		BookingID string `json:"booking_id"`
		Status    string `json:"status"`
	}

	msg := NewMessage("bk-1", "booking.status_changed", "bookings", payload{
		BookingID: "bk-1",
		Status:    "Confirmed",
	})

	var got payload
	if err := msg.DecodeValue(&got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BookingID != "bk-1" || got.Status != "Confirmed" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestDecodeValueRejectsGarbage(t *testing.T) {
	msg := Message{Value: []byte("not json")}
	var out map[string]any
	if err := msg.DecodeValue(&out); err == nil {
		t.Error("expected a decode error for a non-JSON payload")
	}
}
