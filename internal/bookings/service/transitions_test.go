package service

import (
	"testing"

	"reservio/pkg/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.BookingPending, model.BookingConfirmed, true},
		{model.BookingPending, model.BookingRejected, true},
		{model.BookingPending, model.BookingCancelled, true},
		{model.BookingPending, model.BookingPaymentFailed, true},
		{model.BookingPending, model.BookingCompleted, false},
		{model.BookingConfirmed, model.BookingInProgress, true},
		{model.BookingConfirmed, model.BookingCompleted, true},
		{model.BookingConfirmed, model.BookingPending, false},
		{model.BookingConfirmed, model.BookingRefunded, false},
		{model.BookingInProgress, model.BookingCompleted, true},
		{model.BookingInProgress, model.BookingCancelled, true},
		{model.BookingInProgress, model.BookingConfirmed, false},
		{model.BookingPaymentFailed, model.BookingConfirmed, true},
		{model.BookingPaymentFailed, model.BookingCancelled, true},
		{model.BookingCompleted, model.BookingRefunded, false},
		{model.BookingCancelled, model.BookingPending, false},
		{model.BookingRejected, model.BookingConfirmed, false},
		{model.BookingRefunded, model.BookingConfirmed, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []string{
		model.BookingCompleted,
		model.BookingCancelled,
		model.BookingRejected,
		model.BookingRefunded,
	}
	for _, status := range terminal {
		if !IsTerminal(status) {
			t.Errorf("expected %s to be terminal", status)
		}
	}

	active := []string{
		model.BookingPending,
		model.BookingConfirmed,
		model.BookingInProgress,
		model.BookingPaymentFailed,
	}
	for _, status := range active {
		if IsTerminal(status) {
			t.Errorf("expected %s not to be terminal", status)
		}
	}
}
