package model

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	legal := []struct{ from, to BookingStatus }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCheckedIn},
		{BookingConfirmed, BookingCancelled},
		{BookingCheckedIn, BookingCheckedOut},
	}
	for _, tc := range legal {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to BookingStatus }{
		{BookingPending, BookingCheckedIn},
		{BookingCheckedIn, BookingCancelled},
		{BookingCheckedOut, BookingConfirmed}, // no moving backward
		{BookingCheckedOut, BookingCheckedIn},
		{BookingCancelled, BookingPending},
		{BookingCancelled, BookingConfirmed},
	}
	for _, tc := range illegal {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s must be rejected", tc.from, tc.to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled}
	for _, from := range []BookingStatus{BookingCheckedOut, BookingCancelled} {
		if !from.Terminal() {
			t.Errorf("%s should be terminal", from)
		}
		for _, to := range all {
			if from.CanTransition(to) {
				t.Errorf("terminal %s permits transition to %s", from, to)
			}
		}
	}
}

func TestBookingTransitionSetsStatus(t *testing.T) {
	b := &Booking{Status: BookingPending}
	if err := b.Transition(BookingConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if b.Status != BookingConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", b.Status)
	}

	err := b.Transition(BookingPending)
	if err == nil {
		t.Fatal("expected error moving CONFIRMED back to PENDING")
	}
	if b.Status != BookingConfirmed {
		t.Fatalf("failed transition mutated status to %s", b.Status)
	}
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be a valid status", s)
		}
	}
	for _, s := range []BookingStatus{"", "pending", "EXPIRED"} {
		if s.Valid() {
			t.Errorf("%q must not be a valid status", s)
		}
	}
}

func TestActiveStatuses(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCheckedIn} {
		if !s.Active() {
			t.Errorf("%s should claim the room", s)
		}
	}
	for _, s := range []BookingStatus{BookingCheckedOut, BookingCancelled} {
		if s.Active() {
			t.Errorf("%s should not claim the room", s)
		}
	}
}
