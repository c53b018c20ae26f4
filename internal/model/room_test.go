package model

import "testing"

func TestRoomStatusTransitions(t *testing.T) {
	legal := []struct{ from, to RoomStatus }{
		{RoomAvailable, RoomNeedsCleaning},
		{RoomAvailable, RoomMaintenance},
		{RoomNeedsCleaning, RoomAvailable},
		{RoomMaintenance, RoomWorkInProgress},
		{RoomWorkInProgress, RoomAvailable},
		{RoomComingSoon, RoomAvailable},
	}
	for _, tc := range legal {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to RoomStatus }{
		{RoomMaintenance, RoomAvailable}, // must pass through WORKING_IN_PROGRESS
		{RoomWorkInProgress, RoomMaintenance},
		{RoomComingSoon, RoomNeedsCleaning},
		{RoomNeedsCleaning, RoomMaintenance},
		{RoomOccupied, RoomAvailable}, // occupancy is reconciler-derived, not staff-driven
	}
	for _, tc := range illegal {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s must be rejected", tc.from, tc.to)
		}
	}
}

func TestComingSoonRequiresPrice(t *testing.T) {
	rm := &Room{Status: RoomComingSoon, PriceCents: 0}
	err := rm.Transition(RoomAvailable)
	if err == nil {
		t.Fatal("expected error making a priceless room available")
	}
	if rm.Status != RoomComingSoon {
		t.Fatalf("failed transition mutated status to %s", rm.Status)
	}

	rm.PriceCents = 150000
	if err := rm.Transition(RoomAvailable); err != nil {
		t.Fatalf("make available with price: %v", err)
	}
	if rm.Status != RoomAvailable {
		t.Fatalf("status = %s, want AVAILABLE", rm.Status)
	}
}

func TestRoomStatusValid(t *testing.T) {
	for _, s := range []RoomStatus{RoomAvailable, RoomOccupied, RoomMaintenance, RoomNeedsCleaning, RoomComingSoon, RoomWorkInProgress} {
		if !s.Valid() {
			t.Errorf("%s should be a valid status", s)
		}
	}
	for _, s := range []RoomStatus{"", "available", "BROKEN"} {
		if s.Valid() {
			t.Errorf("%q must not be a valid status", s)
		}
	}
}

func TestReconcilerManaged(t *testing.T) {
	managed := []RoomStatus{RoomAvailable, RoomOccupied, RoomNeedsCleaning}
	for _, s := range managed {
		if !s.ReconcilerManaged() {
			t.Errorf("%s should be reconciler managed", s)
		}
	}
	untouched := []RoomStatus{RoomMaintenance, RoomWorkInProgress, RoomComingSoon}
	for _, s := range untouched {
		if s.ReconcilerManaged() {
			t.Errorf("%s must never be touched by the reconciler", s)
		}
	}
}

func TestBookable(t *testing.T) {
	if !(&Room{Status: RoomAvailable}).Bookable() {
		t.Error("AVAILABLE room should be bookable")
	}
	if !(&Room{Status: RoomNeedsCleaning}).Bookable() {
		t.Error("NEEDS_CLEANING room should stay bookable")
	}
	for _, s := range []RoomStatus{RoomOccupied, RoomMaintenance, RoomWorkInProgress, RoomComingSoon} {
		if (&Room{Status: s}).Bookable() {
			t.Errorf("%s room should not be bookable", s)
		}
	}
}
