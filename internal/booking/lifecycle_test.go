package booking

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

func TestOccupiesRoomOnConfirm(t *testing.T) {
	today := day(2025, 3, 10)
	cases := []struct {
		name              string
		checkIn, checkOut time.Time
		want              bool
	}{
		{"stay in progress", day(2025, 3, 8), day(2025, 3, 12), true},
		{"stay starts today", day(2025, 3, 10), day(2025, 3, 12), true},
		{"stay ends today", day(2025, 3, 8), day(2025, 3, 10), false},
		{"future stay left for the reconciler", day(2025, 3, 11), day(2025, 3, 14), false},
		{"past stay", day(2025, 3, 1), day(2025, 3, 5), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OccupiesRoomOnConfirm(tc.checkIn, tc.checkOut, today); got != tc.want {
				t.Fatalf("OccupiesRoomOnConfirm(%v, %v, %v) = %v, want %v",
					tc.checkIn, tc.checkOut, today, got, tc.want)
			}
		})
	}
}

func TestCheckoutSendsRoomToCleaning(t *testing.T) {
	if RoomStatusAfterCheckout != model.RoomNeedsCleaning {
		t.Fatalf("checkout room status = %s, want NEEDS_CLEANING", RoomStatusAfterCheckout)
	}
	if RoomStatusAfterCheckout == model.RoomAvailable {
		t.Fatal("checkout must not return a room directly to AVAILABLE")
	}
	// The cleaning queue is still reconciler territory and still bookable
	// for future dates.
	if !RoomStatusAfterCheckout.ReconcilerManaged() {
		t.Fatal("post-checkout status must stay reconciler managed")
	}
	if !(&model.Room{Status: RoomStatusAfterCheckout}).Bookable() {
		t.Fatal("post-checkout room must remain bookable for future dates")
	}
}
