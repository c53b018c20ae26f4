package booking

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{
			name:   "contained range conflicts",
			aStart: day(2025, 3, 10), aEnd: day(2025, 3, 15),
			bStart: day(2025, 3, 12), bEnd: day(2025, 3, 14),
			want: true,
		},
		{
			name:   "partial overlap at tail conflicts",
			aStart: day(2025, 3, 10), aEnd: day(2025, 3, 15),
			bStart: day(2025, 3, 14), bEnd: day(2025, 3, 20),
			want: true,
		},
		{
			name:   "identical ranges conflict",
			aStart: day(2025, 3, 10), aEnd: day(2025, 3, 15),
			bStart: day(2025, 3, 10), bEnd: day(2025, 3, 15),
			want: true,
		},
		{
			name:   "back-to-back turnover allowed",
			aStart: day(2025, 1, 1), aEnd: day(2025, 1, 3),
			bStart: day(2025, 1, 3), bEnd: day(2025, 1, 5),
			want: false,
		},
		{
			name:   "back-to-back turnover allowed reversed",
			aStart: day(2025, 1, 3), aEnd: day(2025, 1, 5),
			bStart: day(2025, 1, 1), bEnd: day(2025, 1, 3),
			want: false,
		},
		{
			name:   "disjoint ranges do not conflict",
			aStart: day(2025, 1, 1), aEnd: day(2025, 1, 3),
			bStart: day(2025, 2, 1), bEnd: day(2025, 2, 3),
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%v, %v, %v, %v) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
			// Overlap is symmetric in its two ranges.
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Fatalf("Overlaps not symmetric for %s", tc.name)
			}
		})
	}
}

func TestFindConflict(t *testing.T) {
	existing := []Window{
		{BookingID: 1, CheckIn: day(2025, 3, 1), CheckOut: day(2025, 3, 5), Status: model.BookingConfirmed},
		{BookingID: 2, CheckIn: day(2025, 3, 10), CheckOut: day(2025, 3, 15), Status: model.BookingPending},
	}

	if w := FindConflict(day(2025, 3, 5), day(2025, 3, 10), existing); w != nil {
		t.Fatalf("gap between bookings flagged as conflict: %+v", w)
	}
	w := FindConflict(day(2025, 3, 12), day(2025, 3, 14), existing)
	if w == nil {
		t.Fatal("expected conflict with booking 2")
	}
	if w.BookingID != 2 {
		t.Fatalf("conflicting booking = %d, want 2", w.BookingID)
	}
	if !w.CheckIn.Equal(day(2025, 3, 10)) || !w.CheckOut.Equal(day(2025, 3, 15)) {
		t.Fatalf("conflicting window = [%v, %v), want [2025-03-10, 2025-03-15)", w.CheckIn, w.CheckOut)
	}
}

func TestNights(t *testing.T) {
	cases := []struct {
		name    string
		in, out time.Time
		want    int64
	}{
		{"two full nights", day(2025, 3, 1), day(2025, 3, 3), 2},
		{"one night", day(2025, 3, 1), day(2025, 3, 2), 1},
		{"same day still bills one night", day(2025, 3, 1), day(2025, 3, 1), 1},
		{"partial day rounds up", day(2025, 3, 1), day(2025, 3, 2).Add(6 * time.Hour), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Nights(tc.in, tc.out); got != tc.want {
				t.Fatalf("Nights(%v, %v) = %d, want %d", tc.in, tc.out, got, tc.want)
			}
		})
	}
}
