// Package booking holds the pure reservation logic: half-open date
// range overlap detection and price computation.  Nothing in this
// package touches the database; the repository layer runs the same
// overlap predicate in SQL and handlers combine both inside a
// transaction.
package booking

import (
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// Window is an active reservation's claim on a room, reduced to what
// conflict checks and availability listings need.
type Window struct {
	BookingID uint64              `json:"booking_id,omitempty"`
	CheckIn   time.Time           `json:"check_in"`
	CheckOut  time.Time           `json:"check_out"`
	Status    model.BookingStatus `json:"status"`
}

// Overlaps reports whether two half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect.  The strict comparisons make back-to-back
// stays legal: a checkout on Jan 3 does not collide with a check-in
// on Jan 3.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict returns the first window that overlaps the candidate
// range, or nil when the range is free.  Callers must have validated
// checkOut > checkIn already; the slice should contain only windows
// of active bookings (PENDING, CONFIRMED, CHECKED_IN).
func FindConflict(checkIn, checkOut time.Time, existing []Window) *Window {
	for i := range existing {
		w := &existing[i]
		if Overlaps(w.CheckIn, w.CheckOut, checkIn, checkOut) {
			return w
		}
	}
	return nil
}

// Nights returns the billable night count for a stay: the day span
// rounded up, never less than one.
func Nights(checkIn, checkOut time.Time) int64 {
	d := checkOut.Sub(checkIn)
	if d < 0 {
		d = -d
	}
	nights := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}
