package model

import "time"

// BookingStatus is the closed enumeration of reservation states.
type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// Active reports whether the booking still claims the room for its
// date range.  Active bookings are the ones consulted by the overlap
// detector and the occupancy reconciler.
func (s BookingStatus) Active() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn:
		return true
	}
	return false
}

// Terminal reports whether no further transitions exist out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

// bookingTransitions encodes the reservation state machine:
//
//	PENDING -> CONFIRMED -> CHECKED_IN -> CHECKED_OUT
//	PENDING -> CANCELLED
//	CONFIRMED -> CANCELLED
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn: {BookingCheckedOut},
}

// CanTransition reports whether a booking may move from one status to
// another.  Terminal states have no outgoing edges, so a status never
// moves backward.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// PaymentMethod selects how the guest pays.  Cash bookings collect a
// 5% deposit at creation time; online bookings are paid in full.
type PaymentMethod string

const (
	PayOnline PaymentMethod = "Online"
	PayCash   PaymentMethod = "Cash"
)

// PaymentStatus tracks how much of the final amount has been settled.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// AppliedDiscount is the denormalized snapshot of a discount at the
// moment a booking was created.  Freezing name, percentage and the
// computed amount keeps historical invoices stable when discounts are
// later edited or deleted.
type AppliedDiscount struct {
	DiscountID  uint64  `json:"discount_id"`
	Name        string  `json:"name"`
	Percentage  float64 `json:"percentage"`
	AmountCents int64   `json:"amount_cents"`
}

// Booking records a guest's claim on a room for a half-open date range
// [CheckIn, CheckOut).  Bookings are append-only: they are cancelled
// or checked out, never deleted, so revenue history stays intact.
//
// Fields:
//
//	ID                  – primary key identifier.
//	UserID              – guest who owns the booking.
//	RoomID              – room being reserved.
//	CheckIn, CheckOut   – stay window; CheckOut is exclusive.
//	RoomQuantity        – count of identical rooms requested.
//	Status              – reservation lifecycle state.
//	PaymentMethod       – Online or Cash.
//	PaymentStatus       – UNPAID, PARTIAL or PAID.
//	OriginalAmountCents – pre-discount total including tax.
//	DiscountTotalCents  – sum of all applied discount amounts.
//	FinalAmountCents    – OriginalAmountCents minus DiscountTotalCents.
//	AmountPaidCents     – amount collected so far.
//	Discounts           – frozen discount snapshot.
type Booking struct {
	ID                  uint64            `json:"id"`
	UserID              uint64            `json:"user_id"`
	RoomID              uint64            `json:"room_id"`
	CheckIn             time.Time         `json:"check_in"`
	CheckOut            time.Time         `json:"check_out"`
	RoomQuantity        uint32            `json:"room_quantity"`
	Status              BookingStatus     `json:"status"`
	PaymentMethod       PaymentMethod     `json:"payment_method"`
	PaymentStatus       PaymentStatus     `json:"payment_status"`
	OriginalAmountCents int64             `json:"original_amount_cents"`
	DiscountTotalCents  int64             `json:"discount_total_cents"`
	FinalAmountCents    int64             `json:"final_amount_cents"`
	AmountPaidCents     int64             `json:"amount_paid_cents"`
	Discounts           []AppliedDiscount `json:"applied_discounts"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// Transition validates and applies a booking status change.
func (b *Booking) Transition(to BookingStatus) error {
	if !b.Status.CanTransition(to) {
		return &TransitionError{Entity: "booking", From: string(b.Status), To: string(to)}
	}
	b.Status = to
	return nil
}
