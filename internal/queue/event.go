// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// BookingConfirmedEvent is published when an admin confirms a
// reservation.  It carries enough information for downstream
// consumers to log, notify or feed analytics without querying the
// primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64 `json:"booking_id"`
	UserID           uint64 `json:"user_id"`
	GuestName        string `json:"guest_name"`
	GuestEmail       string `json:"guest_email"`
	RoomID           uint64 `json:"room_id"`
	RoomNumber       string `json:"room_number"`
	RoomType         string `json:"room_type"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	RoomQuantity     uint32 `json:"room_quantity"`
	FinalAmountCents int64  `json:"final_amount_cents"`
	AmountPaidCents  int64  `json:"amount_paid_cents"`
	ConfirmedAt      string `json:"confirmed_at"`
}
