package model

import (
	"fmt"
	"time"
)

// RoomStatus is a closed enumeration of the states a room can be in.
// Using a dedicated type instead of free-form strings means illegal
// states cannot be constructed by accident and transition checks can
// be exhaustive.
type RoomStatus string

const (
	RoomAvailable      RoomStatus = "AVAILABLE"
	RoomOccupied       RoomStatus = "OCCUPIED"
	RoomMaintenance    RoomStatus = "MAINTENANCE"
	RoomNeedsCleaning  RoomStatus = "NEEDS_CLEANING"
	RoomComingSoon     RoomStatus = "COMING_SOON"
	RoomWorkInProgress RoomStatus = "WORKING_IN_PROGRESS"
)

// Valid reports whether s is one of the known room statuses.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomNeedsCleaning, RoomComingSoon, RoomWorkInProgress:
		return true
	}
	return false
}

// ReconcilerManaged reports whether the status may be rewritten by the
// occupancy reconciler.  Rooms under maintenance, mid-work or still
// coming soon are never touched by the reconciliation pass.
func (s RoomStatus) ReconcilerManaged() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomNeedsCleaning:
		return true
	}
	return false
}

// Room represents a bookable hotel room.
//
// Fields:
//
//	ID                   – primary key identifier.
//	RoomNumber           – unique human-facing room number.
//	Type                 – room category (single, double, suite ...).
//	PriceCents           – nightly price in cents; zero only while COMING_SOON.
//	Capacity             – number of guests the room sleeps.
//	Status               – current lifecycle status.
//	Images               – image references (URLs).
//	Features             – feature tags shown to guests.
//	Description          – free-text description.
//	ExpectedAvailability – optional date a coming-soon room opens.
type Room struct {
	ID                   uint64     `json:"id"`
	RoomNumber           string     `json:"room_number"`
	Type                 string     `json:"type"`
	PriceCents           int64      `json:"price_cents"`
	Capacity             uint32     `json:"capacity"`
	Status               RoomStatus `json:"status"`
	Images               []string   `json:"images"`
	Features             []string   `json:"features"`
	Description          string     `json:"description,omitempty"`
	ExpectedAvailability *time.Time `json:"expected_availability,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Bookable reports whether guests may place bookings on the room.
// NEEDS_CLEANING rooms stay bookable: cleaning is a turnover task, not
// an availability gate for future dates.
func (r *Room) Bookable() bool {
	return r.Status == RoomAvailable || r.Status == RoomNeedsCleaning
}

// TransitionError reports an attempted lifecycle move that the state
// machine does not define.  Handlers translate it into HTTP 400.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// roomTransitions is the staff/admin-driven room state machine.  The
// occupancy reconciler performs its own derived writes and does not
// consult this table.
var roomTransitions = map[RoomStatus][]RoomStatus{
	RoomAvailable:      {RoomNeedsCleaning, RoomMaintenance},
	RoomNeedsCleaning:  {RoomAvailable},
	RoomMaintenance:    {RoomWorkInProgress},
	RoomWorkInProgress: {RoomAvailable},
	RoomComingSoon:     {RoomAvailable},
}

// CanTransition reports whether a staff/admin action may move a room
// from one status to another.
func (s RoomStatus) CanTransition(to RoomStatus) bool {
	for _, t := range roomTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a staff/admin status change.  A
// TransitionError is returned when the move is not defined; making a
// COMING_SOON room available additionally requires a positive price,
// which callers must have set on the room beforehand.
func (r *Room) Transition(to RoomStatus) error {
	if !r.Status.CanTransition(to) {
		return &TransitionError{Entity: "room", From: string(r.Status), To: string(to)}
	}
	if to == RoomAvailable && r.PriceCents <= 0 {
		return &TransitionError{Entity: "room", From: string(r.Status), To: string(to)}
	}
	r.Status = to
	return nil
}
