// Package repository holds data access logic for rooms, bookings and
// users, plus the error types shared across repositories.  Sentinel
// values let handlers distinguish failure scenarios: a missing room
// maps to 404, a duplicate room number or a date overlap maps to 400
// with conflict details, and transient storage hiccups are eligible
// for a single local retry on idempotent reads.
package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned when a user lookup fails.
var ErrUserNotFound = errors.New("user not found")

// ErrRoomNumberExists is returned when creating or renumbering a room
// would collide with an existing room number.  Handlers translate it
// into an HTTP 400 conflict response.
var ErrRoomNumberExists = errors.New("room number already exists")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ConflictError is returned when a requested booking range overlaps an
// existing active booking on the same room.  It carries the first
// conflicting window so clients can suggest alternative dates.
type ConflictError struct {
	CheckIn  time.Time
	CheckOut time.Time
	Status   model.BookingStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room already booked from %s to %s",
		e.CheckIn.Format("2006-01-02"), e.CheckOut.Format("2006-01-02"))
}

// mysqlDuplicateEntry is the server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL unique constraint violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// Transient MySQL failures worth one immediate retry: deadlocks, lock
// wait timeouts and dropped connections.  Writes are never retried
// this way; a write retry must re-run its conflict check first.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1205 || me.Number == 1213
	}
	return false
}

// readWithRetry runs an idempotent read, retrying once when the first
// attempt fails with a transient storage error.
func readWithRetry(fn func() error) error {
	err := fn()
	if err != nil && isTransient(err) {
		err = fn()
	}
	return err
}
