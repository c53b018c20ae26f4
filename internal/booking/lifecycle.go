package booking

import (
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RoomStatusAfterCheckout is the room status applied when a guest
// checks out.  Cleaning is a mandatory turnover step, so checkout
// never sends a room straight back to AVAILABLE.
const RoomStatusAfterCheckout = model.RoomNeedsCleaning

// OccupiesRoomOnConfirm reports whether confirming a booking marks its
// room OCCUPIED immediately.  That happens only when today already
// falls inside the stay window [checkIn, checkOut); a future-dated
// stay leaves the room untouched and the occupancy reconciler picks it
// up once the window opens.
func OccupiesRoomOnConfirm(checkIn, checkOut, today time.Time) bool {
	return Overlaps(checkIn, checkOut, today, today.AddDate(0, 0, 1))
}
