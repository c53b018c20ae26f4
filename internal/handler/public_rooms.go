package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/reconciler"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// PublicRoomHandler serves the unauthenticated room listings.  Both
// reads trigger a reconciliation pass first so guests see occupancy
// derived from current bookings, not whatever staff last wrote.
type PublicRoomHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
	Rec      *reconciler.Reconciler
}

func NewPublicRoomHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo, rec *reconciler.Reconciler) *PublicRoomHandler {
	return &PublicRoomHandler{Rooms: rooms, Bookings: bookings, Rec: rec}
}

// Available lists rooms guests can book right now.  NEEDS_CLEANING
// rooms are included: turnover cleaning does not block future-dated
// bookings.
func (h *PublicRoomHandler) Available(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	h.Rec.Refresh(ctx)

	rooms, err := h.Rooms.ListByStatus(ctx, model.RoomAvailable, model.RoomNeedsCleaning)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// roomWithBookings is one row of the all-rooms listing: the room, its
// upcoming reservation windows and whether it can be booked at all.
type roomWithBookings struct {
	*model.Room
	ActiveBookings []booking.Window `json:"active_bookings"`
	Bookable       bool             `json:"bookable"`
}

// AllWithBookingInfo lists every room with its upcoming CONFIRMED and
// CHECKED_IN windows so clients can render a calendar and steer guests
// to free dates.
func (h *PublicRoomHandler) AllWithBookingInfo(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	h.Rec.Refresh(ctx)

	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	windows, err := h.Bookings.ActiveWindows(ctx, today())
	if err != nil {
		return writeError(c, err)
	}

	out := make([]roomWithBookings, 0, len(rooms))
	for _, rm := range rooms {
		ws := windows[rm.ID]
		if ws == nil {
			ws = []booking.Window{}
		}
		out = append(out, roomWithBookings{
			Room:           rm,
			ActiveBookings: ws,
			Bookable:       rm.Bookable(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}
