package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/queue"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	publisher "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// AdminBookingHandler serves the admin/staff booking lifecycle
// endpoints: confirmation, check-in, check-out, cancellation, the
// booking listings and the revenue reports.
type AdminBookingHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
}

func NewAdminBookingHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo) *AdminBookingHandler {
	return &AdminBookingHandler{Rooms: rooms, Bookings: bookings}
}

// Pending lists bookings awaiting confirmation.
func (h *AdminBookingHandler) Pending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Bookings.ListByStatus(ctx, model.BookingPending)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// All lists every booking, newest first.
func (h *AdminBookingHandler) All(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// Confirm moves a PENDING booking to CONFIRMED.  When today already
// falls inside the stay window the room is marked OCCUPIED right away;
// a future stay leaves the room alone and the reconciler picks it up
// when the window arrives.  A booking.confirmed event is published
// best-effort after the transition.
func (h *AdminBookingHandler) Confirm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	from := b.Status
	if err := b.Transition(model.BookingConfirmed); err != nil {
		return writeError(c, err)
	}
	if err := h.Bookings.UpdateStatus(ctx, b.ID, from, model.BookingConfirmed); err != nil {
		return writeError(c, err)
	}

	if booking.OccupiesRoomOnConfirm(b.CheckIn, b.CheckOut, today()) {
		if _, err := h.Rooms.UpdateStatusGuarded(ctx, []uint64{b.RoomID},
			[]model.RoomStatus{model.RoomAvailable, model.RoomNeedsCleaning}, model.RoomOccupied); err != nil {
			log.Printf("confirm booking %d: room %d occupancy update failed: %v", b.ID, b.RoomID, err)
		}
	}

	h.publishConfirmed(ctx, b)

	return c.JSON(http.StatusOK, echo.Map{"message": "booking confirmed", "booking_id": b.ID})
}

// publishConfirmed emits the booking.confirmed event.  Failures are
// logged and dropped; confirmation never fails because the broker is
// down.
func (h *AdminBookingHandler) publishConfirmed(ctx context.Context, b *model.Booking) {
	detail, err := h.Bookings.GetDetail(ctx, b.ID)
	if err != nil {
		log.Printf("confirm booking %d: load detail for event failed: %v", b.ID, err)
		return
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:        b.ID,
		UserID:           b.UserID,
		GuestName:        detail.UserName,
		GuestEmail:       detail.UserEmail,
		RoomID:           b.RoomID,
		RoomNumber:       detail.RoomNumber,
		RoomType:         detail.RoomType,
		CheckIn:          b.CheckIn.Format(dateLayout),
		CheckOut:         b.CheckOut.Format(dateLayout),
		RoomQuantity:     b.RoomQuantity,
		FinalAmountCents: b.FinalAmountCents,
		AmountPaidCents:  b.AmountPaidCents,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("confirm booking %d: publish event failed: %v", b.ID, err)
	}
}

// CheckIn moves a CONFIRMED booking to CHECKED_IN and forces the room
// to OCCUPIED.
func (h *AdminBookingHandler) CheckIn(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	from := b.Status
	if err := b.Transition(model.BookingCheckedIn); err != nil {
		return writeError(c, err)
	}
	if err := h.Bookings.UpdateStatus(ctx, b.ID, from, model.BookingCheckedIn); err != nil {
		return writeError(c, err)
	}
	if err := h.Rooms.UpdateStatus(ctx, b.RoomID, model.RoomOccupied); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest checked in", "booking_id": b.ID})
}

// CheckOut moves a CHECKED_IN booking to CHECKED_OUT, settles the
// outstanding balance and sends the room to NEEDS_CLEANING.  Cleaning
// is a mandatory staff action: checkout never makes a room AVAILABLE
// directly.
func (h *AdminBookingHandler) CheckOut(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	from := b.Status
	if err := b.Transition(model.BookingCheckedOut); err != nil {
		return writeError(c, err)
	}
	if err := h.Bookings.UpdateStatus(ctx, b.ID, from, model.BookingCheckedOut); err != nil {
		return writeError(c, err)
	}
	if err := h.Bookings.SetPaymentStatus(ctx, b.ID, model.PaymentPaid); err != nil {
		return writeError(c, err)
	}
	if err := h.Rooms.UpdateStatus(ctx, b.RoomID, booking.RoomStatusAfterCheckout); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest checked out", "booking_id": b.ID})
}

// Cancel cancels a PENDING or CONFIRMED booking on behalf of the
// hotel.
func (h *AdminBookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if err := cancelBooking(ctx, h.Bookings, b); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled", "booking_id": b.ID})
}

// MonthlyRevenue reports confirmed booking revenue grouped by month.
func (h *AdminBookingHandler) MonthlyRevenue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	buckets, err := h.Bookings.MonthlyRevenue(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"revenue": buckets})
}

// AnnualRevenue reports confirmed booking revenue grouped by year.
func (h *AdminBookingHandler) AnnualRevenue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	buckets, err := h.Bookings.AnnualRevenue(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"revenue": buckets})
}

// DetailedRevenue reports the full confirmed booking history with the
// summed billed and collected totals.
func (h *AdminBookingHandler) DetailedRevenue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	detail, err := h.Bookings.DetailedRevenue(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}
