package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// BookingHandler serves the guest-facing booking endpoints.
type BookingHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
}

func NewBookingHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Rooms: rooms, Bookings: bookings}
}

type discountReq struct {
	DiscountID uint64  `json:"discount_id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

type createBookingReq struct {
	RoomID        uint64        `json:"room_id" validate:"required"`
	CheckIn       string        `json:"check_in" validate:"required"`
	CheckOut      string        `json:"check_out" validate:"required"`
	RoomQuantity  uint32        `json:"room_quantity"`
	PaymentMethod string        `json:"payment_method" validate:"required,oneof=Online Cash"`
	Discounts     []discountReq `json:"discounts" validate:"dive"`
}

// Create places a new reservation.  The room row is locked, the date
// range is checked against active bookings and the insert happens in
// the same transaction, so two overlapping attempts on one room cannot
// both win.  The booking starts PENDING and does not occupy the room;
// occupancy follows from confirmation, check-in or the reconciler.
func (h *BookingHandler) Create(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
	}
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	if req.RoomQuantity == 0 {
		req.RoomQuantity = 1
	}
	method := model.PaymentMethod(req.PaymentMethod)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return writeError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := h.Rooms.GetByIDForUpdateTx(ctx, tx, req.RoomID)
	if err != nil {
		return writeError(c, err)
	}
	if room.Status == model.RoomComingSoon || room.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is not open for booking"})
	}

	if w, err := h.Bookings.FindConflictTx(ctx, tx, room.ID, checkIn, checkOut); err != nil {
		return writeError(c, err)
	} else if w != nil {
		return writeError(c, &repository.ConflictError{
			CheckIn:  w.CheckIn,
			CheckOut: w.CheckOut,
			Status:   w.Status,
		})
	}

	discounts := make([]booking.DiscountInput, 0, len(req.Discounts))
	for _, d := range req.Discounts {
		discounts = append(discounts, booking.DiscountInput{
			DiscountID: d.DiscountID,
			Name:       d.Name,
			Percentage: d.Percentage,
		})
	}
	quote := booking.Price(room.PriceCents, checkIn, checkOut, req.RoomQuantity, method, discounts)

	b := &model.Booking{
		UserID:              userID,
		RoomID:              room.ID,
		CheckIn:             checkIn,
		CheckOut:            checkOut,
		RoomQuantity:        req.RoomQuantity,
		Status:              model.BookingPending,
		PaymentMethod:       method,
		PaymentStatus:       quote.PaymentStatus,
		OriginalAmountCents: quote.OriginalAmountCents,
		DiscountTotalCents:  quote.DiscountTotalCents,
		FinalAmountCents:    quote.FinalAmountCents,
		AmountPaidCents:     quote.AmountPaidCents,
		Discounts:           quote.Discounts,
	}
	if err := h.Bookings.CreateTx(ctx, tx, b); err != nil {
		return writeError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return writeError(c, err)
	}
	committed = true

	detail, err := h.Bookings.GetDetail(ctx, b.ID)
	if err != nil {
		// The booking exists; fall back to the bare record.
		return c.JSON(http.StatusCreated, echo.Map{"booking": b, "nights": quote.Nights})
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": detail, "nights": quote.Nights})
}

// MyBookings lists the authenticated guest's reservations, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// Cancel lets a guest cancel their own PENDING or CONFIRMED booking.
// The room status is untouched; the reconciler frees the room on its
// next pass.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
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
	if b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := cancelBooking(ctx, h.Bookings, b); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled", "booking_id": b.ID})
}

// cancelBooking applies the CANCELLED transition from whichever
// non-terminal state the booking is in.  Shared with the admin cancel
// endpoint.
func cancelBooking(ctx context.Context, repo *repository.BookingRepo, b *model.Booking) error {
	from := b.Status
	if err := b.Transition(model.BookingCancelled); err != nil {
		return err
	}
	return repo.UpdateStatus(ctx, b.ID, from, model.BookingCancelled)
}

// today returns the current UTC day truncated to midnight.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
