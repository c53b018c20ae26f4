// Package handler contains the HTTP handlers.  Handlers bind and
// validate input, run repository operations under a request-scoped
// timeout, and translate typed errors into JSON responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// dateLayout is the wire format for check-in/check-out dates.  Times
// are irrelevant to stays; dates are parsed at UTC midnight.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// currentUserID returns the authenticated user's ID from the JWT
// middleware, or 0 when the claim is missing.
func currentUserID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// writeError maps typed domain errors onto HTTP responses.  Booking
// overlaps get a structured payload carrying the conflicting window so
// clients can suggest alternative dates; everything else is a generic
// message plus status code.
func writeError(c echo.Context, err error) error {
	var conflict *repository.ConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": conflict.Error(),
			"conflicting_dates": echo.Map{
				"check_in":  conflict.CheckIn.Format(dateLayout),
				"check_out": conflict.CheckOut.Format(dateLayout),
			},
			"is_conflict": true,
		})
	}
	var transition *model.TransitionError
	if errors.As(err, &transition) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": transition.Error()})
	}
	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomNumberExists):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
