package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/reconciler"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// AdminRoomHandler serves room inventory management: creation,
// updates, deletion, the coming-soon pipeline and the admin-driven
// lifecycle transitions.
type AdminRoomHandler struct {
	Rooms *repository.RoomRepo
	Rec   *reconciler.Reconciler
}

func NewAdminRoomHandler(rooms *repository.RoomRepo, rec *reconciler.Reconciler) *AdminRoomHandler {
	return &AdminRoomHandler{Rooms: rooms, Rec: rec}
}

type roomReq struct {
	RoomNumber           string   `json:"room_number" validate:"required"`
	Type                 string   `json:"type" validate:"required"`
	PriceCents           int64    `json:"price_cents" validate:"gte=0"`
	Capacity             uint32   `json:"capacity" validate:"required,gte=1"`
	Images               []string `json:"images"`
	Features             []string `json:"features"`
	Description          string   `json:"description"`
	ComingSoon           bool     `json:"coming_soon"`
	ExpectedAvailability string   `json:"expected_availability"`
}

func (req *roomReq) toRoom() (*model.Room, error) {
	rm := &model.Room{
		RoomNumber:  req.RoomNumber,
		Type:        req.Type,
		PriceCents:  req.PriceCents,
		Capacity:    req.Capacity,
		Images:      req.Images,
		Features:    req.Features,
		Description: req.Description,
		Status:      model.RoomAvailable,
	}
	if req.ComingSoon {
		rm.Status = model.RoomComingSoon
		if req.ExpectedAvailability != "" {
			t, err := parseDate(req.ExpectedAvailability)
			if err != nil {
				return nil, err
			}
			rm.ExpectedAvailability = &t
		}
	}
	return rm, nil
}

// Create adds a room to the inventory, either directly AVAILABLE or as
// a COMING_SOON entry with pricing deferred.  An AVAILABLE room must
// carry a positive price.
func (h *AdminRoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rm, err := req.toRoom()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expected_availability date"})
	}
	if rm.Status == model.RoomAvailable && rm.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be positive for an available room"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rooms.Create(ctx, rm); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"room": rm})
}

// Update rewrites a room's attributes.  Status is not touched here;
// lifecycle moves go through the dedicated transition endpoints.
func (h *AdminRoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if rm.Status != model.RoomComingSoon && req.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be positive"})
	}
	rm.RoomNumber = req.RoomNumber
	rm.Type = req.Type
	rm.PriceCents = req.PriceCents
	rm.Capacity = req.Capacity
	rm.Images = req.Images
	rm.Features = req.Features
	rm.Description = req.Description
	if req.ExpectedAvailability != "" {
		t, err := parseDate(req.ExpectedAvailability)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expected_availability date"})
		}
		rm.ExpectedAvailability = &t
	}

	if err := h.Rooms.Update(ctx, rm); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room": rm})
}

// Delete removes a room permanently.
func (h *AdminRoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the whole inventory for the admin dashboard.
func (h *AdminRoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// ComingSoon lists rooms still in the COMING_SOON pipeline.
func (h *AdminRoomHandler) ComingSoon(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.ListByStatus(ctx, model.RoomComingSoon)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

type makeAvailableReq struct {
	PriceCents int64 `json:"price_cents"`
}

// MakeAvailable opens a COMING_SOON room for booking.  A positive
// price is mandatory; the request fails and the room is left untouched
// otherwise.
func (h *AdminRoomHandler) MakeAvailable(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req makeAvailableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if rm.Status != model.RoomComingSoon {
		return writeError(c, &model.TransitionError{
			Entity: "room", From: string(rm.Status), To: string(model.RoomAvailable)})
	}
	rm.PriceCents = req.PriceCents
	rm.ExpectedAvailability = nil
	if err := rm.Transition(model.RoomAvailable); err != nil {
		return writeError(c, err)
	}
	if err := h.Rooms.Update(ctx, rm); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room": rm})
}

// SetCleaning sends an AVAILABLE room to the cleaning queue.
func (h *AdminRoomHandler) SetCleaning(c echo.Context) error {
	return transitionRoom(c, h.Rooms, model.RoomAvailable, model.RoomNeedsCleaning)
}

// SetMaintenance takes an AVAILABLE room out of service.
func (h *AdminRoomHandler) SetMaintenance(c echo.Context) error {
	return transitionRoom(c, h.Rooms, model.RoomAvailable, model.RoomMaintenance)
}

// UpdateStatuses runs a reconciliation pass on demand.
func (h *AdminRoomHandler) UpdateStatuses(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rec.ReconcileOnce(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reconciliation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room statuses updated"})
}

// transitionRoom applies one staff/admin lifecycle move.  The room
// must currently sit in the expected source status; several target
// statuses are reachable from more than one source, so the caller
// names its edge explicitly.  The write re-checks the current status
// so a concurrent transition loses with a 409 instead of clobbering.
func transitionRoom(c echo.Context, rooms *repository.RoomRepo, from, to model.RoomStatus) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rm, err := rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if rm.Status != from {
		return writeError(c, &model.TransitionError{Entity: "room", From: string(rm.Status), To: string(to)})
	}
	if err := rm.Transition(to); err != nil {
		return writeError(c, err)
	}
	n, err := rooms.UpdateStatusGuarded(ctx, []uint64{id}, []model.RoomStatus{from}, to)
	if err != nil {
		return writeError(c, err)
	}
	if n == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room status changed concurrently"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": id, "status": to, "updated_at": time.Now().UTC()})
}
