package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// StaffRoomHandler serves the housekeeping and maintenance workflow.
type StaffRoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewStaffRoomHandler(rooms *repository.RoomRepo) *StaffRoomHandler {
	return &StaffRoomHandler{Rooms: rooms}
}

// Tasks lists every room with outstanding staff work: dirty rooms,
// rooms awaiting or undergoing maintenance, and occupied rooms that
// will need turnover.
func (h *StaffRoomHandler) Tasks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.ListByStatus(ctx,
		model.RoomNeedsCleaning, model.RoomMaintenance, model.RoomWorkInProgress, model.RoomOccupied)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// CleaningQueue lists only the rooms waiting to be cleaned.
func (h *StaffRoomHandler) CleaningQueue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.ListByStatus(ctx, model.RoomNeedsCleaning)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// Clean marks a NEEDS_CLEANING room as AVAILABLE again.
func (h *StaffRoomHandler) Clean(c echo.Context) error {
	return transitionRoom(c, h.Rooms, model.RoomNeedsCleaning, model.RoomAvailable)
}

// StartWork moves a MAINTENANCE room to WORKING_IN_PROGRESS.
func (h *StaffRoomHandler) StartWork(c echo.Context) error {
	return transitionRoom(c, h.Rooms, model.RoomMaintenance, model.RoomWorkInProgress)
}

// CompleteWork returns a WORKING_IN_PROGRESS room to AVAILABLE.
func (h *StaffRoomHandler) CompleteWork(c echo.Context) error {
	return transitionRoom(c, h.Rooms, model.RoomWorkInProgress, model.RoomAvailable)
}
