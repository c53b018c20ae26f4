package reconciler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

func occupiedSet(ids ...uint64) map[uint64]struct{} {
	s := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestPlanMarksBookedRoomsOccupied(t *testing.T) {
	statuses := map[uint64]model.RoomStatus{
		1: model.RoomAvailable,
		2: model.RoomNeedsCleaning,
		3: model.RoomOccupied,
	}
	plan := Plan(statuses, occupiedSet(1, 2, 3))

	require.Len(t, plan, 2)
	byRoom := map[uint64]Transition{}
	for _, tr := range plan {
		byRoom[tr.RoomID] = tr
	}
	require.Equal(t, model.RoomOccupied, byRoom[1].To)
	require.Equal(t, model.RoomOccupied, byRoom[2].To)
	// Room 3 is already OCCUPIED and booked: no correction.
	require.NotContains(t, byRoom, uint64(3))
}

func TestPlanFreesRoomsWithoutActiveBooking(t *testing.T) {
	statuses := map[uint64]model.RoomStatus{
		1: model.RoomOccupied,
		2: model.RoomAvailable,
	}
	plan := Plan(statuses, occupiedSet())

	require.Len(t, plan, 1)
	require.Equal(t, uint64(1), plan[0].RoomID)
	require.Equal(t, model.RoomOccupied, plan[0].From)
	require.Equal(t, model.RoomAvailable, plan[0].To)
}

func TestPlanNeverTouchesUnmanagedStatuses(t *testing.T) {
	statuses := map[uint64]model.RoomStatus{
		1: model.RoomMaintenance,
		2: model.RoomWorkInProgress,
		3: model.RoomComingSoon,
	}
	// Whether booked or not, these rooms are out of the reconciler's reach.
	require.Empty(t, Plan(statuses, occupiedSet(1, 2, 3)))
	require.Empty(t, Plan(statuses, occupiedSet()))
}

func TestPlanIsIdempotent(t *testing.T) {
	statuses := map[uint64]model.RoomStatus{
		1: model.RoomAvailable,
		2: model.RoomOccupied,
		3: model.RoomNeedsCleaning,
		4: model.RoomMaintenance,
	}
	occ := occupiedSet(1, 4)

	first := Plan(statuses, occ)
	require.NotEmpty(t, first)

	// Apply the plan, then plan again with unchanged bookings: nothing left.
	for _, tr := range first {
		statuses[tr.RoomID] = tr.To
	}
	require.Empty(t, Plan(statuses, occ))
}

func TestPlanEmptyInputs(t *testing.T) {
	require.Empty(t, Plan(nil, nil))
	require.Empty(t, Plan(map[uint64]model.RoomStatus{}, occupiedSet(1)))
}
