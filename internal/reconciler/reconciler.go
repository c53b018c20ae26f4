// Package reconciler derives room occupancy from active bookings.  A
// room the staff never touched can still become occupied when a
// confirmed stay window reaches today, and a room left OCCUPIED with
// no active booking must fall back to AVAILABLE.  One reconciliation
// function serves three triggers: a fixed-interval background loop,
// the status-sensitive room listings, and a manual admin endpoint.
package reconciler

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// Transition is one planned status correction.
type Transition struct {
	RoomID uint64
	From   model.RoomStatus
	To     model.RoomStatus
}

// Plan computes the corrections needed to make room statuses agree
// with the occupied set.  Rooms in AVAILABLE or NEEDS_CLEANING that
// are occupied move to OCCUPIED; rooms in OCCUPIED that are not move
// back to AVAILABLE.  MAINTENANCE, WORKING_IN_PROGRESS and COMING_SOON
// are never touched.  Pure function; running it twice against the same
// inputs yields the same plan, and applying a plan empties the next one.
func Plan(statuses map[uint64]model.RoomStatus, occupied map[uint64]struct{}) []Transition {
	var out []Transition
	for id, status := range statuses {
		if !status.ReconcilerManaged() {
			continue
		}
		_, occ := occupied[id]
		switch {
		case occ && (status == model.RoomAvailable || status == model.RoomNeedsCleaning):
			out = append(out, Transition{RoomID: id, From: status, To: model.RoomOccupied})
		case !occ && status == model.RoomOccupied:
			out = append(out, Transition{RoomID: id, From: status, To: model.RoomAvailable})
		}
	}
	return out
}

// Reconciler runs the occupancy correction pass.
type Reconciler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
	Interval time.Duration // background pass period
	Timeout  time.Duration // per-pass deadline so a stuck pass cannot pile up
}

// New returns a Reconciler with the given dependencies.  Interval and
// Timeout fall back to 5 minutes and 30 seconds when unset.
func New(rooms *repository.RoomRepo, bookings *repository.BookingRepo, interval, timeout time.Duration) *Reconciler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Reconciler{Rooms: rooms, Bookings: bookings, Interval: interval, Timeout: timeout}
}

// ReconcileOnce performs a single pass: load the active-booking room
// set for today's one-day lookahead band, plan the corrections and
// apply them with status guards.  Guarded writes keep the pass
// idempotent and safe against concurrent staff transitions.
func (r *Reconciler) ReconcileOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	today := midnight(time.Now().UTC())
	tomorrow := today.AddDate(0, 0, 1)

	occupied, err := r.Bookings.OccupiedRoomIDs(ctx, today, tomorrow)
	if err != nil {
		return err
	}
	statuses, err := r.Rooms.StatusByID(ctx)
	if err != nil {
		return err
	}

	plan := Plan(statuses, occupied)
	var toOccupied, toAvailable []uint64
	for _, t := range plan {
		if t.To == model.RoomOccupied {
			toOccupied = append(toOccupied, t.RoomID)
		} else {
			toAvailable = append(toAvailable, t.RoomID)
		}
	}
	if _, err := r.Rooms.UpdateStatusGuarded(ctx, toOccupied,
		[]model.RoomStatus{model.RoomAvailable, model.RoomNeedsCleaning}, model.RoomOccupied); err != nil {
		return err
	}
	if _, err := r.Rooms.UpdateStatusGuarded(ctx, toAvailable,
		[]model.RoomStatus{model.RoomOccupied}, model.RoomAvailable); err != nil {
		return err
	}
	return nil
}

// Refresh runs a pass and swallows any error after logging it.  Read
// paths call this before listing rooms: a failed pass must not block
// the request, callers just proceed with possibly stale statuses.
func (r *Reconciler) Refresh(ctx context.Context) {
	if err := r.ReconcileOnce(ctx); err != nil {
		log.Printf("reconciler: pass failed: %v", err)
	}
}

// Run executes an initial pass and then repeats on the configured
// interval until ctx is cancelled.  Errors are logged and never stop
// the loop.
func (r *Reconciler) Run(ctx context.Context) {
	r.Refresh(ctx)
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
