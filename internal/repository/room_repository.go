package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RoomRepo provides CRUD operations for the rooms table.  Image and
// feature lists are stored as JSON text columns; statuses are the
// closed model.RoomStatus enumeration.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning rooms and bookings.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomCols = `id, room_number, type, price_cents, capacity, status, images, features, description, expected_availability, created_at, updated_at`

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(s rowScanner) (*model.Room, error) {
	var (
		rm       model.Room
		status   string
		images   sql.NullString
		features sql.NullString
		desc     sql.NullString
		expected sql.NullTime
	)
	err := s.Scan(&rm.ID, &rm.RoomNumber, &rm.Type, &rm.PriceCents, &rm.Capacity,
		&status, &images, &features, &desc, &expected, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rm.Status = model.RoomStatus(status)
	if !rm.Status.Valid() {
		return nil, fmt.Errorf("room %d: unknown status %q", rm.ID, status)
	}
	rm.Images = decodeStringList(images)
	rm.Features = decodeStringList(features)
	if desc.Valid {
		rm.Description = desc.String
	}
	if expected.Valid {
		t := expected.Time
		rm.ExpectedAvailability = &t
	}
	return &rm, nil
}

func decodeStringList(ns sql.NullString) []string {
	out := []string{}
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return out
	}
	_ = json.Unmarshal([]byte(ns.String), &out)
	return out
}

func encodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Create inserts a new room and reads the row back to populate
// timestamps.  A duplicate room number maps to ErrRoomNumberExists.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (room_number, type, price_cents, capacity, status, images, features, description, expected_availability)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		rm.RoomNumber, rm.Type, rm.PriceCents, rm.Capacity, string(rm.Status),
		encodeStringList(rm.Images), encodeStringList(rm.Features),
		nullString(rm.Description), nullTime(rm.ExpectedAvailability))
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRoomNumberExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)

	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// GetByID retrieves a room by its ID.  ErrRoomNotFound is returned
// when no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE id = ?`
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// GetByIDForUpdateTx loads a room inside tx with a row lock.  The lock
// serializes concurrent booking attempts on the same room: the
// conflict check and the insert that follow run while the room row is
// held, so at most one of two overlapping attempts can win.
func (r *RoomRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE id = ? FOR UPDATE`
	rm, err := scanRoom(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// ListByStatus returns all rooms whose status is in the given set,
// ordered by room number.  An empty set returns all rooms.
func (r *RoomRepo) ListByStatus(ctx context.Context, statuses ...model.RoomStatus) ([]*model.Room, error) {
	q := `SELECT ` + roomCols + ` FROM rooms`
	args := make([]interface{}, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		q += ` WHERE status IN (` + strings.Join(placeholders, ",") + `)`
	}
	q += ` ORDER BY room_number`

	var out []*model.Room
	err := readWithRetry(func() error {
		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			rm, err := scanRoom(rows)
			if err != nil {
				return err
			}
			out = append(out, rm)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every room ordered by room number.
func (r *RoomRepo) ListAll(ctx context.Context) ([]*model.Room, error) {
	return r.ListByStatus(ctx)
}

// Update rewrites all mutable room fields.  Renumbering onto an
// existing room number maps to ErrRoomNumberExists; a missing room
// maps to ErrRoomNotFound.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms
	           SET room_number = ?, type = ?, price_cents = ?, capacity = ?, status = ?,
	               images = ?, features = ?, description = ?, expected_availability = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		rm.RoomNumber, rm.Type, rm.PriceCents, rm.Capacity, string(rm.Status),
		encodeStringList(rm.Images), encodeStringList(rm.Features),
		nullString(rm.Description), nullTime(rm.ExpectedAvailability), rm.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRoomNumberExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean a no-op update; confirm existence.
		if _, err := r.GetByID(ctx, rm.ID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus sets a room's status directly.
func (r *RoomRepo) UpdateStatus(ctx context.Context, id uint64, to model.RoomStatus) error {
	const q = `UPDATE rooms SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a room permanently.  There is no soft delete.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// StatusByID returns the current status of every room, keyed by room
// ID.  The reconciler uses this snapshot to plan its corrections.
func (r *RoomRepo) StatusByID(ctx context.Context) (map[uint64]model.RoomStatus, error) {
	out := make(map[uint64]model.RoomStatus)
	err := readWithRetry(func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT id, status FROM rooms`)
		if err != nil {
			return err
		}
		defer rows.Close()
		clear(out)
		for rows.Next() {
			var id uint64
			var status string
			if err := rows.Scan(&id, &status); err != nil {
				return err
			}
			out[id] = model.RoomStatus(status)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatusGuarded moves the given rooms to a new status but only
// when their current status is still in the expected set.  The guard
// makes reconciler writes safe against concurrent staff transitions
// and keeps the pass idempotent.  It returns the number of rows
// actually changed.
func (r *RoomRepo) UpdateStatusGuarded(ctx context.Context, ids []uint64, from []model.RoomStatus, to model.RoomStatus) (int64, error) {
	if len(ids) == 0 || len(from) == 0 {
		return 0, nil
	}
	idPh := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+len(from)+1)
	args = append(args, string(to))
	for i, id := range ids {
		idPh[i] = "?"
		args = append(args, id)
	}
	fromPh := make([]string, len(from))
	for i, s := range from {
		fromPh[i] = "?"
		args = append(args, string(s))
	}
	q := `UPDATE rooms SET status = ?, updated_at = CURRENT_TIMESTAMP
	      WHERE id IN (` + strings.Join(idPh, ",") + `)
	        AND status IN (` + strings.Join(fromPh, ",") + `)`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: strings.TrimSpace(s) != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
