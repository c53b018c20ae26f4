package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/booking"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// BookingRepo provides persistence for bookings and their frozen
// discount snapshots.  Bookings are append-only: rows are created once
// and afterwards only move through status transitions, so revenue
// history survives cancellations and discount edits.  All timestamps
// are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for handler-scoped transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingCols = `id, user_id, room_id, check_in, check_out, room_quantity, status,
	payment_method, payment_status, original_amount_cents, discount_total_cents,
	final_amount_cents, amount_paid_cents, created_at, updated_at`

func scanBooking(s rowScanner) (*model.Booking, error) {
	var (
		b         model.Booking
		status    string
		method    string
		payStatus string
	)
	err := s.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.RoomQuantity,
		&status, &method, &payStatus, &b.OriginalAmountCents, &b.DiscountTotalCents,
		&b.FinalAmountCents, &b.AmountPaidCents, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	if !b.Status.Valid() {
		return nil, fmt.Errorf("booking %d: unknown status %q", b.ID, status)
	}
	b.PaymentMethod = model.PaymentMethod(method)
	b.PaymentStatus = model.PaymentStatus(payStatus)
	return &b, nil
}

// activeStatusList builds the SQL literal set of statuses that claim a
// room's dates.  Kept in one place so the overlap query and the
// reconciler window query cannot drift apart.
func activeStatusList() (string, []interface{}) {
	statuses := []model.BookingStatus{model.BookingPending, model.BookingConfirmed, model.BookingCheckedIn}
	ph := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, s := range statuses {
		ph[i] = "?"
		args[i] = string(s)
	}
	return strings.Join(ph, ","), args
}

// FindConflictTx returns the first active booking on the room whose
// half-open range overlaps [checkIn, checkOut), or nil when the range
// is free.  The comparison is strict on both ends so back-to-back
// turnovers are allowed.  Callers run this inside the same transaction
// that holds the room row lock and performs the insert.
func (r *BookingRepo) FindConflictTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut time.Time) (*booking.Window, error) {
	ph, args := activeStatusList()
	q := `SELECT id, check_in, check_out, status FROM bookings
	      WHERE room_id = ? AND status IN (` + ph + `)
	        AND check_in < ? AND check_out > ?
	      ORDER BY check_in LIMIT 1`
	qargs := append([]interface{}{roomID}, args...)
	qargs = append(qargs, checkOut, checkIn)

	var w booking.Window
	var status string
	err := tx.QueryRowContext(ctx, q, qargs...).Scan(&w.BookingID, &w.CheckIn, &w.CheckOut, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	w.Status = model.BookingStatus(status)
	return &w, nil
}

// CreateTx inserts a booking and its discount snapshot within the
// provided transaction, then reads the row back to populate generated
// fields.  The caller commits or rolls back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, room_id, check_in, check_out, room_quantity,
	             status, payment_method, payment_status, original_amount_cents,
	             discount_total_cents, final_amount_cents, amount_paid_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.UserID, b.RoomID, b.CheckIn.UTC(), b.CheckOut.UTC(), b.RoomQuantity,
		string(b.Status), string(b.PaymentMethod), string(b.PaymentStatus),
		b.OriginalAmountCents, b.DiscountTotalCents, b.FinalAmountCents, b.AmountPaidCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	if err := r.createDiscountsBulkTx(ctx, tx, b.ID, b.Discounts); err != nil {
		return err
	}

	const sel = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	got, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
	if err != nil {
		return err
	}
	got.Discounts = b.Discounts
	*b = *got
	return nil
}

// createDiscountsBulkTx inserts the frozen discount snapshot rows in a
// single statement.  An empty snapshot is a no-op.
func (r *BookingRepo) createDiscountsBulkTx(ctx context.Context, tx *sql.Tx, bookingID uint64, discounts []model.AppliedDiscount) error {
	if len(discounts) == 0 {
		return nil
	}
	q := `INSERT INTO booking_discounts (booking_id, discount_id, name, percentage, amount_cents) VALUES `
	args := make([]interface{}, 0, len(discounts)*5)
	for i, d := range discounts {
		if i > 0 {
			q += ","
		}
		q += "(?, ?, ?, ?, ?)"
		args = append(args, bookingID, d.DiscountID, d.Name, d.Percentage, d.AmountCents)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// GetByID loads a booking and its discount snapshot.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Discounts, err = r.discountsFor(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepo) discountsFor(ctx context.Context, bookingID uint64) ([]model.AppliedDiscount, error) {
	const q = `SELECT discount_id, name, percentage, amount_cents
	           FROM booking_discounts WHERE booking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AppliedDiscount{}
	for rows.Next() {
		var d model.AppliedDiscount
		if err := rows.Scan(&d.DiscountID, &d.Name, &d.Percentage, &d.AmountCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// BookingDetail joins a booking with the room and guest it references,
// for listings shown to guests and admins.
type BookingDetail struct {
	model.Booking
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
}

const detailQuery = `SELECT b.id, b.user_id, b.room_id, b.check_in, b.check_out, b.room_quantity,
	b.status, b.payment_method, b.payment_status, b.original_amount_cents,
	b.discount_total_cents, b.final_amount_cents, b.amount_paid_cents,
	b.created_at, b.updated_at, r.room_number, r.type, u.name, u.email
	FROM bookings b
	JOIN rooms r ON r.id = b.room_id
	JOIN users u ON u.id = b.user_id`

func (r *BookingRepo) listDetails(ctx context.Context, where string, args ...interface{}) ([]BookingDetail, error) {
	q := detailQuery
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY b.created_at DESC"

	var out []BookingDetail
	err := readWithRetry(func() error {
		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var (
				d         BookingDetail
				status    string
				method    string
				payStatus string
			)
			if err := rows.Scan(&d.ID, &d.UserID, &d.RoomID, &d.CheckIn, &d.CheckOut,
				&d.RoomQuantity, &status, &method, &payStatus, &d.OriginalAmountCents,
				&d.DiscountTotalCents, &d.FinalAmountCents, &d.AmountPaidCents,
				&d.CreatedAt, &d.UpdatedAt, &d.RoomNumber, &d.RoomType, &d.UserName, &d.UserEmail); err != nil {
				return err
			}
			d.Status = model.BookingStatus(status)
			d.PaymentMethod = model.PaymentMethod(method)
			d.PaymentStatus = model.PaymentStatus(payStatus)
			out = append(out, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	// Attach discount snapshots; listings are small enough to load per booking.
	for i := range out {
		ds, err := r.discountsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Discounts = ds
	}
	if out == nil {
		out = []BookingDetail{}
	}
	return out, nil
}

// GetDetail returns one booking joined with its room and guest.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	details, err := r.listDetails(ctx, "b.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrBookingNotFound
	}
	return &details[0], nil
}

// ListByUser returns all bookings created by the given guest, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, "b.user_id = ?", userID)
}

// ListByStatus returns all bookings in the given status, newest first.
func (r *BookingRepo) ListByStatus(ctx context.Context, status model.BookingStatus) ([]BookingDetail, error) {
	return r.listDetails(ctx, "b.status = ?", string(status))
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	return r.listDetails(ctx, "")
}

// UpdateStatus transitions a booking's status.  The state machine is
// enforced in the handler before calling; the WHERE clause re-checks
// the expected current status so a racing transition loses cleanly.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), id, string(from))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// SetPaymentStatus updates the payment state, used at checkout when
// the outstanding balance is settled.
func (r *BookingRepo) SetPaymentStatus(ctx context.Context, id uint64, to model.PaymentStatus) error {
	const q = `UPDATE bookings SET payment_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, string(to), id)
	return err
}

// OccupiedRoomIDs returns the set of rooms claimed "as of today" by a
// CONFIRMED or CHECKED_IN booking.  The window is the one-day
// lookahead band check_in <= tomorrow AND check_out > today, preserved
// exactly from the previous system for behavioral compatibility.
func (r *BookingRepo) OccupiedRoomIDs(ctx context.Context, today, tomorrow time.Time) (map[uint64]struct{}, error) {
	const q = `SELECT DISTINCT room_id FROM bookings
	           WHERE status IN (?, ?) AND check_in <= ? AND check_out > ?`
	out := make(map[uint64]struct{})
	err := readWithRetry(func() error {
		rows, err := r.db.QueryContext(ctx, q,
			string(model.BookingConfirmed), string(model.BookingCheckedIn),
			tomorrow.UTC(), today.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		clear(out)
		for rows.Next() {
			var id uint64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			out[id] = struct{}{}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveWindows returns, per room, the upcoming CONFIRMED/CHECKED_IN
// stay windows ending on or after the given instant, ordered by
// check-in.  Used by the rooms-with-booking-info listing.
func (r *BookingRepo) ActiveWindows(ctx context.Context, from time.Time) (map[uint64][]booking.Window, error) {
	const q = `SELECT room_id, id, check_in, check_out, status FROM bookings
	           WHERE status IN (?, ?) AND check_out >= ?
	           ORDER BY room_id, check_in`
	out := make(map[uint64][]booking.Window)
	err := readWithRetry(func() error {
		rows, err := r.db.QueryContext(ctx, q,
			string(model.BookingConfirmed), string(model.BookingCheckedIn), from.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		clear(out)
		for rows.Next() {
			var roomID uint64
			var w booking.Window
			var status string
			if err := rows.Scan(&roomID, &w.BookingID, &w.CheckIn, &w.CheckOut, &status); err != nil {
				return err
			}
			w.Status = model.BookingStatus(status)
			out[roomID] = append(out[roomID], w)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RevenueDetail is the full confirmed-booking history the detailed
// revenue report returns, together with the summed billed and
// collected amounts.
type RevenueDetail struct {
	Bookings            []BookingDetail `json:"bookings"`
	TotalRevenueCents   int64           `json:"total_revenue_cents"`
	TotalCollectedCents int64           `json:"total_collected_cents"`
}

// sumRevenue totals the final and collected amounts of a listing.
func sumRevenue(list []BookingDetail) (revenue, collected int64) {
	for i := range list {
		revenue += list[i].FinalAmountCents
		collected += list[i].AmountPaidCents
	}
	return revenue, collected
}

// DetailedRevenue returns every CONFIRMED booking joined with its
// guest and room, newest first, plus grand totals for billed revenue
// and the amount actually collected so far.
func (r *BookingRepo) DetailedRevenue(ctx context.Context) (*RevenueDetail, error) {
	list, err := r.ListByStatus(ctx, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	d := &RevenueDetail{Bookings: list}
	d.TotalRevenueCents, d.TotalCollectedCents = sumRevenue(list)
	return d, nil
}

// RevenueBucket is one aggregation row of the revenue reports.
type RevenueBucket struct {
	Period       string `json:"period"`
	RevenueCents int64  `json:"revenue_cents"`
	Bookings     int64  `json:"bookings"`
}

// MonthlyRevenue groups confirmed booking revenue by calendar month.
func (r *BookingRepo) MonthlyRevenue(ctx context.Context) ([]RevenueBucket, error) {
	const q = `SELECT DATE_FORMAT(created_at, '%Y-%m') AS period,
	                  COALESCE(SUM(final_amount_cents), 0), COUNT(*)
	           FROM bookings WHERE status = ?
	           GROUP BY period ORDER BY period`
	return r.revenueBuckets(ctx, q)
}

// AnnualRevenue groups confirmed booking revenue by year.
func (r *BookingRepo) AnnualRevenue(ctx context.Context) ([]RevenueBucket, error) {
	const q = `SELECT DATE_FORMAT(created_at, '%Y') AS period,
	                  COALESCE(SUM(final_amount_cents), 0), COUNT(*)
	           FROM bookings WHERE status = ?
	           GROUP BY period ORDER BY period`
	return r.revenueBuckets(ctx, q)
}

func (r *BookingRepo) revenueBuckets(ctx context.Context, q string) ([]RevenueBucket, error) {
	var out []RevenueBucket
	err := readWithRetry(func() error {
		rows, err := r.db.QueryContext(ctx, q, string(model.BookingConfirmed))
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var b RevenueBucket
			if err := rows.Scan(&b.Period, &b.RevenueCents, &b.Bookings); err != nil {
				return err
			}
			out = append(out, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []RevenueBucket{}
	}
	return out, nil
}
