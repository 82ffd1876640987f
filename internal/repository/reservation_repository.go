package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rezervacija/sala-backend/internal/model"
)

// ReservationRepo provides CRUD and query operations for reservations.
// Dates and times are stored as DATE and TIME columns and surfaced as
// the wire strings ("2006-01-02", "HH:MM") used across the API; TIME
// values come back as "HH:MM:SS" and are normalised on scan.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the handle for transaction control in handlers.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, room_id, user_id, DATE_FORMAT(date, '%Y-%m-%d'),
       TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
       event_type, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.RoomID, &res.UserID, &res.Date, &res.StartTime,
		&res.EndTime, &res.EventType, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListForRoomDateTx loads every reservation of one room on one date
// inside the given transaction, locking the rows with FOR UPDATE.  The
// admission check runs over this snapshot before the insert commits,
// which closes the race between two concurrent bookings for the same
// slot.  Status is deliberately not filtered: any row blocks its slot.
func (r *ReservationRepo) ListForRoomDateTx(ctx context.Context, tx *sql.Tx, roomID uint64, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE room_id = ? AND date = ?
	           ORDER BY start_time
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, roomID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// CreateTx inserts a reservation within an existing transaction and
// reads the row back so defaults and timestamps are populated.  The
// caller commits or rolls back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (room_id, user_id, date, start_time, end_time, event_type, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.RoomID, res.UserID, res.Date,
		res.StartTime, res.EndTime, res.EventType, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// UpdateTx overwrites a reservation's fields within a transaction.  It
// is used by the admission-controlled update path.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET room_id = ?, date = ?, start_time = ?, end_time = ?, event_type = ?, status = ?
	           WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, res.RoomID, res.Date, res.StartTime,
		res.EndTime, res.EventType, res.Status, res.ID); err != nil {
		return err
	}
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// GetByIDTx is GetByID inside a transaction, used when an update needs
// the current row before deciding what changes.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// ListFilter narrows List output.  Zero values mean "no constraint".
type ListFilter struct {
	RoomID uint64
	UserID uint64
	Date   string
	Status string
	Limit  int
	Offset int
}

// List returns reservations matching the filter, newest date first,
// plus the total row count before pagination for page controls.
func (r *ReservationRepo) List(ctx context.Context, f ListFilter) ([]model.Reservation, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if f.RoomID != 0 {
		where = append(where, "room_id = ?")
		args = append(args, f.RoomID)
	}
	if f.UserID != 0 {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Date != "" {
		where = append(where, "date = ?")
		args = append(args, f.Date)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + reservationColumns + ` FROM reservations` + cond + ` ORDER BY date DESC, start_time DESC, id DESC`
	if f.Limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *res)
	}
	return out, total, rows.Err()
}

// ListAll returns every reservation, oldest first.  The dashboard
// rollups and the availability badge aggregate over this snapshot.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY date, start_time, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// ListForRoom returns every reservation for one room, the input to a
// free/busy check outside a write path.
func (r *ReservationRepo) ListForRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE room_id = ? ORDER BY date, start_time`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// UpdateStatus changes only the status column.  This is the explicit
// manager override path: no availability re-check happens here.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a reservation by id.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
