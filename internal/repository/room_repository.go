package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rezervacija/sala-backend/internal/model"
)

// RoomRepo provides CRUD operations over the rooms table.  Deleting a
// room cascades to its reservations and recommendations through the
// foreign keys, so no extra cleanup happens here.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomColumns = `id, name, type, capacity, description, active, price, floor,
       layout_x, layout_y, layout_w, layout_h, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var (
		rm    model.Room
		desc  sql.NullString
		price sql.NullFloat64
		x, y  sql.NullInt64
		w, h  sql.NullInt64
	)
	err := row.Scan(&rm.ID, &rm.Name, &rm.Type, &rm.Capacity, &desc, &rm.Active, &price,
		&rm.Floor, &x, &y, &w, &h, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		s := desc.String
		rm.Description = &s
	}
	if price.Valid {
		p := price.Float64
		rm.Price = &p
	}
	assign := func(n sql.NullInt64, dst **int) {
		if n.Valid {
			v := int(n.Int64)
			*dst = &v
		}
	}
	assign(x, &rm.LayoutX)
	assign(y, &rm.LayoutY)
	assign(w, &rm.LayoutW)
	assign(h, &rm.LayoutH)
	return &rm, nil
}

// Create inserts a new room and reads the row back so timestamps and
// column defaults are populated on the returned value.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (name, type, capacity, description, active, price, floor,
	                              layout_x, layout_y, layout_w, layout_h)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.Name, rm.Type, rm.Capacity, rm.Description,
		rm.Active, rm.Price, rm.Floor, rm.LayoutX, rm.LayoutY, rm.LayoutW, rm.LayoutH)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// GetByID returns a single room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	rm, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// List returns the whole catalog ordered by id.  Catalog order doubles
// as the documented tie-break for recommendation ranking, so the
// ordering here is part of the contract.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

// Update overwrites the mutable room fields.  Returns ErrRoomNotFound
// when the id matches no row.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms
	           SET name = ?, type = ?, capacity = ?, description = ?, active = ?, price = ?, floor = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.Name, rm.Type, rm.Capacity, rm.Description,
		rm.Active, rm.Price, rm.Floor, rm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, rm.ID); err != nil {
			return err
		}
	}
	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// UpdateLayout moves and resizes a room on the floor plan.  The caller
// has already clamped the coordinates to the grid invariants.
func (r *RoomRepo) UpdateLayout(ctx context.Context, id uint64, x, y, w, h int) (*model.Room, error) {
	const q = `UPDATE rooms SET layout_x = ?, layout_y = ?, layout_w = ?, layout_h = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, x, y, w, h, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// distinguish "missing" from "unchanged"
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room; reservations and recommendations referencing
// it are removed by the FK cascade.
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
