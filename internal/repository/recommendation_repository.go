package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rezervacija/sala-backend/internal/model"
)

// RecommendationRepo stores saved recommendations.  A recommendation is
// a reservation sketch without a status: it never blocks a slot, it
// only records that somebody proposed one.
type RecommendationRepo struct {
	db *sql.DB
}

// NewRecommendationRepo returns a RecommendationRepo bound to the database.
func NewRecommendationRepo(db *sql.DB) *RecommendationRepo { return &RecommendationRepo{db: db} }

const recommendationColumns = `id, room_id, user_id, DATE_FORMAT(date, '%Y-%m-%d'),
       TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
       event_type, created_at, updated_at`

func scanRecommendation(row interface{ Scan(...any) error }) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := row.Scan(&rec.ID, &rec.RoomID, &rec.UserID, &rec.Date, &rec.StartTime,
		&rec.EndTime, &rec.EventType, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a recommendation and reads the row back.
func (r *RecommendationRepo) Create(ctx context.Context, rec *model.Recommendation) error {
	const q = `INSERT INTO recommendations (room_id, user_id, date, start_time, end_time, event_type)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rec.RoomID, rec.UserID, rec.Date,
		rec.StartTime, rec.EndTime, rec.EventType)
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
	*rec = *got
	return nil
}

// GetByID returns a recommendation or ErrRecommendationNotFound.
func (r *RecommendationRepo) GetByID(ctx context.Context, id uint64) (*model.Recommendation, error) {
	const q = `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = ?`
	rec, err := scanRecommendation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}
	return rec, nil
}

// List returns all recommendations, newest first.  A non-zero userID
// narrows the list to one author.
func (r *RecommendationRepo) List(ctx context.Context, userID uint64) ([]model.Recommendation, error) {
	q := `SELECT ` + recommendationColumns + ` FROM recommendations`
	args := make([]any, 0, 1)
	if userID != 0 {
		q += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	q += ` ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Recommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Update overwrites a recommendation's fields and reads the row back.
func (r *RecommendationRepo) Update(ctx context.Context, rec *model.Recommendation) error {
	const q = `UPDATE recommendations
	           SET room_id = ?, date = ?, start_time = ?, end_time = ?, event_type = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, rec.RoomID, rec.Date, rec.StartTime,
		rec.EndTime, rec.EventType, rec.ID); err != nil {
		return err
	}
	got, err := r.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	*rec = *got
	return nil
}

// Delete removes a recommendation by id.
func (r *RecommendationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recommendations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecommendationNotFound
	}
	return nil
}
