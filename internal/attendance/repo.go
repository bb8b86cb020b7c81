package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserAndDate returns the record for (user, date), or nil when absent.
func (r *Repository) FindByUserAndDate(ctx context.Context, userID, date string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, check_in, check_out, status, created_at
		FROM attendance
		WHERE user_id = $1 AND date = $2
	`, userID, date)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Insert writes a new record. A concurrent duplicate for the same
// (user, date) trips the unique constraint and maps to ErrAlreadyCheckedIn.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Status == "" {
		rec.Status = StatusAbsent
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (id, user_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.Date, rec.CheckIn, rec.CheckOut, rec.Status)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Record{}, ErrAlreadyCheckedIn
		}
		return Record{}, err
	}
	return rec, nil
}

// SetCheckOut persists the check-out timestamp for a record.
func (r *Repository) SetCheckOut(ctx context.Context, id string, t time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE attendance SET check_out = $2 WHERE id = $1
	`, id, t)
	return err
}

// ListByUser returns a user's records sorted by date ascending. The range
// filter applies only when both bounds are provided, inclusive on both ends.
func (r *Repository) ListByUser(ctx context.Context, userID, from, to string) ([]Record, error) {
	query := `
		SELECT id, user_id, date, check_in, check_out, status, created_at
		FROM attendance
		WHERE user_id = $1`
	args := []any{userID}
	if from != "" && to != "" {
		query += ` AND date >= $2 AND date <= $3`
		args = append(args, from, to)
	}
	query += ` ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
