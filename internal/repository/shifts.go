package repository

import (
	"context"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

// InsertShifts persists one generated batch in a single transaction, so a
// failure halfway through leaves nothing behind. The returned IDs identify
// the batch for later publication or revocation.
func (r *Repository) InsertShifts(shifts []*domain.Shift) ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (start_time, end_time, employee_id, role_id, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ids := make([]int64, 0, len(shifts))
	for _, shift := range shifts {
		params := []any{shift.Start, shift.End, shift.EmployeeID, shift.RoleID, shift.Published}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
			return nil, err
		}
		ids = append(ids, shift.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return ids, nil
}

// DeleteUnpublishedShifts removes every record of a batch that has not been
// marked published since it was generated. Returns how many were deleted.
func (r *Repository) DeleteUnpublishedShifts(ids []int64) (int64, error) {
	query := `
		DELETE FROM shifts
		WHERE id = ANY($1) AND published = FALSE
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, ids)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) PublishShifts(ids []int64) (int64, error) {
	query := `
		UPDATE shifts
		SET published = TRUE, version = version + 1
		WHERE id = ANY($1) AND published = FALSE
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, ids)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) GetShiftsInRange(start time.Time, end time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, start_time, end_time, employee_id, role_id, published, created_at, version
		FROM shifts
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []*domain.Shift{}
	for rows.Next() {
		var shift domain.Shift
		dst := []any{
			&shift.ID,
			&shift.Start,
			&shift.End,
			&shift.EmployeeID,
			&shift.RoleID,
			&shift.Published,
			&shift.CreatedAt,
			&shift.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
