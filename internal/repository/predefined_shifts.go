package repository

import (
	"context"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

func (r *Repository) GetAllPredefinedShifts() ([]*domain.PredefinedShift, error) {
	query := `
		SELECT id, name, start_time, end_time, created_at, version
		FROM predefined_shifts
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []*domain.PredefinedShift{}
	for rows.Next() {
		var shift domain.PredefinedShift
		dst := []any{
			&shift.ID,
			&shift.Name,
			&shift.StartTime,
			&shift.EndTime,
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

func (r *Repository) CreatePredefinedShift(shift *domain.PredefinedShift) error {
	query := `
		INSERT INTO predefined_shifts (name, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{shift.Name, shift.StartTime, shift.EndTime}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}
