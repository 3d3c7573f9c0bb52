package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

// GetEligibleEmployees returns every active employee with no approved
// absence overlapping [start, end], together with all their roles. This is
// the roster snapshot the optimizer draws assignments from.
func (r *Repository) GetEligibleEmployees(start time.Time, end time.Time) ([]*domain.Employee, error) {
	query := `
		SELECT
			e.id,
			e.code,
			e.full_name,
			e.is_active,
			e.created_at,
			e.version,
			er.role_id
		FROM employees e
		LEFT JOIN employee_roles er ON e.id = er.employee_id
		WHERE e.is_active = TRUE
		AND NOT EXISTS (
			SELECT 1 FROM absences a
			WHERE a.employee_id = e.id
			AND a.approved = TRUE
			AND a.start_date <= $2
			AND a.end_date >= $1
		)
		ORDER BY e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employeesMap := make(map[int64]*domain.Employee)
	order := []int64{}

	for rows.Next() {
		var row struct {
			ID        int64
			Code      string
			FullName  string
			IsActive  bool
			CreatedAt time.Time
			Version   int32
			RoleID    sql.NullInt64
		}

		dst := []any{
			&row.ID,
			&row.Code,
			&row.FullName,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.RoleID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := employeesMap[row.ID]; !exists {
			employeesMap[row.ID] = &domain.Employee{
				ID:        row.ID,
				Code:      row.Code,
				FullName:  row.FullName,
				RoleIDs:   make([]int64, 0),
				IsActive:  row.IsActive,
				CreatedAt: row.CreatedAt,
				Version:   row.Version,
			}
			order = append(order, row.ID)
		}

		if !row.RoleID.Valid {
			// an employee without any role cannot be scheduled, but the
			// roster read should not fail because of them
			continue
		}

		employeesMap[row.ID].RoleIDs = append(employeesMap[row.ID].RoleIDs, row.RoleID.Int64)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	employees := make([]*domain.Employee, 0, len(order))
	for _, id := range order {
		employees = append(employees, employeesMap[id])
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO employees (code, full_name, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	params := []any{employee.Code, employee.FullName, employee.IsActive}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&employee.ID, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	for _, roleID := range employee.RoleIDs {
		query := `
			INSERT INTO employee_roles (employee_id, role_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, employee.ID, roleID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) CreateAbsence(absence *domain.Absence) error {
	query := `
		INSERT INTO absences (employee_id, start_date, end_date, approved)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{absence.EmployeeID, absence.Start, absence.End, absence.Approved}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&absence.ID, &absence.CreatedAt, &absence.Version); err != nil {
		return err
	}

	return nil
}
