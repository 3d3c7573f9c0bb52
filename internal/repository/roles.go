package repository

import (
	"context"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/domain"
)

func (r *Repository) GetAllRoles() ([]*domain.Role, error) {
	query := `
		SELECT id, name, created_at, version
		FROM roles
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.Version); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

func (r *Repository) CreateRole(role *domain.Role) error {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, role.Name).Scan(&role.ID, &role.CreatedAt, &role.Version); err != nil {
		return err
	}

	return nil
}
