package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterly/shiftroster/pkg/db"
)

// GetRoles retrieves all role records ordered by name
func (d *DB) GetRoles(ctx context.Context) ([]db.RoleRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []db.RoleRow
	for rows.Next() {
		var r db.RoleRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}

	return roles, nil
}

// InsertRole inserts a new role record
func (d *DB) InsertRole(ctx context.Context, role *db.RoleRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO roles (id, name, description)
		VALUES ($1, $2, $3)
	`, role.ID, role.Name, role.Description)
	if err != nil {
		return fmt.Errorf("failed to insert role: %w", err)
	}
	return nil
}

// UpdateRole applies a partial update to a role record
func (d *DB) UpdateRole(ctx context.Context, id string, patch db.RolePatch) error {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if b.empty() {
		return nil
	}

	tag, err := d.pool.Exec(ctx, b.sql("roles"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("role %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// DeleteRole deletes a role record
func (d *DB) DeleteRole(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}
