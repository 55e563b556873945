package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterly/shiftroster/pkg/db"
)

// GetTemplates retrieves all shift template records ordered by name
func (d *DB) GetTemplates(ctx context.Context) ([]db.TemplateRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, start_time, end_time, created_at, updated_at
		FROM shift_templates
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []db.TemplateRow
	for rows.Next() {
		var t db.TemplateRow
		if err := rows.Scan(&t.ID, &t.Name, &t.StartTime, &t.EndTime, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// GetTemplateRoles retrieves all template role records with the role
// display name joined in
func (d *DB) GetTemplateRoles(ctx context.Context) ([]db.TemplateRoleRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT tr.id, tr.template_id, tr.role_id, COALESCE(r.name, ''), tr.required_count
		FROM shift_template_roles tr
		LEFT JOIN roles r ON r.id = tr.role_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query template roles: %w", err)
	}
	defer rows.Close()

	var templateRoles []db.TemplateRoleRow
	for rows.Next() {
		var tr db.TemplateRoleRow
		if err := rows.Scan(&tr.ID, &tr.TemplateID, &tr.RoleID, &tr.RoleName, &tr.RequiredCount); err != nil {
			return nil, fmt.Errorf("failed to scan template role: %w", err)
		}
		templateRoles = append(templateRoles, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template roles: %w", err)
	}

	return templateRoles, nil
}

// InsertTemplate inserts a new shift template record
func (d *DB) InsertTemplate(ctx context.Context, template *db.TemplateRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift_templates (id, name, start_time, end_time)
		VALUES ($1, $2, $3, $4)
	`, template.ID, template.Name, template.StartTime, template.EndTime)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	return nil
}

// UpdateTemplate applies a partial update to a shift template record
func (d *DB) UpdateTemplate(ctx context.Context, id string, patch db.TemplatePatch) error {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.StartTime != nil {
		b.add("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		b.add("end_time", *patch.EndTime)
	}
	if b.empty() {
		return nil
	}

	tag, err := d.pool.Exec(ctx, b.sql("shift_templates"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// SyncTemplateRoles reconciles the stored role entries of a template with
// the desired set, keyed by role id, inside a single transaction. Kept
// entries have their required count patched in place rather than being
// deleted and reinserted.
func (d *DB) SyncTemplateRoles(ctx context.Context, templateID string, roles []db.TemplateRoleRow) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin template role sync: %w", err)
	}
	defer tx.Rollback(ctx)

	type existing struct {
		id            string
		requiredCount int
	}
	rows, err := tx.Query(ctx, `
		SELECT id, role_id, required_count FROM shift_template_roles WHERE template_id = $1
	`, templateID)
	if err != nil {
		return fmt.Errorf("failed to query current template roles: %w", err)
	}
	current := make(map[string]existing)
	for rows.Next() {
		var e existing
		var roleID string
		if err := rows.Scan(&e.id, &roleID, &e.requiredCount); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan template role: %w", err)
		}
		current[roleID] = e
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating template roles: %w", err)
	}

	desired := make(map[string]bool, len(roles))
	for _, role := range roles {
		desired[role.RoleID] = true
		if e, ok := current[role.RoleID]; ok {
			if e.requiredCount != role.RequiredCount {
				if _, err := tx.Exec(ctx, `
					UPDATE shift_template_roles SET required_count = $2 WHERE id = $1
				`, e.id, role.RequiredCount); err != nil {
					return fmt.Errorf("failed to update template role: %w", err)
				}
			}
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO shift_template_roles (id, template_id, role_id, required_count)
			VALUES ($1, $2, $3, $4)
		`, role.ID, templateID, role.RoleID, role.RequiredCount); err != nil {
			return fmt.Errorf("failed to insert template role: %w", err)
		}
	}
	for roleID, e := range current {
		if !desired[roleID] {
			if _, err := tx.Exec(ctx, `
				DELETE FROM shift_template_roles WHERE id = $1
			`, e.id); err != nil {
				return fmt.Errorf("failed to delete template role: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit template role sync: %w", err)
	}
	return nil
}

// DeleteTemplate deletes a shift template record; role entries cascade
func (d *DB) DeleteTemplate(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM shift_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}
