package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterly/shiftroster/pkg/db"
)

// GetShifts retrieves all legacy shift records, most recent first
func (d *DB) GetShifts(ctx context.Context) ([]db.ShiftRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, date, start_time, end_time, created_at, updated_at
		FROM shifts
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.ShiftRow
	for rows.Next() {
		var s db.ShiftRow
		if err := rows.Scan(&s.ID, &s.Name, &s.Date, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// GetShiftRoles retrieves all legacy shift role records with the role
// display name joined in
func (d *DB) GetShiftRoles(ctx context.Context) ([]db.ShiftRoleRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT sr.id, sr.shift_id, sr.role_id, COALESCE(r.name, ''), sr.required_count
		FROM shift_roles sr
		LEFT JOIN roles r ON r.id = sr.role_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift roles: %w", err)
	}
	defer rows.Close()

	var shiftRoles []db.ShiftRoleRow
	for rows.Next() {
		var sr db.ShiftRoleRow
		if err := rows.Scan(&sr.ID, &sr.ShiftID, &sr.RoleID, &sr.RoleName, &sr.RequiredCount); err != nil {
			return nil, fmt.Errorf("failed to scan shift role: %w", err)
		}
		shiftRoles = append(shiftRoles, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift roles: %w", err)
	}

	return shiftRoles, nil
}

// GetShiftAssignments retrieves all legacy shift assignment records
func (d *DB) GetShiftAssignments(ctx context.Context) ([]db.ShiftAssignmentRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT shift_role_id, person_id FROM shift_assignments
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ShiftAssignmentRow
	for rows.Next() {
		var a db.ShiftAssignmentRow
		if err := rows.Scan(&a.ShiftRoleID, &a.PersonID); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift assignments: %w", err)
	}

	return assignments, nil
}

// InsertShift inserts a new legacy shift record
func (d *DB) InsertShift(ctx context.Context, shift *db.ShiftRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shifts (id, name, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
	`, shift.ID, shift.Name, shift.Date, shift.StartTime, shift.EndTime)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// UpdateShift applies a partial update to a legacy shift record
func (d *DB) UpdateShift(ctx context.Context, id string, patch db.ShiftPatch) error {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Date != nil {
		b.add("date", *patch.Date)
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

	tag, err := d.pool.Exec(ctx, b.sql("shifts"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// SyncShiftRoles reconciles the stored role slots of a legacy shift with
// the desired set, keyed by role id, inside a single transaction.
func (d *DB) SyncShiftRoles(ctx context.Context, shiftID string, roles []db.ShiftRoleRow) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin shift role sync: %w", err)
	}
	defer tx.Rollback(ctx)

	type existing struct {
		id            string
		requiredCount int
	}
	rows, err := tx.Query(ctx, `
		SELECT id, role_id, required_count FROM shift_roles WHERE shift_id = $1
	`, shiftID)
	if err != nil {
		return fmt.Errorf("failed to query current shift roles: %w", err)
	}
	current := make(map[string]existing)
	for rows.Next() {
		var e existing
		var roleID string
		if err := rows.Scan(&e.id, &roleID, &e.requiredCount); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan shift role: %w", err)
		}
		current[roleID] = e
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating shift roles: %w", err)
	}

	desired := make(map[string]bool, len(roles))
	for _, role := range roles {
		desired[role.RoleID] = true
		if e, ok := current[role.RoleID]; ok {
			if e.requiredCount != role.RequiredCount {
				if _, err := tx.Exec(ctx, `
					UPDATE shift_roles SET required_count = $2 WHERE id = $1
				`, e.id, role.RequiredCount); err != nil {
					return fmt.Errorf("failed to update shift role: %w", err)
				}
			}
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO shift_roles (id, shift_id, role_id, required_count)
			VALUES ($1, $2, $3, $4)
		`, role.ID, shiftID, role.RoleID, role.RequiredCount); err != nil {
			return fmt.Errorf("failed to insert shift role: %w", err)
		}
	}
	for roleID, e := range current {
		if !desired[roleID] {
			if _, err := tx.Exec(ctx, `
				DELETE FROM shift_roles WHERE id = $1
			`, e.id); err != nil {
				return fmt.Errorf("failed to delete shift role: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shift role sync: %w", err)
	}
	return nil
}

// DeleteShift deletes a legacy shift record; role slots and assignments
// cascade
func (d *DB) DeleteShift(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// GetShiftRoleID looks up the generated id of a legacy shift's role slot
func (d *DB) GetShiftRoleID(ctx context.Context, shiftID, roleID string) (string, error) {
	var id string
	err := d.pool.QueryRow(ctx, `
		SELECT id FROM shift_roles WHERE shift_id = $1 AND role_id = $2
	`, shiftID, roleID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to look up shift role: %w", err)
	}
	return id, nil
}

// InsertShiftAssignment assigns a person to a legacy shift role slot
func (d *DB) InsertShiftAssignment(ctx context.Context, assignment db.ShiftAssignmentRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift_assignments (shift_role_id, person_id)
		VALUES ($1, $2)
	`, assignment.ShiftRoleID, assignment.PersonID)
	if err != nil {
		return fmt.Errorf("failed to insert shift assignment: %w", err)
	}
	return nil
}

// DeleteShiftAssignment removes a person from a legacy shift role slot
func (d *DB) DeleteShiftAssignment(ctx context.Context, roleEntryID, personID string) error {
	_, err := d.pool.Exec(ctx, `
		DELETE FROM shift_assignments
		WHERE shift_role_id = $1 AND person_id = $2
	`, roleEntryID, personID)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	return nil
}
