package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterly/shiftroster/pkg/db"
)

// GetRosters retrieves all roster records, most recent period first
func (d *DB) GetRosters(ctx context.Context) ([]db.RosterRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM rosters
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	var rosters []db.RosterRow
	for rows.Next() {
		var r db.RosterRow
		if err := rows.Scan(&r.ID, &r.Name, &r.StartDate, &r.EndDate, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rosters: %w", err)
	}

	return rosters, nil
}

// GetRosterShifts retrieves all roster shift records ordered by date
func (d *DB) GetRosterShifts(ctx context.Context) ([]db.RosterShiftRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, roster_id, template_id, date, created_at, updated_at
		FROM roster_shifts
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.RosterShiftRow
	for rows.Next() {
		var s db.RosterShiftRow
		if err := rows.Scan(&s.ID, &s.RosterID, &s.TemplateID, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster shifts: %w", err)
	}

	return shifts, nil
}

// GetRosterShiftRoles retrieves all roster shift role records with the
// role display name joined in
func (d *DB) GetRosterShiftRoles(ctx context.Context) ([]db.RosterShiftRoleRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT sr.id, sr.roster_shift_id, sr.role_id, COALESCE(r.name, ''), sr.required_count
		FROM roster_shift_roles sr
		LEFT JOIN roles r ON r.id = sr.role_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster shift roles: %w", err)
	}
	defer rows.Close()

	var shiftRoles []db.RosterShiftRoleRow
	for rows.Next() {
		var sr db.RosterShiftRoleRow
		if err := rows.Scan(&sr.ID, &sr.RosterShiftID, &sr.RoleID, &sr.RoleName, &sr.RequiredCount); err != nil {
			return nil, fmt.Errorf("failed to scan roster shift role: %w", err)
		}
		shiftRoles = append(shiftRoles, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster shift roles: %w", err)
	}

	return shiftRoles, nil
}

// GetRosterAssignments retrieves all roster shift assignment records
func (d *DB) GetRosterAssignments(ctx context.Context) ([]db.RosterAssignmentRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT roster_shift_role_id, person_id FROM roster_shift_assignments
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.RosterAssignmentRow
	for rows.Next() {
		var a db.RosterAssignmentRow
		if err := rows.Scan(&a.RosterShiftRoleID, &a.PersonID); err != nil {
			return nil, fmt.Errorf("failed to scan roster assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster assignments: %w", err)
	}

	return assignments, nil
}

// InsertRoster inserts a new roster record
func (d *DB) InsertRoster(ctx context.Context, roster *db.RosterRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO rosters (id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4)
	`, roster.ID, roster.Name, roster.StartDate, roster.EndDate)
	if err != nil {
		return fmt.Errorf("failed to insert roster: %w", err)
	}
	return nil
}

// UpdateRoster applies a partial update to a roster record
func (d *DB) UpdateRoster(ctx context.Context, id string, patch db.RosterPatch) error {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.StartDate != nil {
		b.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		b.add("end_date", *patch.EndDate)
	}
	if b.empty() {
		return nil
	}

	tag, err := d.pool.Exec(ctx, b.sql("rosters"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roster %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// DeleteRoster deletes a roster record; shifts, role slots and
// assignments cascade
func (d *DB) DeleteRoster(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM rosters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	return nil
}

// InsertRosterShift inserts a new roster shift record
func (d *DB) InsertRosterShift(ctx context.Context, shift *db.RosterShiftRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO roster_shifts (id, roster_id, template_id, date)
		VALUES ($1, $2, $3, $4)
	`, shift.ID, shift.RosterID, shift.TemplateID, shift.Date)
	if err != nil {
		return fmt.Errorf("failed to insert roster shift: %w", err)
	}
	return nil
}

// UpdateRosterShift applies a partial update to a roster shift record
func (d *DB) UpdateRosterShift(ctx context.Context, id string, patch db.RosterShiftPatch) error {
	var b setBuilder
	if patch.Date != nil {
		b.add("date", *patch.Date)
	}
	if b.empty() {
		return nil
	}

	tag, err := d.pool.Exec(ctx, b.sql("roster_shifts"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update roster shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roster shift %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// SyncRosterShiftRoles reconciles the stored role slots of a roster shift
// with the desired set, keyed by role id, inside a single transaction.
// Assignments attached to kept slots survive; removed slots drop their
// assignments via the schema cascade.
func (d *DB) SyncRosterShiftRoles(ctx context.Context, shiftID string, roles []db.RosterShiftRoleRow) error {
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
		SELECT id, role_id, required_count FROM roster_shift_roles WHERE roster_shift_id = $1
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
					UPDATE roster_shift_roles SET required_count = $2 WHERE id = $1
				`, e.id, role.RequiredCount); err != nil {
					return fmt.Errorf("failed to update shift role: %w", err)
				}
			}
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO roster_shift_roles (id, roster_shift_id, role_id, required_count)
			VALUES ($1, $2, $3, $4)
		`, role.ID, shiftID, role.RoleID, role.RequiredCount); err != nil {
			return fmt.Errorf("failed to insert shift role: %w", err)
		}
	}
	for roleID, e := range current {
		if !desired[roleID] {
			if _, err := tx.Exec(ctx, `
				DELETE FROM roster_shift_roles WHERE id = $1
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

// DeleteRosterShift deletes a roster shift record; role slots and
// assignments cascade
func (d *DB) DeleteRosterShift(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM roster_shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roster shift: %w", err)
	}
	return nil
}

// GetRosterShiftRoleID looks up the generated id of a shift's role slot
func (d *DB) GetRosterShiftRoleID(ctx context.Context, shiftID, roleID string) (string, error) {
	var id string
	err := d.pool.QueryRow(ctx, `
		SELECT id FROM roster_shift_roles WHERE roster_shift_id = $1 AND role_id = $2
	`, shiftID, roleID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to look up roster shift role: %w", err)
	}
	return id, nil
}

// InsertRosterAssignment assigns a person to a roster shift role slot
func (d *DB) InsertRosterAssignment(ctx context.Context, assignment db.RosterAssignmentRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO roster_shift_assignments (roster_shift_role_id, person_id)
		VALUES ($1, $2)
	`, assignment.RosterShiftRoleID, assignment.PersonID)
	if err != nil {
		return fmt.Errorf("failed to insert roster assignment: %w", err)
	}
	return nil
}

// DeleteRosterAssignment removes a person from a roster shift role slot
func (d *DB) DeleteRosterAssignment(ctx context.Context, roleEntryID, personID string) error {
	_, err := d.pool.Exec(ctx, `
		DELETE FROM roster_shift_assignments
		WHERE roster_shift_role_id = $1 AND person_id = $2
	`, roleEntryID, personID)
	if err != nil {
		return fmt.Errorf("failed to delete roster assignment: %w", err)
	}
	return nil
}
