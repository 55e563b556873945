package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterly/shiftroster/pkg/db"
)

// GetLeaves retrieves all leave records ordered by start date ascending
func (d *DB) GetLeaves(ctx context.Context) ([]db.LeaveRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, person_id, start_date, end_date, reason, status, created_at, updated_at
		FROM leaves
		ORDER BY start_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []db.LeaveRow
	for rows.Next() {
		var l db.LeaveRow
		if err := rows.Scan(&l.ID, &l.PersonID, &l.StartDate, &l.EndDate, &l.Reason, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaves: %w", err)
	}

	return leaves, nil
}

// InsertLeave inserts a new leave record
func (d *DB) InsertLeave(ctx context.Context, leave *db.LeaveRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO leaves (id, person_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, leave.ID, leave.PersonID, leave.StartDate, leave.EndDate, leave.Reason, leave.Status)
	if err != nil {
		return fmt.Errorf("failed to insert leave: %w", err)
	}
	return nil
}

// UpdateLeave applies a partial update to a leave record
func (d *DB) UpdateLeave(ctx context.Context, id string, patch db.LeavePatch) error {
	var b setBuilder
	if patch.PersonID != nil {
		b.add("person_id", *patch.PersonID)
	}
	if patch.StartDate != nil {
		b.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		b.add("end_date", *patch.EndDate)
	}
	if patch.Reason != nil {
		b.add("reason", *patch.Reason)
	}
	if patch.Status != nil {
		b.add("status", *patch.Status)
	}
	if b.empty() {
		return nil
	}

	tag, err := d.pool.Exec(ctx, b.sql("leaves"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("leave %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// DeleteLeave deletes a leave record
func (d *DB) DeleteLeave(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	return nil
}
