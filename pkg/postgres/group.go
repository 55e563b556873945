package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterly/shiftroster/pkg/db"
)

// GetGroups retrieves all group records ordered by name
func (d *DB) GetGroups(ctx context.Context) ([]db.GroupRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM groups
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []db.GroupRow
	for rows.Next() {
		var g db.GroupRow
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

// GetGroupMembers retrieves all group membership records
func (d *DB) GetGroupMembers(ctx context.Context) ([]db.GroupMemberRow, error) {
	rows, err := d.pool.Query(ctx, `SELECT group_id, person_id FROM group_members`)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	var members []db.GroupMemberRow
	for rows.Next() {
		var m db.GroupMemberRow
		if err := rows.Scan(&m.GroupID, &m.PersonID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group members: %w", err)
	}

	return members, nil
}

// InsertGroup inserts a new group record
func (d *DB) InsertGroup(ctx context.Context, group *db.GroupRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO groups (id, name, description)
		VALUES ($1, $2, $3)
	`, group.ID, group.Name, group.Description)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// UpdateGroup applies a partial update to a group record
func (d *DB) UpdateGroup(ctx context.Context, id string, patch db.GroupPatch) error {
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

	tag, err := d.pool.Exec(ctx, b.sql("groups"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// SyncGroupMembers reconciles the stored member set of a group with the
// desired one. Only the missing rows are inserted and only the removed
// rows are deleted, all inside a single transaction.
func (d *DB) SyncGroupMembers(ctx context.Context, groupID string, personIDs []string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin member sync: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT person_id FROM group_members WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("failed to query current members: %w", err)
	}
	current := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan member: %w", err)
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating members: %w", err)
	}

	desired := make(map[string]bool, len(personIDs))
	for _, id := range personIDs {
		desired[id] = true
		if !current[id] {
			if _, err := tx.Exec(ctx, `
				INSERT INTO group_members (group_id, person_id) VALUES ($1, $2)
			`, groupID, id); err != nil {
				return fmt.Errorf("failed to insert group member: %w", err)
			}
		}
	}
	for id := range current {
		if !desired[id] {
			if _, err := tx.Exec(ctx, `
				DELETE FROM group_members WHERE group_id = $1 AND person_id = $2
			`, groupID, id); err != nil {
				return fmt.Errorf("failed to delete group member: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit member sync: %w", err)
	}
	return nil
}

// DeleteGroup deletes a group record; memberships cascade
func (d *DB) DeleteGroup(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
