package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterly/shiftroster/pkg/db"
)

// GetPeople retrieves all people records
func (d *DB) GetPeople(ctx context.Context) ([]db.PersonRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, phone, designation, role_ids, created_at, updated_at
		FROM people
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []db.PersonRow
	for rows.Next() {
		var p db.PersonRow
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Designation, &p.RoleIDs, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// InsertPerson inserts a new person record
func (d *DB) InsertPerson(ctx context.Context, person *db.PersonRow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO people (id, name, phone, designation, role_ids)
		VALUES ($1, $2, $3, $4, $5)
	`, person.ID, person.Name, person.Phone, person.Designation, person.RoleIDs)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// UpdatePerson applies a partial update to a person record
func (d *DB) UpdatePerson(ctx context.Context, id string, patch db.PersonPatch) error {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Phone != nil {
		b.add("phone", *patch.Phone)
	}
	if patch.Designation != nil {
		b.add("designation", *patch.Designation)
	}
	if patch.RoleIDs != nil {
		b.add("role_ids", patch.RoleIDs)
	}
	if b.empty() {
		return nil
	}

	tag, err := d.pool.Exec(ctx, b.sql("people"), append([]any{id}, b.args...)...)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("person %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// DeletePerson deletes a person record. Group memberships, leaves and
// assignments referencing the person are removed by the schema cascades.
func (d *DB) DeletePerson(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}
