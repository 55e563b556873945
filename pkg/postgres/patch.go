package postgres

import (
	"fmt"
	"strings"
)

// setBuilder accumulates SET clauses for partial-update statements.
// Positional placeholders start at $2; $1 is reserved for the row id.
type setBuilder struct {
	clauses []string
	args    []any
}

func (b *setBuilder) add(column string, value any) {
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.args)+2))
	b.args = append(b.args, value)
}

func (b *setBuilder) empty() bool {
	return len(b.clauses) == 0
}

// sql renders "UPDATE <table> SET ..., updated_at = NOW() WHERE id = $1"
func (b *setBuilder) sql(table string) string {
	return fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE id = $1",
		table, strings.Join(b.clauses, ", "))
}
