package postgres

import (
	"fmt"
	"strings"
)

// UpdateBuilder accumulates "column = $n" assignments for a partial UPDATE
type UpdateBuilder struct {
	sets []string
	args []any
}

// Set adds an assignment
func (b *UpdateBuilder) Set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// Arg appends a WHERE argument and returns its placeholder
func (b *UpdateBuilder) Arg(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// Clause joins the assignments for the SET clause
func (b *UpdateBuilder) Clause() string {
	return strings.Join(b.sets, ", ")
}

// Args returns the positional arguments in placeholder order
func (b *UpdateBuilder) Args() []any {
	return b.args
}
