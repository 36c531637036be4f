package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ownerScope builds the WHERE clause and positional arguments of a query that
// must only touch rows owned by one user. The owner predicate is always the
// first predicate and the owner ID is always $1; callers can only append.
type ownerScope struct {
	alias      string
	predicates []string
	args       []any
}

// scopeToOwner starts a scope restricting alias (a table name or alias) to
// rows created by ownerID.
func scopeToOwner(alias string, ownerID uuid.UUID) *ownerScope {
	return &ownerScope{
		alias:      alias,
		predicates: []string{alias + ".created_by = $1"},
		args:       []any{ownerID},
	}
}

// arg registers a positional argument and returns its placeholder.
func (s *ownerScope) arg(v any) string {
	s.args = append(s.args, v)
	return fmt.Sprintf("$%d", len(s.args))
}

// and appends a predicate. Placeholders inside it must come from arg.
func (s *ownerScope) and(predicate string) *ownerScope {
	s.predicates = append(s.predicates, predicate)
	return s
}

// withID restricts the scope to a single row of the scoped table.
func (s *ownerScope) withID(id int64) *ownerScope {
	return s.and(s.alias + ".id = " + s.arg(id))
}

// alsoOwned requires rows of another alias in the same query to belong to
// the same owner.
func (s *ownerScope) alsoOwned(alias string) *ownerScope {
	return s.and(alias + ".created_by = $1")
}

// inList appends "column IN (...)" for ids. An empty ids slice matches nothing.
func (s *ownerScope) inList(column string, ids []int64) *ownerScope {
	if len(ids) == 0 {
		return s.and("FALSE")
	}
	return s.and(column + " IN (" + s.argList(ids) + ")")
}

// argList registers each id as an argument and returns the comma separated
// placeholders.
func (s *ownerScope) argList(ids []int64) string {
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = s.arg(id)
	}
	return strings.Join(placeholders, ", ")
}

// where renders the conjunction of all predicates.
func (s *ownerScope) where() string {
	return strings.Join(s.predicates, " AND ")
}

// values returns the positional arguments in placeholder order.
func (s *ownerScope) values() []any {
	return s.args
}
