// database/filters.go
package database

import (
	"strings"
)

// Filters narrows a dashboard query. Zero values mean "no restriction":
// the predicate for that dimension is simply omitted.
type Filters struct {
	Year            int
	Quarter         int
	State           string
	TransactionType string
}

// whereClause builds the WHERE fragment and its bind arguments.
// withType controls whether the transaction_type predicate applies
// (the user tables have no such column).
func (f Filters) whereClause(withType bool) (string, []any) {
	var predicates []string
	var args []any

	if f.Year > 0 {
		predicates = append(predicates, "year = ?")
		args = append(args, f.Year)
	}
	if f.Quarter > 0 {
		predicates = append(predicates, "quarter = ?")
		args = append(args, f.Quarter)
	}
	if f.State != "" {
		predicates = append(predicates, "state = ?")
		args = append(args, f.State)
	}
	if withType && f.TransactionType != "" {
		predicates = append(predicates, "transaction_type = ?")
		args = append(args, f.TransactionType)
	}

	if len(predicates) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(predicates, " AND "), args
}
