// database/filters_test.go
package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereClauseEmptyFilters(t *testing.T) {
	where, args := Filters{}.whereClause(true)

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestWhereClauseAllFilters(t *testing.T) {
	f := Filters{Year: 2023, Quarter: 2, State: "Karnataka", TransactionType: "Merchant payments"}

	where, args := f.whereClause(true)

	assert.Equal(t, " WHERE year = ? AND quarter = ? AND state = ? AND transaction_type = ?", where)
	assert.Equal(t, []any{2023, 2, "Karnataka", "Merchant payments"}, args)
}

func TestWhereClauseTypeIgnoredWithoutTypeColumn(t *testing.T) {
	f := Filters{State: "Karnataka", TransactionType: "Merchant payments"}

	where, args := f.whereClause(false)

	assert.Equal(t, " WHERE state = ?", where)
	assert.Equal(t, []any{"Karnataka"}, args)
}
