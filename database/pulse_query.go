// database/pulse_query.go
package database

import (
	"database/sql"
	"fmt"
)

// Read-only aggregate queries backing the dashboard. Every function returns
// an empty (non-nil) slice when no rows match, so an unusual filter
// combination renders as an empty chart rather than an error.

// TransactionTypeRow is a transaction aggregate grouped by type
type TransactionTypeRow struct {
	TransactionType string  `json:"transactionType"`
	Count           int64   `json:"count"`
	Amount          float64 `json:"amount"`
}

// StateTransactionRow is a transaction aggregate grouped by state
type StateTransactionRow struct {
	State  string  `json:"state"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// StateUserRow is a user aggregate grouped by state
type StateUserRow struct {
	State           string `json:"state"`
	RegisteredUsers int64  `json:"registeredUsers"`
	AppOpens        int64  `json:"appOpens"`
}

// TopEntityRow is one ranked entity with its measures
type TopEntityRow struct {
	EntityName      string  `json:"entityName"`
	Count           int64   `json:"count"`
	Amount          float64 `json:"amount"`
	RegisteredUsers int64   `json:"registeredUsers"`
}

// Meta lists the distinct filter values present in the store
type Meta struct {
	Years            []int    `json:"years"`
	States           []string `json:"states"`
	TransactionTypes []string `json:"transactionTypes"`
}

// GetTransactionsByType sums aggregated transactions grouped by type
func GetTransactionsByType(db *sql.DB, f Filters) ([]TransactionTypeRow, error) {
	where, args := f.whereClause(true)
	query := `
		SELECT transaction_type, SUM(transaction_count), SUM(transaction_amount)
		FROM aggregated_transactions` + where + `
		GROUP BY transaction_type
		ORDER BY SUM(transaction_amount) DESC
	`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by type: %w", err)
	}
	defer rows.Close()

	result := []TransactionTypeRow{}
	for rows.Next() {
		var row TransactionTypeRow
		if err := rows.Scan(&row.TransactionType, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction type row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// GetTransactionsByState sums map transactions grouped by state
func GetTransactionsByState(db *sql.DB, f Filters) ([]StateTransactionRow, error) {
	where, args := f.whereClause(false)
	query := `
		SELECT state, SUM(transaction_count), SUM(transaction_amount)
		FROM map_transactions` + where + `
		GROUP BY state
		ORDER BY SUM(transaction_amount) DESC
	`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by state: %w", err)
	}
	defer rows.Close()

	result := []StateTransactionRow{}
	for rows.Next() {
		var row StateTransactionRow
		if err := rows.Scan(&row.State, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan state transaction row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// GetUsersByState sums map users grouped by state
func GetUsersByState(db *sql.DB, f Filters) ([]StateUserRow, error) {
	where, args := f.whereClause(false)
	query := `
		SELECT state, SUM(registered_users), SUM(app_opens)
		FROM map_users` + where + `
		GROUP BY state
		ORDER BY SUM(registered_users) DESC
	`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by state: %w", err)
	}
	defer rows.Close()

	result := []StateUserRow{}
	for rows.Next() {
		var row StateUserRow
		if err := rows.Scan(&row.State, &row.RegisteredUsers, &row.AppOpens); err != nil {
			return nil, fmt.Errorf("failed to scan state user row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// GetTopTransactions returns the highest-value entities of one entity type
func GetTopTransactions(db *sql.DB, f Filters, entityType string, limit int) ([]TopEntityRow, error) {
	where, args := f.whereClause(false)
	if where == "" {
		where = " WHERE entity_type = ?"
	} else {
		where += " AND entity_type = ?"
	}
	args = append(args, entityType)

	query := `
		SELECT entity_name, SUM(transaction_count), SUM(transaction_amount)
		FROM top_transactions` + where + `
		GROUP BY entity_name
		ORDER BY SUM(transaction_amount) DESC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top transactions: %w", err)
	}
	defer rows.Close()

	result := []TopEntityRow{}
	for rows.Next() {
		var row TopEntityRow
		if err := rows.Scan(&row.EntityName, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan top transaction row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// GetTopUsers returns the entities with the most registered users of one
// entity type
func GetTopUsers(db *sql.DB, f Filters, entityType string, limit int) ([]TopEntityRow, error) {
	where, args := f.whereClause(false)
	if where == "" {
		where = " WHERE entity_type = ?"
	} else {
		where += " AND entity_type = ?"
	}
	args = append(args, entityType)

	query := `
		SELECT entity_name, SUM(registered_users)
		FROM top_users` + where + `
		GROUP BY entity_name
		ORDER BY SUM(registered_users) DESC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer rows.Close()

	result := []TopEntityRow{}
	for rows.Next() {
		var row TopEntityRow
		if err := rows.Scan(&row.EntityName, &row.RegisteredUsers); err != nil {
			return nil, fmt.Errorf("failed to scan top user row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// GetMeta returns the distinct filter values present in the store
func GetMeta(db *sql.DB) (*Meta, error) {
	meta := &Meta{
		Years:            []int{},
		States:           []string{},
		TransactionTypes: []string{},
	}

	rows, err := db.Query("SELECT DISTINCT year FROM aggregated_transactions ORDER BY year DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		meta.Years = append(meta.Years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Query("SELECT DISTINCT state FROM map_transactions ORDER BY state")
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		meta.States = append(meta.States, state)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Query("SELECT DISTINCT transaction_type FROM aggregated_transactions ORDER BY transaction_type")
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction types: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var transactionType string
		if err := rows.Scan(&transactionType); err != nil {
			return nil, fmt.Errorf("failed to scan transaction type: %w", err)
		}
		meta.TransactionTypes = append(meta.TransactionTypes, transactionType)
	}

	return meta, rows.Err()
}
