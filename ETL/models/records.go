package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AggregatedTransaction is a fact row for the aggregated_transactions table.
// Keyed by (state, year, quarter, transaction_type).
type AggregatedTransaction struct {
	State           string
	Year            int
	Quarter         int
	TransactionType string
	Count           int64
	Amount          decimal.Decimal
}

// Key returns the composite natural key of the record
func (r AggregatedTransaction) Key() string {
	return fmt.Sprintf("%s|%d|%d|%s", r.State, r.Year, r.Quarter, r.TransactionType)
}

// AggregatedUser is a fact row for the aggregated_users table.
// Keyed by (state, year, quarter).
type AggregatedUser struct {
	State           string
	Year            int
	Quarter         int
	RegisteredUsers int64
	AppOpens        int64
}

// Key returns the composite natural key of the record
func (r AggregatedUser) Key() string {
	return fmt.Sprintf("%s|%d|%d", r.State, r.Year, r.Quarter)
}

// MapTransaction is a fact row for the map_transactions table.
// Keyed by (state, year, quarter, district).
type MapTransaction struct {
	State    string
	Year     int
	Quarter  int
	District string
	Count    int64
	Amount   decimal.Decimal
}

// Key returns the composite natural key of the record
func (r MapTransaction) Key() string {
	return fmt.Sprintf("%s|%d|%d|%s", r.State, r.Year, r.Quarter, r.District)
}

// MapUser is a fact row for the map_users table.
// Keyed by (state, year, quarter, district).
type MapUser struct {
	State           string
	Year            int
	Quarter         int
	District        string
	RegisteredUsers int64
	AppOpens        int64
}

// Key returns the composite natural key of the record
func (r MapUser) Key() string {
	return fmt.Sprintf("%s|%d|%d|%s", r.State, r.Year, r.Quarter, r.District)
}

// TopTransaction is a fact row for the top_transactions table.
// Keyed by (state, year, quarter, entity_type, entity_name).
type TopTransaction struct {
	State      string
	Year       int
	Quarter    int
	EntityType string // "state", "district" or "pincode"
	EntityName string
	Count      int64
	Amount     decimal.Decimal
}

// Key returns the composite natural key of the record
func (r TopTransaction) Key() string {
	return fmt.Sprintf("%s|%d|%d|%s|%s", r.State, r.Year, r.Quarter, r.EntityType, r.EntityName)
}

// TopUser is a fact row for the top_users table.
// Keyed by (state, year, quarter, entity_type, entity_name).
type TopUser struct {
	State           string
	Year            int
	Quarter         int
	EntityType      string
	EntityName      string
	RegisteredUsers int64
}

// Key returns the composite natural key of the record
func (r TopUser) Key() string {
	return fmt.Sprintf("%s|%d|%d|%s|%s", r.State, r.Year, r.Quarter, r.EntityType, r.EntityName)
}

// TransformedData holds the flat records produced by the transform phase,
// one slice per target fact table
type TransformedData struct {
	AggregatedTransactions []AggregatedTransaction
	AggregatedUsers        []AggregatedUser
	MapTransactions        []MapTransaction
	MapUsers               []MapUser
	TopTransactions        []TopTransaction
	TopUsers               []TopUser
}

// TotalRecords returns the total number of records across all tables
func (d *TransformedData) TotalRecords() int {
	return len(d.AggregatedTransactions) +
		len(d.AggregatedUsers) +
		len(d.MapTransactions) +
		len(d.MapUsers) +
		len(d.TopTransactions) +
		len(d.TopUsers)
}
