// database/pulse_query_test.go
package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTransactionsByTypeNoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rows := sqlmock.NewRows([]string{"transaction_type", "count", "amount"}).
		AddRow("Merchant payments", int64(500), 12345.67).
		AddRow("Recharge bill payments", int64(300), 999.99)

	mock.ExpectQuery(`SELECT transaction_type, SUM\(transaction_count\), SUM\(transaction_amount\) FROM aggregated_transactions GROUP BY transaction_type`).
		WillReturnRows(rows)

	result, err := GetTransactionsByType(db, Filters{})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Merchant payments", result[0].TransactionType)
	assert.Equal(t, int64(500), result[0].Count)
	assert.InDelta(t, 12345.67, result[0].Amount, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionsByTypeWithFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`FROM aggregated_transactions WHERE year = \? AND quarter = \? AND state = \? AND transaction_type = \?`).
		WithArgs(2023, 2, "Karnataka", "Merchant payments").
		WillReturnRows(sqlmock.NewRows([]string{"transaction_type", "count", "amount"}).
			AddRow("Merchant payments", int64(10), 100.0))

	result, err := GetTransactionsByType(db, Filters{
		Year:            2023,
		Quarter:         2,
		State:           "Karnataka",
		TransactionType: "Merchant payments",
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionsByStateEmptyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`FROM map_transactions WHERE year = \?`).
		WithArgs(2019).
		WillReturnRows(sqlmock.NewRows([]string{"state", "count", "amount"}))

	result, err := GetTransactionsByState(db, Filters{Year: 2019})

	// An unusual filter combination yields an empty slice, never an error
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsersByState(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`SELECT state, SUM\(registered_users\), SUM\(app_opens\) FROM map_users`).
		WillReturnRows(sqlmock.NewRows([]string{"state", "registered_users", "app_opens"}).
			AddRow("Maharashtra", int64(9000), int64(40000)))

	result, err := GetUsersByState(db, Filters{})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Maharashtra", result[0].State)
	assert.Equal(t, int64(9000), result[0].RegisteredUsers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopTransactionsAppendsEntityTypeAndLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`FROM top_transactions WHERE year = \? AND entity_type = \? GROUP BY entity_name .+ LIMIT \?`).
		WithArgs(2023, "district", 10).
		WillReturnRows(sqlmock.NewRows([]string{"entity_name", "count", "amount"}).
			AddRow("bengaluru urban", int64(77), 777.0))

	result, err := GetTopTransactions(db, Filters{Year: 2023}, "district", 10)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "bengaluru urban", result[0].EntityName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopUsersWithoutFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`FROM top_users WHERE entity_type = \? GROUP BY entity_name .+ LIMIT \?`).
		WithArgs("pincode", 5).
		WillReturnRows(sqlmock.NewRows([]string{"entity_name", "registered_users"}).
			AddRow("560001", int64(123)))

	result, err := GetTopUsers(db, Filters{}, "pincode", 5)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(123), result[0].RegisteredUsers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMeta(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`SELECT DISTINCT year FROM aggregated_transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"year"}).AddRow(2023).AddRow(2022))
	mock.ExpectQuery(`SELECT DISTINCT state FROM map_transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow("Karnataka"))
	mock.ExpectQuery(`SELECT DISTINCT transaction_type FROM aggregated_transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_type"}).AddRow("Merchant payments"))

	meta, err := GetMeta(db)

	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2022}, meta.Years)
	assert.Equal(t, []string{"Karnataka"}, meta.States)
	assert.Equal(t, []string{"Merchant payments"}, meta.TransactionTypes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
