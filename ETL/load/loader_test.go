package load

import (
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// chdir stands in for t.Chdir, which requires Go 1.24
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

// newTestLogger builds a logger whose log file lands in a throwaway directory
func newTestLogger(t *testing.T) *utils.ETLLogger {
	t.Helper()
	chdir(t, t.TempDir())
	return utils.NewETLLogger(false)
}

func newMockDB(t *testing.T) (*PulseLoader, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPulseLoader(db, newTestLogger(t), 500), mock
}

func TestDedupeKeepsLastRecordPerKey(t *testing.T) {
	records := []models.AggregatedUser{
		{State: "Karnataka", Year: 2023, Quarter: 1, RegisteredUsers: 10},
		{State: "Punjab", Year: 2023, Quarter: 1, RegisteredUsers: 20},
		{State: "Karnataka", Year: 2023, Quarter: 1, RegisteredUsers: 30},
	}

	deduped := dedupe(records)

	require.Len(t, deduped, 2)
	// Last record wins, first position is kept
	assert.Equal(t, "Karnataka", deduped[0].State)
	assert.Equal(t, int64(30), deduped[0].RegisteredUsers)
	assert.Equal(t, "Punjab", deduped[1].State)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, dedupe([]models.AggregatedUser{}))
}

func TestLoadAggregatedTransactionsUpsert(t *testing.T) {
	loader, mock := newMockDB(t)

	amount := decimal.RequireFromString("1250.50")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO aggregated_transactions.+VALUES \(\?, \?, \?, \?, \?, \?\).+ON DUPLICATE KEY UPDATE.+transaction_amount = VALUES\(transaction_amount\)`).
		WithArgs("Karnataka", 2023, 2, "Merchant payments", int64(150), amount).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	loaded, err := loader.LoadAggregatedTransactions([]models.AggregatedTransaction{
		{State: "Karnataka", Year: 2023, Quarter: 2, TransactionType: "Merchant payments", Count: 150, Amount: amount},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDeduplicatesWithinOneStatement(t *testing.T) {
	loader, mock := newMockDB(t)

	// Two records collide on the composite key; the statement must carry
	// only the last one
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO aggregated_users.+VALUES \(\?, \?, \?, \?, \?\)`).
		WithArgs("Kerala", 2022, 4, int64(999), int64(50)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	loaded, err := loader.LoadAggregatedUsers([]models.AggregatedUser{
		{State: "Kerala", Year: 2022, Quarter: 4, RegisteredUsers: 100, AppOpens: 10},
		{State: "Kerala", Year: 2022, Quarter: 4, RegisteredUsers: 999, AppOpens: 50},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadContinuesAfterFailedBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Batch size 1 splits two records into two statements; the first fails
	loader := NewPulseLoader(db, newTestLogger(t), 1)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO aggregated_users`).
		WithArgs("Kerala", 2022, 4, int64(100), int64(10)).
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO aggregated_users`).
		WithArgs("Punjab", 2022, 4, int64(200), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	loaded, err := loader.LoadAggregatedUsers([]models.AggregatedUser{
		{State: "Kerala", Year: 2022, Quarter: 4, RegisteredUsers: 100, AppOpens: 10},
		{State: "Punjab", Year: 2022, Quarter: 4, RegisteredUsers: 200, AppOpens: 20},
	})

	assert.Error(t, err)
	assert.Equal(t, 1, loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadEmptyBatchTouchesNothing(t *testing.T) {
	loader, mock := newMockDB(t)

	loaded, err := loader.LoadTopUsers(nil)

	require.NoError(t, err)
	assert.Zero(t, loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTopTransactionsMultiRow(t *testing.T) {
	loader, mock := newMockDB(t)

	amount := decimal.RequireFromString("50.00")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO top_transactions.+VALUES \(\?, \?, \?, \?, \?, \?, \?\), \(\?, \?, \?, \?, \?, \?, \?\)`).
		WithArgs(
			"India", 2023, 1, "state", "karnataka", int64(5), amount,
			"India", 2023, 1, "district", "bengaluru urban", int64(3), amount,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	loaded, err := loader.LoadTopTransactions([]models.TopTransaction{
		{State: "India", Year: 2023, Quarter: 1, EntityType: "state", EntityName: "karnataka", Count: 5, Amount: amount},
		{State: "India", Year: 2023, Quarter: 1, EntityType: "district", EntityName: "bengaluru urban", Count: 3, Amount: amount},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}
