package load

import (
	"time"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// MapLoader loads records into the map_transactions and map_users tables
type MapLoader struct {
	executor *batchExecutor
	logger   *utils.ETLLogger
}

// NewMapLoader creates a new MapLoader
func NewMapLoader(executor *batchExecutor, logger *utils.ETLLogger) *MapLoader {
	return &MapLoader{
		executor: executor,
		logger:   logger,
	}
}

// LoadTransactions upserts map transaction records keyed on
// (state, year, quarter, district)
func (l *MapLoader) LoadTransactions(records []models.MapTransaction) (int, error) {
	if len(records) == 0 {
		l.logger.Debug("No map transaction records to load")
		return 0, nil
	}

	startTime := time.Now()
	records = dedupe(records)
	l.logger.Info("Loading %d map transaction records...", len(records))

	rows := make([][]any, len(records))
	keys := make([]string, len(records))
	for i, r := range records {
		rows[i] = []any{r.State, r.Year, r.Quarter, r.District, r.Count, r.Amount}
		keys[i] = r.Key()
	}

	loaded, err := l.executor.exec(
		"map_transactions",
		`INSERT INTO map_transactions
		(state, year, quarter, district, transaction_count, transaction_amount)`,
		"(?, ?, ?, ?, ?, ?)",
		`ON DUPLICATE KEY UPDATE
		transaction_count = VALUES(transaction_count),
		transaction_amount = VALUES(transaction_amount)`,
		rows, keys,
	)

	l.logger.Info("Loaded %d map transaction records. Duration: %v", loaded, time.Since(startTime))
	return loaded, err
}

// LoadUsers upserts map user records keyed on (state, year, quarter, district)
func (l *MapLoader) LoadUsers(records []models.MapUser) (int, error) {
	if len(records) == 0 {
		l.logger.Debug("No map user records to load")
		return 0, nil
	}

	startTime := time.Now()
	records = dedupe(records)
	l.logger.Info("Loading %d map user records...", len(records))

	rows := make([][]any, len(records))
	keys := make([]string, len(records))
	for i, r := range records {
		rows[i] = []any{r.State, r.Year, r.Quarter, r.District, r.RegisteredUsers, r.AppOpens}
		keys[i] = r.Key()
	}

	loaded, err := l.executor.exec(
		"map_users",
		`INSERT INTO map_users
		(state, year, quarter, district, registered_users, app_opens)`,
		"(?, ?, ?, ?, ?, ?)",
		`ON DUPLICATE KEY UPDATE
		registered_users = VALUES(registered_users),
		app_opens = VALUES(app_opens)`,
		rows, keys,
	)

	l.logger.Info("Loaded %d map user records. Duration: %v", loaded, time.Since(startTime))
	return loaded, err
}
