package load

import (
	"time"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// TopLoader loads records into the top_transactions and top_users tables
type TopLoader struct {
	executor *batchExecutor
	logger   *utils.ETLLogger
}

// NewTopLoader creates a new TopLoader
func NewTopLoader(executor *batchExecutor, logger *utils.ETLLogger) *TopLoader {
	return &TopLoader{
		executor: executor,
		logger:   logger,
	}
}

// LoadTransactions upserts top transaction records keyed on
// (state, year, quarter, entity_type, entity_name)
func (l *TopLoader) LoadTransactions(records []models.TopTransaction) (int, error) {
	if len(records) == 0 {
		l.logger.Debug("No top transaction records to load")
		return 0, nil
	}

	startTime := time.Now()
	records = dedupe(records)
	l.logger.Info("Loading %d top transaction records...", len(records))

	rows := make([][]any, len(records))
	keys := make([]string, len(records))
	for i, r := range records {
		rows[i] = []any{r.State, r.Year, r.Quarter, r.EntityType, r.EntityName, r.Count, r.Amount}
		keys[i] = r.Key()
	}

	loaded, err := l.executor.exec(
		"top_transactions",
		`INSERT INTO top_transactions
		(state, year, quarter, entity_type, entity_name, transaction_count, transaction_amount)`,
		"(?, ?, ?, ?, ?, ?, ?)",
		`ON DUPLICATE KEY UPDATE
		transaction_count = VALUES(transaction_count),
		transaction_amount = VALUES(transaction_amount)`,
		rows, keys,
	)

	l.logger.Info("Loaded %d top transaction records. Duration: %v", loaded, time.Since(startTime))
	return loaded, err
}

// LoadUsers upserts top user records keyed on
// (state, year, quarter, entity_type, entity_name)
func (l *TopLoader) LoadUsers(records []models.TopUser) (int, error) {
	if len(records) == 0 {
		l.logger.Debug("No top user records to load")
		return 0, nil
	}

	startTime := time.Now()
	records = dedupe(records)
	l.logger.Info("Loading %d top user records...", len(records))

	rows := make([][]any, len(records))
	keys := make([]string, len(records))
	for i, r := range records {
		rows[i] = []any{r.State, r.Year, r.Quarter, r.EntityType, r.EntityName, r.RegisteredUsers}
		keys[i] = r.Key()
	}

	loaded, err := l.executor.exec(
		"top_users",
		`INSERT INTO top_users
		(state, year, quarter, entity_type, entity_name, registered_users)`,
		"(?, ?, ?, ?, ?, ?)",
		`ON DUPLICATE KEY UPDATE
		registered_users = VALUES(registered_users)`,
		rows, keys,
	)

	l.logger.Info("Loaded %d top user records. Duration: %v", loaded, time.Since(startTime))
	return loaded, err
}
