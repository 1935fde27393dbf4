package load

import (
	"time"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// TransactionLoader loads records into the aggregated_transactions table
type TransactionLoader struct {
	executor *batchExecutor
	logger   *utils.ETLLogger
}

// NewTransactionLoader creates a new TransactionLoader
func NewTransactionLoader(executor *batchExecutor, logger *utils.ETLLogger) *TransactionLoader {
	return &TransactionLoader{
		executor: executor,
		logger:   logger,
	}
}

// Load upserts aggregated transaction records keyed on
// (state, year, quarter, transaction_type)
func (l *TransactionLoader) Load(records []models.AggregatedTransaction) (int, error) {
	if len(records) == 0 {
		l.logger.Debug("No aggregated transaction records to load")
		return 0, nil
	}

	startTime := time.Now()
	records = dedupe(records)
	l.logger.Info("Loading %d aggregated transaction records...", len(records))

	rows := make([][]any, len(records))
	keys := make([]string, len(records))
	for i, r := range records {
		rows[i] = []any{r.State, r.Year, r.Quarter, r.TransactionType, r.Count, r.Amount}
		keys[i] = r.Key()
	}

	loaded, err := l.executor.exec(
		"aggregated_transactions",
		`INSERT INTO aggregated_transactions
		(state, year, quarter, transaction_type, transaction_count, transaction_amount)`,
		"(?, ?, ?, ?, ?, ?)",
		`ON DUPLICATE KEY UPDATE
		transaction_count = VALUES(transaction_count),
		transaction_amount = VALUES(transaction_amount)`,
		rows, keys,
	)

	l.logger.Info("Loaded %d aggregated transaction records. Duration: %v", loaded, time.Since(startTime))
	return loaded, err
}
