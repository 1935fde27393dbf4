package load

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// Loader writes flat records into the six fact tables
type Loader interface {
	// LoadAggregatedTransactions upserts aggregated transaction records
	LoadAggregatedTransactions(records []models.AggregatedTransaction) (int, error)

	// LoadAggregatedUsers upserts aggregated user records
	LoadAggregatedUsers(records []models.AggregatedUser) (int, error)

	// LoadMapTransactions upserts map transaction records
	LoadMapTransactions(records []models.MapTransaction) (int, error)

	// LoadMapUsers upserts map user records
	LoadMapUsers(records []models.MapUser) (int, error)

	// LoadTopTransactions upserts top transaction records
	LoadTopTransactions(records []models.TopTransaction) (int, error)

	// LoadTopUsers upserts top user records
	LoadTopUsers(records []models.TopUser) (int, error)
}

// PulseLoader implements Loader against MySQL
type PulseLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger

	transactionLoader *TransactionLoader
	userLoader        *UserLoader
	mapLoader         *MapLoader
	topLoader         *TopLoader
}

// NewPulseLoader creates a new PulseLoader
func NewPulseLoader(db *sql.DB, logger *utils.ETLLogger, batchSize int) *PulseLoader {
	executor := newBatchExecutor(db, logger, batchSize)

	return &PulseLoader{
		db:                db,
		logger:            logger,
		transactionLoader: NewTransactionLoader(executor, logger),
		userLoader:        NewUserLoader(executor, logger),
		mapLoader:         NewMapLoader(executor, logger),
		topLoader:         NewTopLoader(executor, logger),
	}
}

// LoadAggregatedTransactions upserts aggregated transaction records
func (l *PulseLoader) LoadAggregatedTransactions(records []models.AggregatedTransaction) (int, error) {
	return l.transactionLoader.Load(records)
}

// LoadAggregatedUsers upserts aggregated user records
func (l *PulseLoader) LoadAggregatedUsers(records []models.AggregatedUser) (int, error) {
	return l.userLoader.Load(records)
}

// LoadMapTransactions upserts map transaction records
func (l *PulseLoader) LoadMapTransactions(records []models.MapTransaction) (int, error) {
	return l.mapLoader.LoadTransactions(records)
}

// LoadMapUsers upserts map user records
func (l *PulseLoader) LoadMapUsers(records []models.MapUser) (int, error) {
	return l.mapLoader.LoadUsers(records)
}

// LoadTopTransactions upserts top transaction records
func (l *PulseLoader) LoadTopTransactions(records []models.TopTransaction) (int, error) {
	return l.topLoader.LoadTransactions(records)
}

// LoadTopUsers upserts top user records
func (l *PulseLoader) LoadTopUsers(records []models.TopUser) (int, error) {
	return l.topLoader.LoadUsers(records)
}

// keyed is satisfied by every fact record type
type keyed interface {
	Key() string
}

// dedupe removes duplicate composite keys from a batch, keeping the last
// record for each key. The store would resolve duplicates the same way via
// the upsert, but a single multi-row statement must not touch one key twice.
func dedupe[T keyed](records []T) []T {
	if len(records) == 0 {
		return records
	}

	index := make(map[string]int, len(records))
	result := make([]T, 0, len(records))

	for _, record := range records {
		if i, ok := index[record.Key()]; ok {
			result[i] = record
			continue
		}
		index[record.Key()] = len(result)
		result = append(result, record)
	}

	return result
}

// batchExecutor submits multi-row upsert statements in bounded chunks,
// one transaction per chunk. A failed chunk is logged with the table name
// and its first key, then skipped; remaining chunks continue.
type batchExecutor struct {
	db        *sql.DB
	logger    *utils.ETLLogger
	batchSize int
}

func newBatchExecutor(db *sql.DB, logger *utils.ETLLogger, batchSize int) *batchExecutor {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &batchExecutor{
		db:        db,
		logger:    logger,
		batchSize: batchSize,
	}
}

// exec upserts all rows into table. insertHead names the columns, row is the
// per-row placeholder group, updateClause the ON DUPLICATE KEY UPDATE tail.
// rows carries the bind arguments per record and keys the matching composite
// keys for diagnostics. Returns the number of rows submitted successfully.
func (e *batchExecutor) exec(table, insertHead, row, updateClause string, rows [][]any, keys []string) (int, error) {
	loaded := 0
	var lastErr error

	for start := 0; start < len(rows); start += e.batchSize {
		end := start + e.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*len(chunk[0]))
		for i, r := range chunk {
			placeholders[i] = row
			args = append(args, r...)
		}

		query := fmt.Sprintf("%s VALUES %s %s", insertHead, strings.Join(placeholders, ", "), updateClause)

		if err := e.execChunk(query, args); err != nil {
			e.logger.Error("Failed to load batch into %s (first key: %s, %d rows): %v",
				table, keys[start], len(chunk), err)
			lastErr = fmt.Errorf("failed to load batch into %s: %w", table, err)
			continue
		}

		loaded += len(chunk)
	}

	return loaded, lastErr
}

func (e *batchExecutor) execChunk(query string, args []any) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(query, args...); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
