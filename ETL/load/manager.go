package load

import (
	"database/sql"
	"time"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// LoadManager runs the load phase. Each table is loaded independently:
// a failed batch in one table never blocks the others.
type LoadManager struct {
	db     *sql.DB
	logger *utils.ETLLogger
	loader Loader
}

// NewLoadManager creates a new LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger, batchSize int) *LoadManager {
	return &LoadManager{
		db:     db,
		logger: logger,
		loader: NewPulseLoader(db, logger, batchSize),
	}
}

// Load upserts all transformed records into the six fact tables.
// It returns the number of rows loaded and the number of failed batches.
func (m *LoadManager) Load(transformed *models.TransformedData) (int, int) {
	startTime := time.Now()
	m.logger.Info("Starting Load phase (upserting records)")

	totalLoaded := 0
	failedBatches := 0

	// 1. Aggregated transactions
	loaded, err := m.loader.LoadAggregatedTransactions(transformed.AggregatedTransactions)
	totalLoaded += loaded
	if err != nil {
		failedBatches++
	}

	// 2. Aggregated users
	loaded, err = m.loader.LoadAggregatedUsers(transformed.AggregatedUsers)
	totalLoaded += loaded
	if err != nil {
		failedBatches++
	}

	// 3. Map transactions
	loaded, err = m.loader.LoadMapTransactions(transformed.MapTransactions)
	totalLoaded += loaded
	if err != nil {
		failedBatches++
	}

	// 4. Map users
	loaded, err = m.loader.LoadMapUsers(transformed.MapUsers)
	totalLoaded += loaded
	if err != nil {
		failedBatches++
	}

	// 5. Top transactions
	loaded, err = m.loader.LoadTopTransactions(transformed.TopTransactions)
	totalLoaded += loaded
	if err != nil {
		failedBatches++
	}

	// 6. Top users
	loaded, err = m.loader.LoadTopUsers(transformed.TopUsers)
	totalLoaded += loaded
	if err != nil {
		failedBatches++
	}

	if failedBatches > 0 {
		m.logger.Error("Load phase finished with %d table(s) reporting failed batches", failedBatches)
	}
	m.logger.Info("Load phase finished. Loaded %d records. Duration: %v", totalLoaded, time.Since(startTime))

	return totalLoaded, failedBatches
}
