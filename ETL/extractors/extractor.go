package extractors

import (
	"fmt"
	"os"
	"time"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// Extractor coordinates the extract phase: it walks the six category
// subtrees of the cloned data directory and collects parsed documents.
type Extractor struct {
	logger *utils.ETLLogger
	walker *DocumentWalker
}

// NewExtractor creates a new Extractor
func NewExtractor(logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		logger: logger,
		walker: NewDocumentWalker(logger),
	}
}

// Extract walks all six category subtrees under dataDir.
// A missing individual subtree is logged and skipped; a missing dataDir
// means there is nothing to process at all and is an error.
func (e *Extractor) Extract(dataDir string) (*models.ExtractedData, int, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	if _, err := os.Stat(dataDir); err != nil {
		return nil, 0, fmt.Errorf("data directory %s is not accessible: %w", dataDir, err)
	}

	var extracted models.ExtractedData
	skipped := 0

	// 1. Aggregated transactions and users
	var n int
	extracted.AggregatedTransactions, n = e.walker.Walk(dataDir, models.CategoryAggregated, models.KindTransaction)
	skipped += n
	e.logger.Info("Found %d aggregated transaction documents", len(extracted.AggregatedTransactions))

	extracted.AggregatedUsers, n = e.walker.Walk(dataDir, models.CategoryAggregated, models.KindUser)
	skipped += n
	e.logger.Info("Found %d aggregated user documents", len(extracted.AggregatedUsers))

	// 2. Map transactions and users (country and per-state subtrees)
	extracted.MapTransactions, n = e.walker.Walk(dataDir, models.CategoryMap, models.KindTransaction)
	skipped += n
	e.logger.Info("Found %d map transaction documents", len(extracted.MapTransactions))

	extracted.MapUsers, n = e.walker.Walk(dataDir, models.CategoryMap, models.KindUser)
	skipped += n
	e.logger.Info("Found %d map user documents", len(extracted.MapUsers))

	// 3. Top transactions and users
	extracted.TopTransactions, n = e.walker.Walk(dataDir, models.CategoryTop, models.KindTransaction)
	skipped += n
	e.logger.Info("Found %d top transaction documents", len(extracted.TopTransactions))

	extracted.TopUsers, n = e.walker.Walk(dataDir, models.CategoryTop, models.KindUser)
	skipped += n
	e.logger.Info("Found %d top user documents", len(extracted.TopUsers))

	e.logger.LogExtractComplete(extracted.TotalDocuments(), skipped, time.Since(startTime))

	return &extracted, skipped, nil
}
