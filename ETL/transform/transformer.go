package transform

import (
	"time"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// countryName matches the country segment of the source tree; documents whose
// path-derived state equals it are country-level documents
const countryName = "india"

// Mapper converts parsed documents into flat fact records, one mapping
// method per document variant. Records that fail coercion are dropped and
// counted, never aborting the document.
type Mapper struct {
	logger  *utils.ETLLogger
	dropped int
}

// NewMapper creates a new Mapper
func NewMapper(logger *utils.ETLLogger) *Mapper {
	return &Mapper{
		logger: logger,
	}
}

// Dropped returns the number of records dropped over the mapper's lifetime
func (m *Mapper) Dropped() int {
	return m.dropped
}

func (m *Mapper) logDocumentError(doc models.Document, err error) {
	m.logger.Error("Structural error in %s, skipping document: %v", doc.Path, err)
}

func (m *Mapper) logRecordDrop(doc models.Document, name string, err error) {
	m.dropped++
	m.logger.Error("Dropping record %q from %s: %v", name, doc.Path, err)
}

// Transformer coordinates the transform phase: it feeds every extracted
// document through the mapper and collects the per-table record slices.
type Transformer struct {
	logger *utils.ETLLogger
	mapper *Mapper
}

// NewTransformer creates a new Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		logger: logger,
		mapper: NewMapper(logger),
	}
}

// Transform maps all extracted documents into flat records
func (t *Transformer) Transform(extracted *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Info("Starting Transform phase (mapping documents to records)")

	transformed := &models.TransformedData{}

	// 1. Aggregated transactions
	for _, doc := range extracted.AggregatedTransactions {
		transformed.AggregatedTransactions = append(transformed.AggregatedTransactions, t.mapper.MapAggregatedTransactions(doc)...)
	}
	t.logger.Info("Mapped %d aggregated transaction records", len(transformed.AggregatedTransactions))

	// 2. Aggregated users
	for _, doc := range extracted.AggregatedUsers {
		transformed.AggregatedUsers = append(transformed.AggregatedUsers, t.mapper.MapAggregatedUsers(doc)...)
	}
	t.logger.Info("Mapped %d aggregated user records", len(transformed.AggregatedUsers))

	// 3. Map transactions
	for _, doc := range extracted.MapTransactions {
		transformed.MapTransactions = append(transformed.MapTransactions, t.mapper.MapMapTransactions(doc)...)
	}
	t.logger.Info("Mapped %d map transaction records", len(transformed.MapTransactions))

	// 4. Map users
	for _, doc := range extracted.MapUsers {
		transformed.MapUsers = append(transformed.MapUsers, t.mapper.MapMapUsers(doc)...)
	}
	t.logger.Info("Mapped %d map user records", len(transformed.MapUsers))

	// 5. Top transactions
	for _, doc := range extracted.TopTransactions {
		transformed.TopTransactions = append(transformed.TopTransactions, t.mapper.MapTopTransactions(doc)...)
	}
	t.logger.Info("Mapped %d top transaction records", len(transformed.TopTransactions))

	// 6. Top users
	for _, doc := range extracted.TopUsers {
		transformed.TopUsers = append(transformed.TopUsers, t.mapper.MapTopUsers(doc)...)
	}
	t.logger.Info("Mapped %d top user records", len(transformed.TopUsers))

	if dropped := t.mapper.Dropped(); dropped > 0 {
		t.logger.Info("Dropped %d records during mapping (see error log)", dropped)
	}

	t.logger.Info("Transform phase finished. %d records total. Duration: %v",
		transformed.TotalRecords(), time.Since(startTime))

	return transformed, nil
}
