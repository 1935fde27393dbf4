package transform

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jaanu-oss/Phonepae/ETL/models"
)

// MapAggregatedTransactions maps one aggregated/transaction document into
// one record per transaction type, summing its per-instrument breakdowns.
// A coercion failure drops the single type record, not the document.
func (m *Mapper) MapAggregatedTransactions(doc models.Document) []models.AggregatedTransaction {
	var payload models.AggregatedTransactionData
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		m.logDocumentError(doc, err)
		return nil
	}

	var records []models.AggregatedTransaction

	for _, entry := range payload.TransactionData {
		var count int64
		amount := decimal.Zero
		failed := false

		for _, instrument := range entry.PaymentInstruments {
			c, err := CoerceCount(instrument.Count)
			if err != nil {
				m.logRecordDrop(doc, entry.Name, err)
				failed = true
				break
			}
			a, err := CoerceAmount(instrument.Amount)
			if err != nil {
				m.logRecordDrop(doc, entry.Name, err)
				failed = true
				break
			}
			count += c
			amount = amount.Add(a)
		}
		if failed {
			continue
		}

		records = append(records, models.AggregatedTransaction{
			State:           NormalizeStateName(doc.State),
			Year:            doc.Year,
			Quarter:         doc.Quarter,
			TransactionType: CleanString(entry.Name),
			Count:           count,
			Amount:          amount.Round(2),
		})
	}

	return records
}

// MapAggregatedUsers maps one aggregated/user document into a single record.
// A missing aggregated block emits nothing.
func (m *Mapper) MapAggregatedUsers(doc models.Document) []models.AggregatedUser {
	var payload models.AggregatedUserData
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		m.logDocumentError(doc, err)
		return nil
	}

	if payload.Aggregated == nil {
		return nil
	}

	registered, err := CoerceCount(payload.Aggregated.RegisteredUsers)
	if err != nil {
		m.logRecordDrop(doc, "registeredUsers", err)
		return nil
	}
	appOpens, err := CoerceCount(payload.Aggregated.AppOpens)
	if err != nil {
		m.logRecordDrop(doc, "appOpens", err)
		return nil
	}

	return []models.AggregatedUser{{
		State:           NormalizeStateName(doc.State),
		Year:            doc.Year,
		Quarter:         doc.Quarter,
		RegisteredUsers: registered,
		AppOpens:        appOpens,
	}}
}
