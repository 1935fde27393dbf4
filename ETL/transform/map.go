package transform

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jaanu-oss/Phonepae/ETL/models"
)

// Map documents exist at two levels. Country-level documents list one entry
// per state, and the entry doubles as its own district; state-level documents
// list one entry per district of the path-derived state.

// MapMapTransactions maps one map/transaction document into one record per
// hover entry, summing the entry's metric list
func (m *Mapper) MapMapTransactions(doc models.Document) []models.MapTransaction {
	var payload models.MapTransactionData
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		m.logDocumentError(doc, err)
		return nil
	}

	countryLevel := doc.State == countryName

	var records []models.MapTransaction

	for _, entry := range payload.HoverDataList {
		var count int64
		amount := decimal.Zero
		failed := false

		for _, metric := range entry.Metric {
			c, err := CoerceCount(metric.Count)
			if err != nil {
				m.logRecordDrop(doc, entry.Name, err)
				failed = true
				break
			}
			a, err := CoerceAmount(metric.Amount)
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

		state := doc.State
		if countryLevel {
			state = entry.Name
		}

		records = append(records, models.MapTransaction{
			State:    NormalizeStateName(state),
			Year:     doc.Year,
			Quarter:  doc.Quarter,
			District: NormalizeEntityName(entry.Name),
			Count:    count,
			Amount:   amount.Round(2),
		})
	}

	return records
}

// MapMapUsers maps one map/user document into one record per hover entry
func (m *Mapper) MapMapUsers(doc models.Document) []models.MapUser {
	var payload models.MapUserData
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		m.logDocumentError(doc, err)
		return nil
	}

	countryLevel := doc.State == countryName

	var records []models.MapUser

	for name, entry := range payload.HoverData {
		registered, err := CoerceCount(entry.RegisteredUsers)
		if err != nil {
			m.logRecordDrop(doc, name, err)
			continue
		}
		appOpens, err := CoerceCount(entry.AppOpens)
		if err != nil {
			m.logRecordDrop(doc, name, err)
			continue
		}

		state := doc.State
		if countryLevel {
			state = name
		}

		records = append(records, models.MapUser{
			State:           NormalizeStateName(state),
			Year:            doc.Year,
			Quarter:         doc.Quarter,
			District:        NormalizeEntityName(name),
			RegisteredUsers: registered,
			AppOpens:        appOpens,
		})
	}

	return records
}
