package transform

import (
	"encoding/json"

	"github.com/jaanu-oss/Phonepae/ETL/models"
)

// Top documents rank states, districts and pincodes separately; the list a
// record came from becomes its entity_type. Null list entries occur in
// historical quarters and are skipped.

// MapTopTransactions maps one top/transaction document into one record per
// ranked entity
func (m *Mapper) MapTopTransactions(doc models.Document) []models.TopTransaction {
	var payload models.TopTransactionData
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		m.logDocumentError(doc, err)
		return nil
	}

	var records []models.TopTransaction

	lists := []struct {
		entityType string
		entries    []*models.TopTransactionEntry
	}{
		{"state", payload.States},
		{"district", payload.Districts},
		{"pincode", payload.Pincodes},
	}

	for _, list := range lists {
		for _, entry := range list.entries {
			if entry == nil {
				continue
			}

			var count any
			var amount any
			if entry.Metric != nil {
				count = entry.Metric.Count
				amount = entry.Metric.Amount
			}

			c, err := CoerceCount(count)
			if err != nil {
				m.logRecordDrop(doc, entry.EntityName, err)
				continue
			}
			a, err := CoerceAmount(amount)
			if err != nil {
				m.logRecordDrop(doc, entry.EntityName, err)
				continue
			}

			records = append(records, models.TopTransaction{
				State:      NormalizeStateName(doc.State),
				Year:       doc.Year,
				Quarter:    doc.Quarter,
				EntityType: list.entityType,
				EntityName: NormalizeEntityName(entry.EntityName),
				Count:      c,
				Amount:     a,
			})
		}
	}

	return records
}

// MapTopUsers maps one top/user document into one record per ranked entity
func (m *Mapper) MapTopUsers(doc models.Document) []models.TopUser {
	var payload models.TopUserData
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		m.logDocumentError(doc, err)
		return nil
	}

	var records []models.TopUser

	lists := []struct {
		entityType string
		entries    []*models.TopUserEntry
	}{
		{"state", payload.States},
		{"district", payload.Districts},
		{"pincode", payload.Pincodes},
	}

	for _, list := range lists {
		for _, entry := range list.entries {
			if entry == nil {
				continue
			}

			name, err := CoerceName(entry.Name)
			if err != nil {
				m.logRecordDrop(doc, "name", err)
				continue
			}
			registered, err := CoerceCount(entry.RegisteredUsers)
			if err != nil {
				m.logRecordDrop(doc, name, err)
				continue
			}

			records = append(records, models.TopUser{
				State:           NormalizeStateName(doc.State),
				Year:            doc.Year,
				Quarter:         doc.Quarter,
				EntityType:      list.entityType,
				EntityName:      NormalizeEntityName(name),
				RegisteredUsers: registered,
			})
		}
	}

	return records
}
