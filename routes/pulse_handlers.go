// routes/pulse_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jaanu-oss/Phonepae/database"
)

// parseFilters reads the optional year/quarter/state/type query parameters.
// A missing or empty parameter leaves its dimension unrestricted.
func parseFilters(r *http.Request) database.Filters {
	query := r.URL.Query()
	var f database.Filters

	if v := query.Get("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			f.Year = year
		}
	}
	if v := query.Get("quarter"); v != "" {
		if quarter, err := strconv.Atoi(v); err == nil && quarter >= 1 && quarter <= 4 {
			f.Quarter = quarter
		}
	}
	f.State = query.Get("state")
	f.TransactionType = query.Get("type")

	return f
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// GetMetaHandler returns the distinct filter values present in the store
func GetMetaHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta, err := database.GetMeta(db)
		if err != nil {
			log.Printf("Failed to load filter metadata: %v", err)
			http.Error(w, "Failed to load filter metadata", http.StatusInternalServerError)
			return
		}
		writeJSON(w, meta)
	}
}

// GetTransactionsHandler returns aggregated transactions grouped by type
func GetTransactionsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := database.GetTransactionsByType(db, parseFilters(r))
		if err != nil {
			log.Printf("Failed to query transactions: %v", err)
			http.Error(w, "Failed to query transactions", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}
}

// GetTransactionsByStateHandler returns map transactions grouped by state
func GetTransactionsByStateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := database.GetTransactionsByState(db, parseFilters(r))
		if err != nil {
			log.Printf("Failed to query transactions by state: %v", err)
			http.Error(w, "Failed to query transactions by state", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}
}

// GetUsersByStateHandler returns map users grouped by state
func GetUsersByStateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := database.GetUsersByState(db, parseFilters(r))
		if err != nil {
			log.Printf("Failed to query users by state: %v", err)
			http.Error(w, "Failed to query users by state", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}
}

// GetTopHandler returns ranked entities for /api/top/{entity}.
// {entity} is "transactions" or "users"; entity_type and limit come from
// query parameters.
func GetTopHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		filters := parseFilters(r)

		entityType := r.URL.Query().Get("entityType")
		if entityType == "" {
			entityType = "state"
		}
		if entityType != "state" && entityType != "district" && entityType != "pincode" {
			http.Error(w, "entityType must be state, district or pincode", http.StatusBadRequest)
			return
		}

		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		var rows []database.TopEntityRow
		var err error

		switch vars["entity"] {
		case "transactions":
			rows, err = database.GetTopTransactions(db, filters, entityType, limit)
		case "users":
			rows, err = database.GetTopUsers(db, filters, entityType, limit)
		default:
			http.Error(w, "Unknown entity, expected transactions or users", http.StatusNotFound)
			return
		}

		if err != nil {
			log.Printf("Failed to query top %s: %v", vars["entity"], err)
			http.Error(w, "Failed to query ranked entities", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}
}
