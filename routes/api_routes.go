// routes/api_routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes registers the dashboard API and the static chart page.
// Every API route is read-only; nothing under /api mutates the store.
func SetupRoutes(router *mux.Router, db *sql.DB) {
	// CORS middleware
	router.Use(corsMiddleware)

	// Filter metadata (years, states, transaction types)
	router.HandleFunc("/api/meta", GetMetaHandler(db)).Methods("GET", "OPTIONS")

	// Transaction aggregates
	router.HandleFunc("/api/transactions", GetTransactionsHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/transactions/states", GetTransactionsByStateHandler(db)).Methods("GET", "OPTIONS")

	// User aggregates
	router.HandleFunc("/api/users/states", GetUsersByStateHandler(db)).Methods("GET", "OPTIONS")

	// Ranked entities
	router.HandleFunc("/api/top/{entity}", GetTopHandler(db)).Methods("GET", "OPTIONS")

	// Static dashboard page
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("public")))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
