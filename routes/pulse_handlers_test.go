// routes/pulse_handlers_test.go
package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaanu-oss/Phonepae/database"
)

func newTestRouter(t *testing.T) (*mux.Router, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := mux.NewRouter()
	SetupRoutes(router, db)
	return router, mock
}

func TestParseFilters(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/transactions?year=2023&quarter=2&state=Karnataka&type=Merchant+payments", nil)

	f := parseFilters(r)

	assert.Equal(t, database.Filters{
		Year:            2023,
		Quarter:         2,
		State:           "Karnataka",
		TransactionType: "Merchant payments",
	}, f)
}

func TestParseFiltersIgnoresInvalidValues(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/transactions?year=abc&quarter=7", nil)

	f := parseFilters(r)

	assert.Zero(t, f.Year)
	assert.Zero(t, f.Quarter)
}

func TestGetTransactionsEndpoint(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM aggregated_transactions WHERE year = \?`).
		WithArgs(2023).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_type", "count", "amount"}).
			AddRow("Merchant payments", int64(10), 100.5))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/transactions?year=2023", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"transactionType":"Merchant payments","count":10,"amount":100.5}]`, recorder.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionsEndpointEmptyResult(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM aggregated_transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_type", "count", "amount"}))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	// No matching data renders as an empty list, not an error
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestGetTopEndpoint(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM top_transactions WHERE entity_type = \?`).
		WithArgs("district", 5).
		WillReturnRows(sqlmock.NewRows([]string{"entity_name", "count", "amount"}).
			AddRow("bengaluru urban", int64(77), 777.0))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/top/transactions?entityType=district&limit=5", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopEndpointRejectsBadEntityType(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/top/transactions?entityType=country", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetTopEndpointUnknownEntity(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/top/merchants", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCORSHeadersOnAPIResponses(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT DISTINCT year`).
		WillReturnRows(sqlmock.NewRows([]string{"year"}))
	mock.ExpectQuery(`SELECT DISTINCT state`).
		WillReturnRows(sqlmock.NewRows([]string{"state"}))
	mock.ExpectQuery(`SELECT DISTINCT transaction_type`).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_type"}))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/meta", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}
