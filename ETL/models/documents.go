package models

import (
	"encoding/json"
)

// Category identifies the top-level subtree a document came from
type Category string

// Kind identifies the metric family of a document
type Kind string

const (
	CategoryAggregated Category = "aggregated"
	CategoryMap        Category = "map"
	CategoryTop        Category = "top"

	KindTransaction Kind = "transaction"
	KindUser        Kind = "user"
)

// Document is one parsed JSON file from the Pulse data tree together with
// the dimensional key derived from its filesystem path. The dimensions come
// from path segments only, never from the document body: the body's own
// labeling is inconsistent across years and quarters.
type Document struct {
	Category Category
	Kind     Kind
	State    string
	Year     int
	Quarter  int
	Path     string
	Data     json.RawMessage
}

// Envelope is the outer shape shared by every Pulse document.
// Data is kept raw; the per-variant payload is decoded by the mapper.
type Envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// Metric is a count/amount pair as it appears in transaction documents.
// Numeric fields are decoded as any because the source serializes them
// inconsistently (JSON numbers in some quarters, strings in others).
type Metric struct {
	Type   string `json:"type"`
	Count  any    `json:"count"`
	Amount any    `json:"amount"`
}

// AggregatedTransactionData is the payload of aggregated/transaction documents
type AggregatedTransactionData struct {
	TransactionData []struct {
		Name               string   `json:"name"`
		PaymentInstruments []Metric `json:"paymentInstruments"`
	} `json:"transactionData"`
}

// AggregatedUserData is the payload of aggregated/user documents
type AggregatedUserData struct {
	Aggregated *struct {
		RegisteredUsers any `json:"registeredUsers"`
		AppOpens        any `json:"appOpens"`
	} `json:"aggregated"`
}

// MapTransactionData is the payload of map/transaction/hover documents
type MapTransactionData struct {
	HoverDataList []struct {
		Name   string   `json:"name"`
		Metric []Metric `json:"metric"`
	} `json:"hoverDataList"`
}

// MapUserData is the payload of map/user/hover documents, keyed by
// state or district name depending on the document's level
type MapUserData struct {
	HoverData map[string]struct {
		RegisteredUsers any `json:"registeredUsers"`
		AppOpens        any `json:"appOpens"`
	} `json:"hoverData"`
}

// TopTransactionEntry is one ranked entity in a top/transaction document
type TopTransactionEntry struct {
	EntityName string  `json:"entityName"`
	Metric     *Metric `json:"metric"`
}

// TopTransactionData is the payload of top/transaction documents
type TopTransactionData struct {
	States    []*TopTransactionEntry `json:"states"`
	Districts []*TopTransactionEntry `json:"districts"`
	Pincodes  []*TopTransactionEntry `json:"pincodes"`
}

// TopUserEntry is one ranked entity in a top/user document.
// Pincode names arrive as JSON numbers, hence any.
type TopUserEntry struct {
	Name            any `json:"name"`
	RegisteredUsers any `json:"registeredUsers"`
}

// TopUserData is the payload of top/user documents
type TopUserData struct {
	States    []*TopUserEntry `json:"states"`
	Districts []*TopUserEntry `json:"districts"`
	Pincodes  []*TopUserEntry `json:"pincodes"`
}

// ExtractedData groups the walked documents by category and kind,
// ready for the transform phase
type ExtractedData struct {
	AggregatedTransactions []Document
	AggregatedUsers        []Document
	MapTransactions        []Document
	MapUsers               []Document
	TopTransactions        []Document
	TopUsers               []Document
}

// TotalDocuments returns the number of documents across all categories
func (d *ExtractedData) TotalDocuments() int {
	return len(d.AggregatedTransactions) +
		len(d.AggregatedUsers) +
		len(d.MapTransactions) +
		len(d.MapUsers) +
		len(d.TopTransactions) +
		len(d.TopUsers)
}
