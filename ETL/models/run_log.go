package models

import (
	"time"
)

// PipelineRunLog is one row of the pulse_etl_runs journal table
type PipelineRunLog struct {
	ID                   int       `json:"id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	DocumentsParsed      int       `json:"documents_parsed"`
	RecordsMapped        int       `json:"records_mapped"`
	RecordsLoaded        int       `json:"records_loaded"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// RunLogRepository records pipeline runs in the relational store
type RunLogRepository interface {
	// CreateLogEntry creates a new in-progress run entry
	CreateLogEntry(startTime time.Time) (int, error)

	// UpdateLogEntrySuccess closes a run entry after a successful run
	UpdateLogEntrySuccess(id int, endTime time.Time, documentsParsed, recordsMapped, recordsLoaded int) error

	// UpdateLogEntryFailure closes a run entry after a failed run
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun returns the most recent successful run, or nil
	GetLastSuccessfulRun() (*PipelineRunLog, error)
}
