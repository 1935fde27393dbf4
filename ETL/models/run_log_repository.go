package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLRunLogRepository implements RunLogRepository on MySQL
type MySQLRunLogRepository struct {
	db *sql.DB
}

// NewMySQLRunLogRepository creates a new MySQLRunLogRepository
func NewMySQLRunLogRepository(db *sql.DB) *MySQLRunLogRepository {
	return &MySQLRunLogRepository{
		db: db,
	}
}

// CreateRunLogTable creates the pulse_etl_runs table if it does not exist
func (r *MySQLRunLogRepository) CreateRunLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS pulse_etl_runs (
		id INT AUTO_INCREMENT PRIMARY KEY,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		documents_parsed INT DEFAULT 0,
		records_mapped INT DEFAULT 0,
		records_loaded INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create pulse_etl_runs table: %w", err)
	}

	return nil
}

// CreateLogEntry creates a new in-progress run entry
func (r *MySQLRunLogRepository) CreateLogEntry(startTime time.Time) (int, error) {
	query := `
	INSERT INTO pulse_etl_runs (start_time, status)
	VALUES (?, 'in_progress')
	`

	result, err := r.db.Exec(query, startTime)
	if err != nil {
		return 0, fmt.Errorf("failed to create pipeline run entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read id of the created run entry: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess closes a run entry after a successful run
func (r *MySQLRunLogRepository) UpdateLogEntrySuccess(id int, endTime time.Time, documentsParsed, recordsMapped, recordsLoaded int) error {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM pulse_etl_runs WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("failed to read run start time: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE pulse_etl_runs
	SET
		end_time = ?,
		status = 'success',
		documents_parsed = ?,
		records_mapped = ?,
		records_loaded = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, documentsParsed, recordsMapped, recordsLoaded, executionTime, id)
	if err != nil {
		return fmt.Errorf("failed to update pipeline run entry: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure closes a run entry after a failed run
func (r *MySQLRunLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM pulse_etl_runs WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("failed to read run start time: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE pulse_etl_runs
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("failed to update pipeline run entry: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun returns the most recent successful run, or nil
// when the pipeline has never completed
func (r *MySQLRunLogRepository) GetLastSuccessfulRun() (*PipelineRunLog, error) {
	query := `
	SELECT
		id, start_time, end_time, status,
		documents_parsed, records_mapped, records_loaded,
		IFNULL(error_message, ''), execution_time_seconds
	FROM pulse_etl_runs
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var log PipelineRunLog
	err := r.db.QueryRow(query).Scan(
		&log.ID, &log.StartTime, &log.EndTime, &log.Status,
		&log.DocumentsParsed, &log.RecordsMapped, &log.RecordsLoaded,
		&log.ErrorMessage, &log.ExecutionTimeSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read last successful run: %w", err)
	}

	return &log, nil
}
