package load

import (
	"time"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// UserLoader loads records into the aggregated_users table
type UserLoader struct {
	executor *batchExecutor
	logger   *utils.ETLLogger
}

// NewUserLoader creates a new UserLoader
func NewUserLoader(executor *batchExecutor, logger *utils.ETLLogger) *UserLoader {
	return &UserLoader{
		executor: executor,
		logger:   logger,
	}
}

// Load upserts aggregated user records keyed on (state, year, quarter)
func (l *UserLoader) Load(records []models.AggregatedUser) (int, error) {
	if len(records) == 0 {
		l.logger.Debug("No aggregated user records to load")
		return 0, nil
	}

	startTime := time.Now()
	records = dedupe(records)
	l.logger.Info("Loading %d aggregated user records...", len(records))

	rows := make([][]any, len(records))
	keys := make([]string, len(records))
	for i, r := range records {
		rows[i] = []any{r.State, r.Year, r.Quarter, r.RegisteredUsers, r.AppOpens}
		keys[i] = r.Key()
	}

	loaded, err := l.executor.exec(
		"aggregated_users",
		`INSERT INTO aggregated_users
		(state, year, quarter, registered_users, app_opens)`,
		"(?, ?, ?, ?, ?)",
		`ON DUPLICATE KEY UPDATE
		registered_users = VALUES(registered_users),
		app_opens = VALUES(app_opens)`,
		rows, keys,
	)

	l.logger.Info("Loaded %d aggregated user records. Duration: %v", loaded, time.Since(startTime))
	return loaded, err
}
