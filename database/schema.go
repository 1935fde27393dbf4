// database/schema.go
package database

import (
	"database/sql"
	"fmt"
)

// Each fact table carries a UNIQUE constraint on its composite natural key;
// the load phase relies on it for ON DUPLICATE KEY UPDATE upserts. The
// (year, quarter) index supports dashboard queries that do not filter by
// state, since the unique key already leads with state.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS aggregated_transactions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		state VARCHAR(100) NOT NULL,
		year SMALLINT NOT NULL,
		quarter TINYINT NOT NULL,
		transaction_type VARCHAR(100) NOT NULL,
		transaction_count BIGINT NOT NULL DEFAULT 0,
		transaction_amount DECIMAL(20,2) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_aggregated_transactions (state, year, quarter, transaction_type),
		KEY idx_aggregated_transactions_period (year, quarter)
	)`,

	`CREATE TABLE IF NOT EXISTS aggregated_users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		state VARCHAR(100) NOT NULL,
		year SMALLINT NOT NULL,
		quarter TINYINT NOT NULL,
		registered_users BIGINT NOT NULL DEFAULT 0,
		app_opens BIGINT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_aggregated_users (state, year, quarter),
		KEY idx_aggregated_users_period (year, quarter)
	)`,

	`CREATE TABLE IF NOT EXISTS map_transactions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		state VARCHAR(100) NOT NULL,
		year SMALLINT NOT NULL,
		quarter TINYINT NOT NULL,
		district VARCHAR(100) NOT NULL,
		transaction_count BIGINT NOT NULL DEFAULT 0,
		transaction_amount DECIMAL(20,2) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_map_transactions (state, year, quarter, district),
		KEY idx_map_transactions_period (year, quarter)
	)`,

	`CREATE TABLE IF NOT EXISTS map_users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		state VARCHAR(100) NOT NULL,
		year SMALLINT NOT NULL,
		quarter TINYINT NOT NULL,
		district VARCHAR(100) NOT NULL,
		registered_users BIGINT NOT NULL DEFAULT 0,
		app_opens BIGINT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_map_users (state, year, quarter, district),
		KEY idx_map_users_period (year, quarter)
	)`,

	`CREATE TABLE IF NOT EXISTS top_transactions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		state VARCHAR(100) NOT NULL,
		year SMALLINT NOT NULL,
		quarter TINYINT NOT NULL,
		entity_type VARCHAR(20) NOT NULL,
		entity_name VARCHAR(100) NOT NULL,
		transaction_count BIGINT NOT NULL DEFAULT 0,
		transaction_amount DECIMAL(20,2) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_top_transactions (state, year, quarter, entity_type, entity_name),
		KEY idx_top_transactions_period (year, quarter)
	)`,

	`CREATE TABLE IF NOT EXISTS top_users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		state VARCHAR(100) NOT NULL,
		year SMALLINT NOT NULL,
		quarter TINYINT NOT NULL,
		entity_type VARCHAR(20) NOT NULL,
		entity_name VARCHAR(100) NOT NULL,
		registered_users BIGINT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_top_users (state, year, quarter, entity_type, entity_name),
		KEY idx_top_users_period (year, quarter)
	)`,
}

// CreateSchema creates the six fact tables if they do not exist
func CreateSchema(db *sql.DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
