package config

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ConnectDatabase opens a connection to the target MySQL database,
// creating the database itself first if it does not exist.
// Failure here is fatal for the pipeline: there is nowhere to load into.
func ConnectDatabase(cfg ETLConfig) (*sql.DB, error) {
	if err := createDatabaseIfNotExists(cfg); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach MySQL at %s:%d: %w", cfg.Database.Host, cfg.Database.Port, err)
	}

	return db, nil
}

// createDatabaseIfNotExists connects without a database selected and
// issues CREATE DATABASE IF NOT EXISTS
func createDatabaseIfNotExists(cfg ETLConfig) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open server connection: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.Database.DBName))
	if err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.Database.DBName, err)
	}

	return nil
}

// CloseDatabase closes the database connection, logging is left to callers
func CloseDatabase(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
