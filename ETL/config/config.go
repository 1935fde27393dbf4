package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ETLConfig holds the full configuration of the pipeline. It is built once
// at startup and passed explicitly into every component.
type ETLConfig struct {
	// Target database connection
	Database DatabaseConfig `json:"database"`

	// Git URL of the Pulse data repository
	RepoURL string `json:"repo_url"`

	// Local directory the repository is cloned into
	CloneDir string `json:"clone_dir"`

	// Interval between runs in scheduled mode
	RunInterval time.Duration `json:"run_interval"`

	// Maximum number of rows per multi-row upsert statement
	BatchSize int `json:"batch_size"`

	// Enables debug logging
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Documented environment variable names
const (
	EnvDBHost        = "DB_HOST"
	EnvDBPort        = "DB_PORT"
	EnvDBUser        = "DB_USER"
	EnvDBPassword    = "DB_PASSWORD"
	EnvDBName        = "DB_NAME"
	EnvRepoURL       = "PULSE_REPO_URL"
	EnvCloneDir      = "PULSE_CLONE_DIR"
	EnvDashboardAddr = "DASHBOARD_ADDR"
)

// Defaults matching the public Pulse dataset
const (
	DefaultRepoURL  = "https://github.com/PhonePe/pulse.git"
	DefaultCloneDir = "data/raw/pulse"
)

// GetConfig assembles the pipeline configuration from the environment.
// A .env file in the working directory is honored when present.
func GetConfig() ETLConfig {
	// Missing .env is fine, variables may come from the process environment
	_ = godotenv.Load()

	return ETLConfig{
		Database: DatabaseConfig{
			Host:     envOrDefault(EnvDBHost, "localhost"),
			Port:     envIntOrDefault(EnvDBPort, 3306),
			User:     envOrDefault(EnvDBUser, "root"),
			Password: os.Getenv(EnvDBPassword),
			DBName:   envOrDefault(EnvDBName, "phonepe_pulse"),
		},
		RepoURL:               envOrDefault(EnvRepoURL, DefaultRepoURL),
		CloneDir:              envOrDefault(EnvCloneDir, DefaultCloneDir),
		RunInterval:           24 * time.Hour,
		BatchSize:             500,
		EnableDetailedLogging: true,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
