package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `json:"path"`
	// WAL enables sqlite write-ahead logging; off for in-memory databases.
	WAL bool `json:"wal"`
}

// GetDSN returns the data source name for the sqlite driver
func (c *DatabaseConfig) GetDSN() string {
	if !c.WAL {
		return c.Path
	}
	return c.Path + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
}

// GetDefaultDatabaseConfig returns default database configuration
func GetDefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Path: GetDBPath(),
		WAL:  true,
	}
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	if c.Path == "" {
		return fmt.Errorf("sqlite path cannot be empty")
	}
	return nil
}

// EnsureDirectoryExists ensures the directory for the sqlite file exists
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	return os.MkdirAll(filepath.Dir(c.Path), 0o755)
}
