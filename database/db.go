// Package database opens the sqlite database backing the blog and maps
// driver errors to the conditions callers care about.
package database

import (
	"errors"
	"strings"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func initModels(db *gorm.DB) error {
	models := []any{
		&model.User{},
		&model.Post{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}
	return nil
}

// InitDB opens (creating when needed) the database described by c and
// migrates the schema. The returned handle is safe for concurrent use.
func InitDB(c *config.DatabaseConfig) (*gorm.DB, error) {
	if err := c.ValidateConfig(); err != nil {
		return nil, err
	}
	if c.Path != ":memory:" {
		if err := c.EnsureDirectoryExists(); err != nil {
			return nil, err
		}
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	db, err := gorm.Open(sqlite.Open(c.GetDSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if _, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;"); err != nil {
		return nil, err
	}

	if err := initModels(db); err != nil {
		return nil, err
	}
	return db, nil
}

// CloseDB checkpoints the WAL and closes the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	cpErr := Checkpoint(db)
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return errors.Join(cpErr, sqlDB.Close())
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Checkpoint flushes the write-ahead log into the main database file.
func Checkpoint(db *gorm.DB) error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
