package service

import (
	"path/filepath"
	"testing"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "quill.db"),
		WAL:  true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })
	return db
}
