package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "nested", "quill.db"),
		WAL:  true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func TestInitDBCreatesSchema(t *testing.T) {
	db := openTestDB(t)
	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.True(t, db.Migrator().HasTable(&model.Post{}))
	assert.True(t, db.Migrator().HasIndex(&model.Post{}, "Slug"))
}

func TestUniqueSlugViolation(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&model.Post{Title: "a", Slug: "a"}).Error)
	err := db.Create(&model.Post{Title: "a", Slug: "a"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsNotFound(err))
}

func TestIsNotFound(t *testing.T) {
	db := openTestDB(t)

	err := db.Where("slug = ?", "missing").First(&model.Post{}).Error
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", err)))
	assert.False(t, IsUniqueViolation(err))
}

func TestIsUniqueViolationText(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestInitDBRejectsEmptyPath(t *testing.T) {
	_, err := InitDB(&config.DatabaseConfig{})
	assert.Error(t, err)
}
