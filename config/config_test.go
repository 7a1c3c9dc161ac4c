package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	content := `
debug = false
log_level = "warn"
db_folder = "/var/lib/quill"
port = 8081
secret = "s3cret"
session_max_age = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := ReadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "/var/lib/quill", s.DBFolder)
	assert.Equal(t, 8081, s.Port)
	assert.Equal(t, "s3cret", s.Secret)
	assert.Equal(t, 30, s.SessionMaxAge)
}

func TestReadSettingsMissingFile(t *testing.T) {
	_, err := ReadSettings(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestReadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = [1,"), 0o600))

	_, err := ReadSettings(path)
	assert.Error(t, err)
}

func TestGetPort(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"explicit", "8080", 8080},
		{"not a number", "eighty", defaultPort},
		{"out of range", "70000", defaultPort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QUILL_PORT", tt.env)
			assert.Equal(t, tt.want, GetPort())
		})
	}
}

func TestGetSessionMaxAgeDefault(t *testing.T) {
	t.Setenv("QUILL_SESSION_MAX_AGE", "")
	assert.Equal(t, defaultSessionMaxAge, GetSessionMaxAge())
}

func TestGetDBPath(t *testing.T) {
	t.Setenv("QUILL_DB_FOLDER", "/tmp/blog")
	assert.Equal(t, "/tmp/blog/quill.db", GetDBPath())
}

func TestDatabaseConfig(t *testing.T) {
	c := &DatabaseConfig{Path: "db/quill.db", WAL: true}
	assert.Equal(t, "db/quill.db?cache=shared&_journal_mode=WAL&_synchronous=NORMAL", c.GetDSN())
	assert.NoError(t, c.ValidateConfig())

	c = &DatabaseConfig{}
	assert.Error(t, c.ValidateConfig())
}
