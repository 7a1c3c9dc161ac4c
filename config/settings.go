package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Settings mirrors the optional TOML configuration file. Every field can be
// overridden by its QUILL_* environment variable.
type Settings struct {
	Debug         bool   `toml:"debug"`
	LogLevel      string `toml:"log_level"`
	LogFolder     string `toml:"log_folder"`
	DBFolder      string `toml:"db_folder"`
	Listen        string `toml:"listen"`
	Port          int    `toml:"port"`
	Secret        string `toml:"secret"`
	SessionMaxAge int    `toml:"session_max_age"`
	Domain        string `toml:"domain"`
}

var (
	settingsOnce sync.Once
	settings     Settings
)

// Load reads .env (when present) into the environment and then the TOML file
// named by QUILL_CONFIG. It is safe to skip: getters fall back to defaults.
func Load() error {
	var loadErr error
	settingsOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			loadErr = fmt.Errorf("load .env: %w", err)
			return
		}
		path := os.Getenv("QUILL_CONFIG")
		if path == "" {
			return
		}
		s, err := ReadSettings(path)
		if err != nil {
			loadErr = err
			return
		}
		settings = *s
	})
	return loadErr
}

// ReadSettings decodes a TOML configuration file.
func ReadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	s := &Settings{}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

func file() *Settings {
	return &settings
}
