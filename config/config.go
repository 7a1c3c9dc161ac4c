// Package config exposes runtime settings for the quill blog. Values come from
// the process environment, an optional .env file and an optional TOML file,
// in that order of precedence.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort          = 5000
	defaultSessionMaxAge = 60 * 24 * 7 // minutes
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := lookup("QUILL_LOG_LEVEL", file().LogLevel)
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return lookup("QUILL_DEBUG", strconv.FormatBool(file().Debug)) == "true"
}

func GetDBFolderPath() string {
	return lookupDefault("QUILL_DB_FOLDER", file().DBFolder, "db")
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	return lookupDefault("QUILL_LOG_FOLDER", file().LogFolder, "log")
}

// GetListen returns the address the web server binds to. Empty means all
// interfaces.
func GetListen() string {
	return lookup("QUILL_LISTEN", file().Listen)
}

func GetPort() int {
	raw := lookup("QUILL_PORT", "")
	if raw == "" {
		if p := file().Port; p > 0 {
			return p
		}
		return defaultPort
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return defaultPort
	}
	return port
}

// GetSecret returns the key used to sign session cookies. An empty value
// makes the server generate a random key at startup, which logs every user
// out on restart.
func GetSecret() string {
	return lookup("QUILL_SECRET", file().Secret)
}

// GetSessionMaxAge returns the session cookie lifetime in minutes.
func GetSessionMaxAge() int {
	raw := lookup("QUILL_SESSION_MAX_AGE", "")
	if raw == "" {
		if m := file().SessionMaxAge; m > 0 {
			return m
		}
		return defaultSessionMaxAge
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return defaultSessionMaxAge
	}
	return minutes
}

// GetDomain returns the only host name the server answers for, or "" to
// accept any.
func GetDomain() string {
	return lookup("QUILL_DOMAIN", file().Domain)
}

func lookup(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func lookupDefault(key, fallback, def string) string {
	if v := lookup(key, fallback); v != "" {
		return v
	}
	return def
}
