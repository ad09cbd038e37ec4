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
	logLevel := os.Getenv("FP_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("FP_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("FP_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/fleetpanel"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("FP_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetWebListen() string {
	return os.Getenv("FP_WEB_LISTEN")
}

func GetWebPort() int {
	port, err := strconv.Atoi(os.Getenv("FP_WEB_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}

// GetWebDomain returns the domain the panel is restricted to.
// Empty means requests for any host are accepted.
func GetWebDomain() string {
	return os.Getenv("FP_WEB_DOMAIN")
}

// GetSessionSecret returns the cookie-store secret. Empty means a random
// secret is generated at startup, invalidating sessions across restarts.
func GetSessionSecret() string {
	return os.Getenv("FP_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	maxAge, err := strconv.Atoi(os.Getenv("FP_SESSION_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		return 60
	}
	return maxAge
}
