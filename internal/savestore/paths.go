// Package savestore keeps named positions for the local client in BadgerDB.
package savestore

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "netchess"

// DataDir returns the platform data directory for the client, creating it.
// - macOS: ~/Library/Application Support/netchess/
// - Linux: $XDG_DATA_HOME/netchess/ or ~/.local/share/netchess/
// - Windows: %APPDATA%/netchess/
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DatabaseDir is the badger directory under dataDir.
func DatabaseDir(dataDir string) (string, error) {
	dbDir := filepath.Join(dataDir, "saves")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
