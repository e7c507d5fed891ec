// Package config resolves runtime configuration from flags, viper, the
// environment and .env files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where sessions are stored when database.path is unset.
const DefaultDatabasePath = "~/.local/share/simsieve/simsieve.db"

// DatabasePath returns the expanded session database path.
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	return ExpandPath(DefaultDatabasePath)
}

// DefaultTokenFile is where the Google OAuth2 token is kept.
const DefaultTokenFile = "~/.config/simsieve/sheets-token.json"

// TokenFile returns the expanded OAuth2 token path.
func TokenFile() string {
	if v := viper.GetString("sheets.token_file"); v != "" {
		return ExpandPath(v)
	}
	return ExpandPath(DefaultTokenFile)
}
