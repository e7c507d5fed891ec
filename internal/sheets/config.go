// Package sheets exports analysis results to Google Sheets.
package sheets

import (
	"fmt"
	"time"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/caarlos0/env/v10"
)

// DefaultSpreadsheetName is the title used when a new spreadsheet is created.
const DefaultSpreadsheetName = "Phân Tích SIM"

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string `env:"GOOGLE_SHEETS_CLIENT_ID"`
	ClientSecret       string `env:"GOOGLE_SHEETS_CLIENT_SECRET"`
	RefreshToken       string `env:"GOOGLE_SHEETS_REFRESH_TOKEN"`
	ServiceAccountPath string `env:"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"`
	SpreadsheetID      string `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	SpreadsheetName    string `env:"GOOGLE_SHEETS_SPREADSHEET_NAME"`
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableFormatting: true,
		SpreadsheetName:  DefaultSpreadsheetName,
		TimeZone:         "Asia/Ho_Chi_Minh",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// LoadFromEnv overlays GOOGLE_SHEETS_* environment variables onto c.
func (c *Config) LoadFromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse sheets environment: %w", err)
	}

	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing Google Sheets authentication: provide either service account path or OAuth2 credentials")
	}

	if c.SpreadsheetName == "" {
		c.SpreadsheetName = DefaultSpreadsheetName
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
