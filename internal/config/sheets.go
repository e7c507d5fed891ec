package config

import (
	"github.com/Veraticus/simsieve/internal/sheets"
	"github.com/caarlos0/env/v10"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration with this precedence:
// 1. Viper configuration (config file or SIMSIEVE_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if err := env.Parse(&config); err != nil {
		return nil, err
	}

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = v
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		config.SpreadsheetName = v
	}
	if v := viper.GetInt("sheets.batch_size"); v > 0 {
		config.BatchSize = v
	}

	config.ServiceAccountPath = ExpandPath(config.ServiceAccountPath)

	if config.RefreshToken == "" && config.ServiceAccountPath == "" {
		if token, err := sheets.LoadToken(TokenFile()); err == nil {
			config.RefreshToken = token.RefreshToken
		}
	}

	if config.SpreadsheetName == "" {
		config.SpreadsheetName = sheets.DefaultSpreadsheetName
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
