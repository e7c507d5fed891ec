package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/simsieve/internal/analyzer"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type apiEnv struct {
	Endpoint       string        `env:"SIM_API_ENDPOINT"`
	LegacyEndpoint string        `env:"REACT_APP_API_ENDPOINT"`
	Timeout        time.Duration `env:"SIM_API_TIMEOUT"`
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are ignored and existing variables win.
func LoadDotEnv(paths ...string) {
	for _, p := range paths {
		_ = godotenv.Load(ExpandPath(p))
	}
	_ = godotenv.Load()
}

// LoadAPIConfig resolves the analysis endpoint. An explicit flag value wins,
// then api.endpoint from viper, then SIM_API_ENDPOINT or
// REACT_APP_API_ENDPOINT, then the built-in default.
func LoadAPIConfig(flagEndpoint string) (analyzer.Config, error) {
	var e apiEnv
	if err := env.Parse(&e); err != nil {
		return analyzer.Config{}, fmt.Errorf("failed to parse API environment: %w", err)
	}

	cfg := analyzer.Config{
		BaseURL: analyzer.DefaultBaseURL,
		Timeout: e.Timeout,
	}

	switch {
	case flagEndpoint != "":
		cfg.BaseURL = flagEndpoint
	case viper.GetString("api.endpoint") != "":
		cfg.BaseURL = viper.GetString("api.endpoint")
	case e.Endpoint != "":
		cfg.BaseURL = e.Endpoint
	case e.LegacyEndpoint != "":
		cfg.BaseURL = e.LegacyEndpoint
	}

	if d := viper.GetDuration("api.timeout"); d > 0 {
		cfg.Timeout = d
	}

	return cfg, nil
}
