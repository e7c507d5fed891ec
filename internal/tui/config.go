package tui

import (
	"time"

	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Now       func() time.Time
	ExportDir string
	Title     string
	Results   []model.AnalysisResult
	Criteria  model.FilterCriteria
	Width     int
	Height    int
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Now:       time.Now,
		ExportDir: ".",
		Title:     "Phân Tích SIM",
		Width:     100,
		Height:    24,
		AltScreen: true,
	}
}

// WithResults sets the result list to browse.
func WithResults(results []model.AnalysisResult) Option {
	return func(c *Config) {
		c.Results = results
	}
}

// WithCriteria sets the initial filter criteria.
func WithCriteria(criteria model.FilterCriteria) Option {
	return func(c *Config) {
		c.Criteria = criteria
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithExportDir sets where the export key writes workbooks.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithTitle sets the header text.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithClock overrides the clock used to name exported files.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
