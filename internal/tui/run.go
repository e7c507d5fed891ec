package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/simsieve/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// New builds a browser model from the given options.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

// RunConfig holds the terminal streams used by Run.
type RunConfig struct {
	Input  io.Reader
	Output io.Writer
	// InputTTY reads keys from the controlling terminal instead of Input.
	InputTTY bool
}

// Run starts the interactive result browser and blocks until the user quits.
// It returns the criteria that were active on exit.
func Run(ctx context.Context, rc RunConfig, opts ...Option) (model.FilterCriteria, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.Results) == 0 {
		return model.FilterCriteria{}, fmt.Errorf("no results to browse")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	switch {
	case rc.InputTTY:
		programOpts = append(programOpts, tea.WithInputTTY())
	case rc.Input != nil:
		programOpts = append(programOpts, tea.WithInput(rc.Input))
	}
	if rc.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(rc.Output))
	}

	final, err := tea.NewProgram(newModel(cfg), programOpts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return cfg.Criteria, ctxErr
	}
	if err != nil {
		return cfg.Criteria, fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(Model); ok {
		return m.Criteria(), nil
	}
	return cfg.Criteria, nil
}
