package tui

import (
	"time"

	"github.com/Veraticus/simsieve/internal/export"
	"github.com/Veraticus/simsieve/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 4 * time.Second

// exportResults writes the given view to an xlsx workbook off the update loop.
func exportResults(dir string, results []model.AnalysisResult, now time.Time) tea.Cmd {
	snapshot := append([]model.AnalysisResult(nil), results...)
	return func() tea.Msg {
		path, err := export.SaveXLSX(dir, snapshot, now)
		return exportDoneMsg{path: path, err: err}
	}
}

// clearStatusAfter schedules removal of the status message tagged seq.
func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
