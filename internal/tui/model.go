package tui

import (
	"slices"
	"time"

	"github.com/Veraticus/simsieve/internal/filter"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/phone"
	"github.com/Veraticus/simsieve/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current input state of the TUI.
type State int

const (
	StateBrowse State = iota
	StateEditAvoid
	StateEditRequire
)

// chromeHeight is the number of lines used by everything except the table body.
const chromeHeight = 9

// Model holds the main TUI state.
type Model struct {
	theme      themes.Theme
	now        func() time.Time
	keymap     KeyMap
	help       help.Model
	input      textinput.Model
	table      table.Model
	exportDir  string
	title      string
	status     string
	inputPrior string
	results    []model.AnalysisResult
	visible    []model.AnalysisResult
	criteria   model.FilterCriteria
	width      int
	height     int
	statusSeq  int
	state      State
	statusErr  bool
	exporting  bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		theme:     cfg.Theme,
		now:       cfg.Now,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		input:     textinput.New(),
		exportDir: cfg.ExportDir,
		title:     cfg.Title,
		results:   cfg.Results,
		criteria:  cfg.Criteria,
		width:     cfg.Width,
		height:    cfg.Height,
		state:     StateBrowse,
	}
	m.input.CharLimit = 20

	m.table = table.New(
		table.WithColumns(columnsFor(m.width)),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithKeyMap(m.keymap.tableKeyMap()),
		table.WithStyles(tableStyles(m.theme)),
	)
	m.recompute()
	return m
}

// tableKeyMap maps the navigation bindings onto the table component.
func (k KeyMap) tableKeyMap() table.KeyMap {
	km := table.DefaultKeyMap()
	km.LineUp = k.Up
	km.LineDown = k.Down
	km.PageUp = k.PageUp
	km.PageDown = k.PageDown
	km.GotoTop = k.Home
	km.GotoBottom = k.End
	return km
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			return m, m.setStatus("Xuất file thất bại: "+msg.err.Error(), true)
		}
		return m, m.setStatus("Đã xuất "+msg.path, false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state != StateBrowse {
			cmd := m.updateInput(msg)
			return m, cmd
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleKey applies browse-mode shortcuts. It reports false for keys that
// belong to the table.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return nil, true

	case key.Matches(msg, m.keymap.Carrier):
		m.criteria.Carrier = cycle(carrierOptions(), m.criteria.Carrier)
		if !slices.Contains(prefixOptions(m.criteria.Carrier), m.criteria.Prefix) {
			m.criteria.Prefix = ""
		}
		m.recompute()
		return nil, true

	case key.Matches(msg, m.keymap.Prefix):
		m.criteria.Prefix = cycle(prefixOptions(m.criteria.Carrier), m.criteria.Prefix)
		m.recompute()
		return nil, true

	case key.Matches(msg, m.keymap.Lucky):
		m.criteria.LuckyCategory = cycle(luckyOptions(), m.criteria.LuckyCategory)
		m.recompute()
		return nil, true

	case key.Matches(msg, m.keymap.ValidOnly):
		m.criteria.ValidOnly = !m.criteria.ValidOnly
		m.recompute()
		return nil, true

	case key.Matches(msg, m.keymap.Avoid):
		return m.startInput(StateEditAvoid), true

	case key.Matches(msg, m.keymap.Require):
		return m.startInput(StateEditRequire), true

	case key.Matches(msg, m.keymap.Reset):
		m.criteria = model.FilterCriteria{}
		m.recompute()
		return nil, true

	case key.Matches(msg, m.keymap.Export):
		return m.startExport(), true
	}
	return nil, false
}

// startInput focuses the text input on the avoid or require criterion.
func (m *Model) startInput(state State) tea.Cmd {
	m.state = state
	m.input.Reset()
	switch state {
	case StateEditAvoid:
		m.input.Prompt = "Tránh: "
		m.input.Placeholder = "Nhập số cần tránh"
		m.inputPrior = m.criteria.Avoid
	case StateEditRequire:
		m.input.Prompt = "Chứa: "
		m.input.Placeholder = "Nhập số cần tìm"
		m.inputPrior = m.criteria.Require
	}
	m.input.SetValue(m.inputPrior)
	m.input.CursorEnd()
	return m.input.Focus()
}

// updateInput feeds a key to the text input. The view follows every keystroke;
// Esc restores the value the edit started from.
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		m.finishInput()
		return nil
	case key.Matches(msg, m.keymap.Cancel):
		m.input.SetValue(m.inputPrior)
		m.setInputCriterion(m.inputPrior)
		m.finishInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.setInputCriterion(m.input.Value())
	return cmd
}

func (m *Model) setInputCriterion(value string) {
	switch m.state {
	case StateEditAvoid:
		m.criteria.Avoid = value
	case StateEditRequire:
		m.criteria.Require = value
	}
	m.recompute()
}

func (m *Model) finishInput() {
	m.input.Blur()
	m.state = StateBrowse
	m.inputPrior = ""
}

// startExport writes the filtered view to disk unless it is empty.
func (m *Model) startExport() tea.Cmd {
	if m.exporting {
		return nil
	}
	if len(m.visible) == 0 {
		return m.setStatus("Không có dữ liệu để xuất", true)
	}
	m.exporting = true
	return exportResults(m.exportDir, m.visible, m.now())
}

// setStatus shows a transient message in the status bar.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return clearStatusAfter(m.statusSeq)
}

// recompute derives the visible rows from the full result list.
func (m *Model) recompute() {
	m.visible = filter.Apply(m.results, m.criteria)
	m.table.SetRows(rowsFor(m.visible))
	m.table.SetCursor(0)
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.table.SetColumns(columnsFor(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(m.tableHeight())
	m.help.Width = m.width
}

func (m Model) tableHeight() int {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= 4
	}
	return max(h, 3)
}

// Criteria returns the active filter criteria.
func (m Model) Criteria() model.FilterCriteria {
	return m.criteria
}

// Visible returns the results that pass the active criteria.
func (m Model) Visible() []model.AnalysisResult {
	return m.visible
}

// Summary returns the header summary for the current view.
func (m Model) Summary() filter.Summary {
	return filter.Summarize(len(m.results), len(m.visible))
}

// cycle returns the option after current, wrapping to the first. The first
// option is the unrestricted value.
func cycle[T comparable](options []T, current T) T {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

func carrierOptions() []model.Carrier {
	return append([]model.Carrier{model.CarrierNone}, phone.Carriers()...)
}

// prefixOptions narrows the prefix cycle to the selected carrier when one is set.
func prefixOptions(carrier model.Carrier) []string {
	prefixes := phone.AllPrefixes()
	if carrier != model.CarrierNone {
		prefixes = phone.Prefixes(carrier)
	}
	return append([]string{""}, prefixes...)
}

func luckyOptions() []model.LuckyCategory {
	return append([]model.LuckyCategory{""}, phone.LuckyCategories()...)
}
