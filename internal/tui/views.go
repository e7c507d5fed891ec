package tui

import (
	"strings"
	"unicode"

	"github.com/Veraticus/simsieve/internal/cli"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/phone"
	"github.com/Veraticus/simsieve/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

const (
	numberColWidth = 12
	scoreColWidth  = 9
	minTextWidth   = 10
	allLabel       = "Tất cả"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderFilterBar(),
	}
	if m.state != StateBrowse {
		sections = append(sections, m.input.View())
	}
	sections = append(sections,
		m.renderBody(),
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.theme.Title.Render(cli.SimIcon+" "+m.title),
		" ",
		m.theme.Subtitle.Render(m.Summary().String()),
	)
}

// renderFilterBar shows every criterion, highlighting the ones that are set.
func (m Model) renderFilterBar() string {
	c := m.criteria
	status := allLabel
	if c.ValidOnly {
		status = model.StatusEligible
	}
	lucky := allLabel
	if label, ok := phone.LuckyLabel(c.LuckyCategory); ok {
		lucky = label
	}

	fields := []string{
		m.filterField("Nhà mạng", carrierLabel(c.Carrier), c.Carrier != model.CarrierNone),
		m.filterField("Đầu số", lo.Ternary(c.Prefix == "", allLabel, c.Prefix), c.Prefix != ""),
		m.filterField("Trạng thái", status, c.ValidOnly),
		m.filterField("Sao cát", lucky, c.LuckyCategory != ""),
		m.filterField("Tránh", lo.Ternary(c.Avoid == "", cli.EmptyCell, c.Avoid), c.Avoid != ""),
		m.filterField("Chứa", lo.Ternary(c.Require == "", cli.EmptyCell, c.Require), c.Require != ""),
	}
	return m.theme.RoundedBox.Render(strings.Join(fields, "  "))
}

func (m Model) filterField(label, value string, active bool) string {
	style := m.theme.FilterIdle
	if active {
		style = m.theme.FilterActive
	}
	return m.theme.Subtitle.Render(label+": ") + style.Render(value)
}

func (m Model) renderBody() string {
	if len(m.visible) == 0 {
		return m.theme.Subtitle.Render(m.Summary().String())
	}
	return m.table.View()
}

// renderStatusBar shows the summary line and the active criteria, or a
// transient message when one is pending.
func (m Model) renderStatusBar() string {
	if m.status != "" {
		style := m.theme.StatusSuccess
		if m.statusErr {
			style = m.theme.StatusError
		}
		return m.theme.StatusBar.Render(style.Render(m.status))
	}

	parts := []string{m.Summary().String()}
	if active := m.criteria.Active(); len(active) > 0 {
		parts = append(parts, m.theme.StatusInfo.Render(strings.Join(active, " ")))
	}
	if m.exporting {
		parts = append(parts, "đang xuất...")
	}
	return m.theme.StatusBar.Render(strings.Join(parts, " · "))
}

// columnsFor splits the terminal width between the fixed and free-text columns.
func columnsFor(width int) []table.Column {
	free := max(width-numberColWidth-scoreColWidth-8, 2*minTextWidth)
	interpretation := free * 3 / 5
	return []table.Column{
		{Title: "Số Sim", Width: numberColWidth},
		{Title: "Điểm SIM", Width: scoreColWidth},
		{Title: "Luận Giải", Width: interpretation},
		{Title: "Kết luận", Width: free - interpretation},
	}
}

func rowsFor(results []model.AnalysisResult) []table.Row {
	return lo.Map(results, func(r model.AnalysisResult, _ int) table.Row {
		return table.Row{
			r.SimNumber,
			cli.FormatScore(r.BatCucScore),
			cellText(r.Interpretation),
			cellText(r.Conclusion),
		}
	})
}

func cellText(s string) string {
	if strings.TrimSpace(s) == "" {
		return cli.EmptyCell
	}
	return s
}

func carrierLabel(c model.Carrier) string {
	if c == model.CarrierNone {
		return allLabel
	}
	runes := []rune(string(c))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func tableStyles(theme themes.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = theme.Header.Padding(0, 1)
	s.Selected = theme.Selected
	return s
}
