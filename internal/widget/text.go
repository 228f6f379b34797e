package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme holds the terminal styles used by the text renderers.
type Theme struct {
	Indicators map[Indicator]lipgloss.Style
	Alert      lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Help       lipgloss.Style
}

// DefaultTheme mirrors the warning/default/error colours of the HTML form.
func DefaultTheme() Theme {
	field := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Theme{
		Indicators: map[Indicator]lipgloss.Style{
			IndicatorWarning: field.BorderForeground(lipgloss.Color("214")),
			IndicatorDefault: field.BorderForeground(lipgloss.Color("245")),
			IndicatorError:   field.BorderForeground(lipgloss.Color("196")),
		},
		Alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// RenderTable renders the results table of s for a terminal. It returns
// an empty string when there is nothing to show.
func RenderTable(s State, theme Theme) string {
	rows := s.Rows()
	if len(rows) == 0 {
		return ""
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Header
			}
			return theme.Cell
		})
	if !s.NotFound {
		t = t.Headers("Repository", "Stars")
	}
	return t.Rows(rows...).String()
}

// RenderText renders the whole widget for a terminal: the field framed
// by its indicator colour, the alert and the table.
func RenderText(s State, theme Theme, field string) string {
	var b strings.Builder
	style, ok := theme.Indicators[s.Indicator]
	if !ok {
		style = theme.Indicators[IndicatorWarning]
	}
	b.WriteString(style.Render(field))
	b.WriteString("\n")
	if s.AlertVisible() {
		b.WriteString(theme.Alert.Render(s.Alert))
		b.WriteString("\n")
	}
	if tbl := RenderTable(s, theme); tbl != "" {
		b.WriteString(tbl)
		b.WriteString("\n")
	}
	return b.String()
}
