package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	labelStyle  = lipgloss.NewStyle().Foreground(dim)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(primary)
)

// renderTable draws rows under headers with a rounded border. A nil
// headers slice draws a table without a header row.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(rows...)
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	return t.Render()
}

// field renders a "label: value" line.
func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}
