package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// CellStyler picks the style of a body cell. Returning false keeps the default.
type CellStyler func(row, col int) (lipgloss.Style, bool)

// RenderTable renders rows under headers with the report styles.
func RenderTable(headers []string, rows [][]string, styler CellStyler) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if styler != nil {
				if s, ok := styler(row, col); ok {
					return s.Padding(0, 1)
				}
			}
			return TableCellStyle
		})
	return t.String()
}
