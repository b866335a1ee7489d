package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders an aligned table with a header separator and no outer
// border. Column widths follow the widest visible cell, ANSI styling
// included.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cell := lipgloss.NewStyle().PaddingRight(2)
	head := StyleHeader.PaddingRight(2)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
	for _, r := range rows {
		padded := make([]string, len(headers))
		copy(padded, r)
		t.Row(padded...)
	}
	return t.Render()
}
