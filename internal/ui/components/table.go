package components

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

// NewTable creates a focused table using the dashboard table styles.
func NewTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle.Padding(0, 1)
	s.Cell = styles.TableCellStyle
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	return t
}

// ColumnsWidth returns the rendered width of columns including cell padding.
func ColumnsWidth(columns []table.Column) int {
	w := 0
	for _, c := range columns {
		w += c.Width + 2
	}
	return w
}
