package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows with space-aligned columns and no borders. Widths are
// measured with lipgloss so styled cells line up.
type Table struct {
	header     []string
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a table with the given column headers.
func NewTable(header ...string) *Table {
	t := &Table{
		colWidths:  make([]int, len(header)),
		colPadding: 2,
	}
	t.header = t.fit(header)
	return t
}

// AddRow adds a row; missing cells are blank and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, t.fit(cells))
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(row) && i < len(cells); i++ {
		row[i] = cells[i]
		if w := lipgloss.Width(cells[i]); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	return row
}

// String renders the header (muted) followed by the rows.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	t.writeRow(&sb, t.header, true)
	for _, row := range t.rows {
		t.writeRow(&sb, row, false)
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, row []string, header bool) {
	padding := strings.Repeat(" ", t.colPadding)
	for i, cell := range row {
		if i > 0 {
			sb.WriteString(padding)
		}
		fill := ""
		if i < len(row)-1 {
			fill = strings.Repeat(" ", t.colWidths[i]-lipgloss.Width(cell))
		}
		if header {
			cell = Muted.Render(cell)
		}
		sb.WriteString(cell)
		sb.WriteString(fill)
	}
	sb.WriteString("\n")
}
