package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows with a header rule. Columns marked with
// AlignRight are right-aligned so standing values line up by digit.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	right map[int]bool
}

// NewSimpleTable creates a table with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		right:   make(map[int]bool),
	}
}

// AlignRight marks columns, by index, as numeric.
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow adds a row. Cells may already carry ANSI styling; cells beyond the
// header count are ignored.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table. An empty table renders as nothing.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := t.columnWidths()
	sep := styles.Muted.Render("|")

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	sb.WriteString(t.renderRow(t.Headers, widths, styles.Bold, sep))

	rule := len(widths) - 1
	for _, w := range widths {
		rule += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", rule)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		sb.WriteString(t.renderRow(row, widths, lipgloss.NewStyle(), sep))
	}
	return sb.String()
}

// columnWidths is the widest visible cell per column plus one cell of
// padding on each side.
func (t *SimpleTable) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

func (t *SimpleTable) renderRow(cells []string, widths []int, base lipgloss.Style, sep string) string {
	n := min(len(cells), len(widths))
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		style := base.Padding(0, 1).Width(widths[i])
		if t.right[i] {
			style = style.Align(lipgloss.Right)
		}
		parts[i] = style.Render(cells[i])
	}
	return strings.Join(parts, sep) + "\n"
}
