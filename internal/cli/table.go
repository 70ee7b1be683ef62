package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lays out rows in aligned columns. Cells may carry ANSI styling, so
// widths are measured in visible cells rather than bytes.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	right   map[int]bool
}

// NewTable creates a table with the given headers. A nil or empty header
// list renders rows without a header block.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns a column, e.g. counts and ratios.
func (t *Table) AlignRight(col int) {
	t.right[col] = true
}

// AddRow adds a row, padding or truncating it to the column count.
func (t *Table) AddRow(row ...string) {
	cols := t.columns()
	if cols > 0 && len(row) != cols {
		fixed := make([]string, cols)
		copy(fixed, row)
		row = fixed
	}
	t.rows = append(t.rows, row)
}

func (t *Table) columns() int {
	if len(t.headers) > 0 {
		return len(t.headers)
	}
	if len(t.rows) > 0 {
		return len(t.rows[0])
	}
	return 0
}

// Render returns the table with a header, a dashed separator and one line per row.
func (t *Table) Render() string {
	cols := t.columns()
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	if len(t.headers) > 0 {
		t.writeLine(&b, t.headers, widths)
		sep := make([]string, cols)
		for i, w := range widths {
			sep[i] = strings.Repeat("-", w)
		}
		t.writeLine(&b, sep, widths)
	}
	for _, row := range t.rows {
		t.writeLine(&b, row, widths)
	}
	return b.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		if t.right[i] {
			parts[i] = padLeft(cells[i], w)
		} else {
			parts[i] = padRight(cells[i], w)
		}
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, strings.Repeat(" ", t.padding)), " "))
	b.WriteString("\n")
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft pads s on the left to width visible cells.
func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
