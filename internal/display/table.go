package display

import (
	"strings"
	"unicode/utf8"
)

// Table renders an aligned text table with optional color support.
// Cell widths are measured in runes so degree signs and other multi-byte
// characters keep columns aligned.
type Table struct {
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index to accent (typically "today"). -1 = none.
	highlightRow int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// AddRow appends a row. The number of cells should match the number of headers.
func (t *Table) AddRow(cells []string) {
	t.rows = append(t.rows, cells)
}

// SetHighlightRow sets which row index (0-based) should be accented.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Column widths fit the widest cell, headers included.
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder

	// Header row.
	headerLine := formatRow(t.headers, widths)
	sb.WriteString("  " + Bold(headerLine) + "\n")

	// Separator row using Unicode box-drawing dashes.
	sepParts := make([]string, len(widths))
	for i, w := range widths {
		sepParts[i] = strings.Repeat("─", w)
	}
	sepLine := "  " + strings.Join(sepParts, "  ")
	sb.WriteString(Dim(sepLine) + "\n")

	// Data rows.
	for i, row := range t.rows {
		line := formatRow(row, widths)
		if i == t.highlightRow {
			sb.WriteString("  " + Accent(line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	return sb.String()
}

// formatRow left-aligns each cell to its column width, padding with spaces.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if pad := w - utf8.RuneCountInString(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		parts[i] = cell
	}
	return strings.Join(parts, "  ")
}
