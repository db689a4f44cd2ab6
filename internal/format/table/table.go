package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes how one column is laid out. Max caps the column width;
// zero means unbounded.
type Column struct {
	Align Alignment
	Max   int
}

// Format returns the rows padded according to the widest entry in each
// column, truncating cells that exceed their column's Max.
func Format(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			width := cellWidth(fit(cell, columnMax(columns, c)))
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := 0; c < colCount; c++ {
			cell := ""
			if c < len(row) {
				cell = fit(row[c], columnMax(columns, c))
			}
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - cellWidth(cell)
			if c < len(columns) && columns[c].Align == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", max(pad, 0)))
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

func columnMax(columns []Column, c int) int {
	if c < len(columns) {
		return columns[c].Max
	}
	return 0
}

func fit(cell string, limit int) string {
	if limit <= 0 || cellWidth(cell) <= limit {
		return cell
	}
	if limit == 1 {
		return "…"
	}
	return truncate.StringWithTail(cell, uint(limit), "…")
}

func cellWidth(text string) int {
	return lipgloss.Width(text)
}
