package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type column struct {
	title string
	right bool
}

// formatTable lays rows out in columns sized to their widest cell.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(cols, widths, header))
	for _, row := range rows {
		lines = append(lines, formatRow(cols, widths, row))
	}
	return lines
}

func formatRow(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if c.right {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
