package layout

import (
	"strings"

	"xlsd/internal/width"
)

// Align controls how a table cell is padded to its column width.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignIgnore
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignIgnore:
		return "ignore"
	}
	return "unknown"
}

// Table holds parallel columns of cells. Columns may have different lengths;
// missing cells render empty.
type Table struct {
	Columns [][]string
	Aligns  []Align
}

func (t Table) align(c int) Align {
	if c < len(t.Aligns) {
		return t.Aligns[c]
	}
	return AlignLeft
}

// Lines renders one line per row of the tallest column. Left-aligned cells
// are padded on the right except in the last column, right-aligned cells on
// the left, and ignored cells never.
func (t Table) Lines() []string {
	rows := 0
	widths := make([]int, len(t.Columns))
	for c, col := range t.Columns {
		rows = max(rows, len(col))
		for _, cell := range col {
			widths[c] = max(widths[c], width.Of(cell))
		}
	}

	lines := make([]string, 0, rows)
	cells := make([]string, len(t.Columns))
	for r := range rows {
		for c, col := range t.Columns {
			var cell string
			if r < len(col) {
				cell = col[r]
			}
			switch t.align(c) {
			case AlignLeft:
				if c < len(t.Columns)-1 {
					cell = width.Pad(cell, widths[c])
				}
			case AlignRight:
				cell = width.PadLeft(cell, widths[c])
			}
			cells[c] = cell
		}
		lines = append(lines, strings.Join(cells, strings.Repeat(" ", Spacing)))
	}
	return lines
}
