// Package layout arranges pre-rendered labels into grids and aligned tables.
package layout

import (
	"strings"

	"xlsd/internal/width"
)

// Spacing is the gap between two columns, in cells.
const Spacing = 2

// Grid is a packing of labels into columns. Label i sits in column i mod n,
// row i / n, so only the last row may be short.
type Grid struct {
	Columns [][]string
	Widths  []int
}

// Layout picks the largest column count whose packed width fits termWidth and
// packs labels into it. One column is the floor even when it overflows.
func Layout(labels []string, termWidth int) Grid {
	if len(labels) == 0 {
		return Grid{}
	}
	widths := make([]int, len(labels))
	minWidth := 0
	for i, l := range labels {
		widths[i] = width.Of(l)
		if i == 0 || widths[i] < minWidth {
			minWidth = widths[i]
		}
	}

	bound := termWidth / max(minWidth, 1)
	bound = min(max(bound, 1), len(labels))

	best := 1
	for n := 2; n <= bound; n++ {
		if total(colWidths(widths, n)) <= termWidth {
			best = n
		}
	}
	return pack(labels, widths, best)
}

// colWidths returns the width of each column when packing into n columns.
func colWidths(widths []int, n int) []int {
	cols := make([]int, n)
	for i, w := range widths {
		cols[i%n] = max(cols[i%n], w)
	}
	return cols
}

func total(cols []int) int {
	sum := Spacing * (len(cols) - 1)
	for _, w := range cols {
		sum += w
	}
	return sum
}

func pack(labels []string, widths []int, n int) Grid {
	g := Grid{Columns: make([][]string, n), Widths: colWidths(widths, n)}
	for i, l := range labels {
		g.Columns[i%n] = append(g.Columns[i%n], l)
	}
	return g
}

// Width is the total cell width of the grid.
func (g Grid) Width() int {
	if len(g.Widths) == 0 {
		return 0
	}
	return total(g.Widths)
}

// Rows is the number of lines the grid renders to.
func (g Grid) Rows() int {
	if len(g.Columns) == 0 {
		return 0
	}
	return len(g.Columns[0])
}

// Lines renders the grid. Cells are padded to their column width plus
// Spacing, except the last cell of each line.
func (g Grid) Lines() []string {
	lines := make([]string, 0, g.Rows())
	for r := range g.Rows() {
		var b strings.Builder
		for c, col := range g.Columns {
			if r >= len(col) {
				break
			}
			last := c == len(g.Columns)-1 || r >= len(g.Columns[c+1])
			if last {
				b.WriteString(col[r])
				break
			}
			b.WriteString(width.Pad(col[r], g.Widths[c]+Spacing))
		}
		lines = append(lines, b.String())
	}
	return lines
}
