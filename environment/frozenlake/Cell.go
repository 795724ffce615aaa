package frozenlake

import (
	"fmt"
	"strings"
)

// Cell is the kind of a single grid cell
type Cell int

const (
	Start Cell = iota
	Frozen
	Hole
	Goal
)

func (c Cell) String() string {
	switch c {
	case Start:
		return "S"
	case Frozen:
		return "F"
	case Hole:
		return "H"
	case Goal:
		return "G"
	}
	return "?"
}

// Layout is a validated grid of cells. Layouts are immutable once
// parsed and may be shared between lakes.
type Layout struct {
	cells []Cell
	rows  int
	cols  int
	start int
}

// ParseLayout parses and validates a textual grid description, one
// string per row, with cells denoted by the letters S (start),
// F (frozen), H (hole), and G (goal). A layout must be rectangular and
// must contain exactly one start cell and at least one goal cell.
func ParseLayout(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parseLayout: no rows given")
	}

	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("parseLayout: empty first row")
	}

	cells := make([]Cell, 0, len(rows)*cols)
	start, goals := -1, 0

	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("parseLayout: row %d has %d cells, "+
				"expected %d", i, len(row), cols)
		}

		for j, r := range row {
			var cell Cell
			switch r {
			case 'S':
				cell = Start
				if start >= 0 {
					return nil, fmt.Errorf("parseLayout: more than one "+
						"start cell: rows %d and %d", start/cols, i)
				}
				start = i*cols + j

			case 'F':
				cell = Frozen

			case 'H':
				cell = Hole

			case 'G':
				cell = Goal
				goals++

			default:
				return nil, fmt.Errorf("parseLayout: unknown cell %q at "+
					"(%d, %d)", r, i, j)
			}
			cells = append(cells, cell)
		}
	}

	if start < 0 {
		return nil, fmt.Errorf("parseLayout: no start cell")
	}
	if goals == 0 {
		return nil, fmt.Errorf("parseLayout: no goal cell")
	}

	return &Layout{cells, len(rows), cols, start}, nil
}

// Dims gets the rows and columns of the Layout
func (l *Layout) Dims() (r, c int) {
	return l.rows, l.cols
}

// At returns the kind of the cell at position (i, j)
func (l *Layout) At(i, j int) Cell {
	return l.cells[i*l.cols+j]
}

func (l *Layout) String() string {
	var b strings.Builder
	for i := 0; i < l.rows; i++ {
		for j := 0; j < l.cols; j++ {
			b.WriteString(l.At(i, j).String())
		}
		if i < l.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
