package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ValueGrid adapts a value table to the plotter.GridXYZ interface so
// it can be rendered as a heat map over the grid the model was built
// on. Row 0 of the grid is drawn at the top, matching the textual
// layout orientation.
type ValueGrid struct {
	values *mat.VecDense
	rows   int
	cols   int
}

var _ plotter.GridXYZ = &ValueGrid{}

// NewValueGrid creates a ValueGrid over a value table for a grid with
// the given dimensions
func NewValueGrid(values *mat.VecDense, rows, cols int) (*ValueGrid, error) {
	if values.Len() != rows*cols {
		return nil, fmt.Errorf("newValueGrid: table has %d entries, grid "+
			"has %d cells", values.Len(), rows*cols)
	}
	return &ValueGrid{values, rows, cols}, nil
}

func (v *ValueGrid) Dims() (c, r int) {
	return v.cols, v.rows
}

func (v *ValueGrid) Z(c, r int) float64 {
	row := v.rows - 1 - r
	return v.values.AtVec(row*v.cols + c)
}

func (v *ValueGrid) X(c int) float64 {
	return float64(c)
}

func (v *ValueGrid) Y(r int) float64 {
	return float64(r)
}

// SaveHeatmap renders the ValueGrid as a heat map and saves it to
// path. The file format follows the path's extension.
func (v *ValueGrid) SaveHeatmap(title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"
	p.Add(plotter.NewHeatMap(v, palette.Heat(16, 1)))

	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saveHeatmap: could not save plot: %v", err)
	}
	return nil
}
