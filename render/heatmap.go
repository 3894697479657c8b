// Package render draws matrices and views as heat maps with gonum/plot.
package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/ctm/matrix"
	"github.com/YuminosukeSato/ctm/pkg/errors"
	"github.com/YuminosukeSato/ctm/pkg/log"
)

// grid is a snapshot of a matrix or view satisfying plotter.GridXYZ.
// Row 0 is drawn at the top.
type grid struct {
	rows, cols int
	values     []float64 // row-major
}

// Snapshot copies src into a grid. Reads go through src.At so stale or
// degenerate views fail here rather than while drawing. NaN and Inf have no
// color and are rejected.
func Snapshot[T matrix.Number](src matrix.Reader[T]) (plotter.GridXYZ, error) {
	rows, cols := src.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyMatrix, "render.Snapshot")
	}
	g := &grid{rows: rows, cols: cols, values: make([]float64, rows*cols)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := src.At(i, j)
			if err != nil {
				return nil, err
			}
			f := float64(v)
			if err := errors.CheckScalar("render.Snapshot", f); err != nil {
				return nil, err
			}
			g.values[i*cols+j] = f
		}
	}
	return g, nil
}

func (g *grid) Dims() (c, r int)   { return g.cols, g.rows }
func (g *grid) X(c int) float64    { return float64(c) }
func (g *grid) Y(r int) float64    { return float64(r) }
func (g *grid) Z(c, r int) float64 { return g.values[(g.rows-1-r)*g.cols+c] }

// HeatMap builds a plot of src with the given title using a heat palette
// of the given number of colors.
func HeatMap[T matrix.Number](title string, src matrix.Reader[T], colors int) (*plot.Plot, error) {
	g, err := Snapshot(src)
	if err != nil {
		log.GetLoggerWithName("render").Debug("snapshot failed", err, log.OperationKey, log.OperationRender)
		return nil, err
	}
	if colors < 2 {
		colors = 2
	}

	hm := plotter.NewHeatMap(g, palette.Heat(colors, 1))
	if hm.Min == hm.Max {
		// a constant matrix still needs a non-empty color range
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row (reversed)"
	p.Add(hm)
	return p, nil
}

// SaveHeatMap renders src to path. The image format follows the file
// extension (png, svg, pdf, ...).
func SaveHeatMap[T matrix.Number](path, title string, src matrix.Reader[T], w, h vg.Length) error {
	p, err := HeatMap(title, src, 12)
	if err != nil {
		return err
	}
	// gonum/plot panics on some invalid canvas sizes
	err = errors.SafeExecute("render.SaveHeatMap", func() error {
		return p.Save(w, h, path)
	})
	if err != nil {
		return errors.Wrapf(err, "saving heat map to %s", path)
	}
	rows, cols := src.Dims()
	log.GetLoggerWithName("render").Info("heat map saved",
		log.OperationKey, log.OperationRender,
		log.RowsKey, rows,
		log.ColsKey, cols,
		"path", path,
	)
	return nil
}
