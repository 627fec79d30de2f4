package visualization

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"variogrest/pkg/grid"
)

// centerLine collects the positive half of the center line of g along
// the given axis, paired with physical lag distances. Missing cells are
// skipped.
func centerLine(g *grid.Grid3D, axis string, res grid.Resolution) (plotter.XYs, error) {
	ci, cj, ck := g.Center()

	var n int
	var step float64
	var at func(s int) float64
	switch axis {
	case "x":
		n, step = g.Nx-ci, res.Dx
		at = func(s int) float64 { return g.At(ci+s, cj, ck) }
	case "y":
		n, step = g.Ny-cj, res.Dy
		at = func(s int) float64 { return g.At(ci, cj+s, ck) }
	case "z":
		n, step = g.Nz-ck, res.Dz
		at = func(s int) float64 { return g.At(ci, cj, ck+s) }
	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	pts := make(plotter.XYs, 0, n)
	for s := 0; s < n; s++ {
		v := at(s)
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(s) * step, Y: v})
	}
	return pts, nil
}

// SaveSlicePlot plots the empirical and fitted variogram values along
// the center line of the given axis and saves the figure as a PNG.
func SaveSlicePlot(empirical, fitted *grid.Grid3D, res grid.Resolution, axis, title, filename string) error {
	empPts, err := centerLine(empirical, axis, res)
	if err != nil {
		return err
	}
	fitPts, err := centerLine(fitted, axis, res)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("lag %s [m]", axis)
	p.Y.Label.Text = "variogram"

	empLine, empDots, err := plotter.NewLinePoints(empPts)
	if err != nil {
		return err
	}
	empDots.Shape = draw.CircleGlyph{}
	empDots.Radius = vg.Points(2)

	fitLine, err := plotter.NewLine(fitPts)
	if err != nil {
		return err
	}
	fitLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(empLine, empDots, fitLine)
	p.Legend.Add("empirical", empLine, empDots)
	p.Legend.Add("fitted", fitLine)
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// SaveSlicePlots writes one center-line plot per axis using the given
// filename pattern, which must contain a %s verb for the axis name.
func SaveSlicePlots(empirical, fitted *grid.Grid3D, res grid.Resolution, title, pattern string) error {
	for _, axis := range []string{"x", "y", "z"} {
		name := fmt.Sprintf(pattern, axis)
		if err := SaveSlicePlot(empirical, fitted, res, axis, title, name); err != nil {
			return fmt.Errorf("failed to plot %s slice: %w", axis, err)
		}
	}
	return nil
}
