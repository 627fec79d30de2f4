package estimation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Measure is the composite fit quality, nominally in [0, 1] with 1 a
// perfect fit, computed for the full volume and along the three
// coordinate-aligned lines through the grid center. A model fitting
// worse than the trivial median baseline can push a value below zero.
type Measure struct {
	Full   float64
	XSlice float64
	YSlice float64
	ZSlice float64
}

// NaNMeasure is the quality of a degenerate (all-missing) fit.
func NaNMeasure() Measure {
	nan := math.NaN()
	return Measure{Full: nan, XSlice: nan, YSlice: nan, ZSlice: nan}
}

// EvaluateQuality scores how well the fitted field explains the sampled
// observations. The samples are scattered back into two volumes of the
// original shape (empirical and model-evaluated, missing cells NaN) and
// two error contributions are combined per scope:
//
//	contribution 1: sum |e - m| / sum |e - sigmaEst| over the central
//	  half-extent sub-cube restricted to cells where both maps are
//	  below 0.5*sigmaEst; measures residual error against the error a
//	  constant-median baseline would make where the signal is low.
//	contribution 2: median |e - m| / sigmaEst over every non-missing
//	  cell, capped at 0.25 in the aggregate so an outlier region cannot
//	  erase a good central fit.
//
// with quality = 1 - (c1*0.75 + min(c2, 0.25)) and sigmaEst the median
// of the observed values.
func EvaluateQuality(fn FieldFunc, par []float64, s *Samples, nx, ny, nz int) Measure {
	if s.Len() == 0 {
		return NaNMeasure()
	}

	size := nx * ny * nz
	empirical := nanFilled(size)
	parametric := nanFilled(size)
	model := fn(s.X, s.Y, s.Z, par)
	pos := 0
	for idx := 0; idx < size; idx++ {
		if !s.Mask[idx] {
			continue
		}
		empirical[idx] = s.Values[pos]
		parametric[idx] = model[pos]
		pos++
	}

	sigmaEst := median(s.Values)

	c1 := scopedMeasure(empirical, parametric, sigmaEst, nx, ny, nz,
		contrib1Cells(empirical, parametric, sigmaEst, nx, ny, nz), contribution1)
	c2 := scopedMeasure(empirical, parametric, sigmaEst, nx, ny, nz,
		contrib2Cells(empirical), contribution2)

	return Measure{
		Full:   aggregate(c1.Full, c2.Full),
		XSlice: aggregate(c1.XSlice, c2.XSlice),
		YSlice: aggregate(c1.YSlice, c2.YSlice),
		ZSlice: aggregate(c1.ZSlice, c2.ZSlice),
	}
}

func aggregate(c1, c2 float64) float64 {
	return 1 - (c1*0.75 + math.Min(c2, 0.25))
}

// contribution1 is the residual-to-baseline sum ratio over the selected
// cells. An empty selection counts as zero error.
func contribution1(empirical, parametric []float64, sigmaEst float64) float64 {
	num, den := 0.0, 0.0
	for i := range empirical {
		num += math.Abs(empirical[i] - parametric[i])
		den += math.Abs(empirical[i] - sigmaEst)
	}
	if num == 0 && den == 0 {
		return 0
	}
	return num / den
}

// contribution2 is the median absolute residual scaled by sigmaEst.
func contribution2(empirical, parametric []float64, sigmaEst float64) float64 {
	if len(empirical) == 0 {
		return math.NaN()
	}
	diffs := make([]float64, len(empirical))
	for i := range empirical {
		diffs[i] = math.Abs(empirical[i] - parametric[i])
	}
	return median(diffs) / sigmaEst
}

type measureFunc func(empirical, parametric []float64, sigmaEst float64) float64

// scopedMeasure applies a contribution measure to the full cell
// selection and to its restriction to each of the three center lines.
func scopedMeasure(empirical, parametric []float64, sigmaEst float64, nx, ny, nz int, cells []bool, fn measureFunc) Measure {
	mx, my, mz := nx/2, ny/2, nz/2
	var full, xs, ys, zs selection
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				idx := (i*ny+j)*nz + k
				if !cells[idx] {
					continue
				}
				full.add(empirical[idx], parametric[idx])
				if j == my && k == mz {
					xs.add(empirical[idx], parametric[idx])
				}
				if i == mx && k == mz {
					ys.add(empirical[idx], parametric[idx])
				}
				if i == mx && j == my {
					zs.add(empirical[idx], parametric[idx])
				}
			}
		}
	}
	return Measure{
		Full:   fn(full.emp, full.par, sigmaEst),
		XSlice: fn(xs.emp, xs.par, sigmaEst),
		YSlice: fn(ys.emp, ys.par, sigmaEst),
		ZSlice: fn(zs.emp, zs.par, sigmaEst),
	}
}

type selection struct {
	emp, par []float64
}

func (s *selection) add(e, p float64) {
	s.emp = append(s.emp, e)
	s.par = append(s.par, p)
}

// contrib1Cells selects the cells of the central half-extent sub-cube
// (a quarter of each axis trimmed from both ends) where both the
// empirical and the parametric value are defined and below half the
// sigma estimate.
func contrib1Cells(empirical, parametric []float64, sigmaEst float64, nx, ny, nz int) []bool {
	px, py, pz := nx/4, ny/4, nz/4
	threshold := 0.5 * sigmaEst
	cells := make([]bool, nx*ny*nz)
	for i := px; i < nx-px; i++ {
		for j := py; j < ny-py; j++ {
			for k := pz; k < nz-pz; k++ {
				idx := (i*ny+j)*nz + k
				e, p := empirical[idx], parametric[idx]
				cells[idx] = !math.IsNaN(e) && !math.IsNaN(p) && e < threshold && p < threshold
			}
		}
	}
	return cells
}

// contrib2Cells selects every cell with a defined empirical value.
func contrib2Cells(empirical []float64) []bool {
	cells := make([]bool, len(empirical))
	for i, v := range empirical {
		cells[i] = !math.IsNaN(v)
	}
	return cells
}

func nanFilled(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// median returns the linearly interpolated middle value, matching the
// reference median for both odd and even sample counts.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}
