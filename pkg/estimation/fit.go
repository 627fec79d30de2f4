package estimation

import (
	"math"

	"variogrest/pkg/grid"
)

// FitField3D fits a grid-evaluated parametric field to an observation
// volume and scores the result.
//
// array holds the observations with NaN for missing cells; cell (i,j,k)
// is the field evaluated at the centered coordinate (i-nx/2, j-ny/2,
// k-nz/2). res is the spatial resolution and counts the per-cell
// observation count behind array; both are accepted for interface
// stability and are not consumed by the fit itself. guess, lower and
// upper describe the parameter space. sigmaWT > 0 enables
// center-weighting with the given scale in grid cells; zero disables
// weighting.
//
// A fully missing volume is not an error: the parameter vector comes
// back NaN-filled with the guess length and the quality measure is NaN
// in all four fields, without invoking the solver.
func FitField3D(fn FieldFunc, jac JacobianFunc, array *grid.Grid3D, res grid.Resolution,
	counts *grid.Grid3D, guess, lower, upper []float64, sigmaWT float64) ([]float64, Measure, error) {
	_ = res

	samples := SampleGrid(array, counts)
	if samples.Len() == 0 {
		nanPar := make([]float64, len(guess))
		for i := range nanPar {
			nanPar[i] = math.NaN()
		}
		return nanPar, NaNMeasure(), nil
	}

	var sigma []float64
	if sigmaWT > 0 {
		sigma = DistanceSigmas(samples.X, samples.Y, samples.Z, sigmaWT)
	}

	par, err := FitBounded(fn, jac, samples, sigma, guess, lower, upper)
	if err != nil {
		return nil, Measure{}, err
	}

	quality := EvaluateQuality(fn, par, samples, array.Nx, array.Ny, array.Nz)
	return par, quality, nil
}
