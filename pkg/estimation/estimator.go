package estimation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"variogrest/pkg/direction"
	"variogrest/pkg/grid"
	"variogrest/pkg/variogram"
)

// Params holds the estimation configuration for one run.
type Params struct {
	// Grid is the observation volume. Missing cells are NaN.
	Grid *grid.Grid3D

	// Resolution is the physical cell size of Grid.
	Resolution grid.Resolution

	// Family selects the parametric variogram shape to fit.
	Family variogram.Family

	// SigmaWeight enables center-weighted fitting with the given scale
	// in grid cells. Zero disables weighting.
	SigmaWeight float64
}

// Estimate is the outcome of one estimation run.
type Estimate struct {
	Family     variogram.Family
	Parameters []float64
	Quality    Measure

	// Azimuth is the dominant direction of the empirical map in
	// radians, used to seed the fit.
	Azimuth float64

	// Map and Counts are the empirical variogram map and its per-lag
	// pair counts.
	Map    *grid.Grid3D
	Counts *grid.Grid3D
}

// Estimator runs the estimation pipeline: empirical variogram map,
// dominant direction, bounded weighted fit, quality measure.
type Estimator struct {
	params *Params
}

// NewEstimator creates an estimator for the given parameters.
func NewEstimator(p *Params) *Estimator {
	return &Estimator{params: p}
}

// Process executes the pipeline and returns the estimate. An
// all-missing observation volume yields a NaN parameter vector and NaN
// quality rather than an error.
func (e *Estimator) Process() (*Estimate, error) {
	p := e.params
	vmap, counts := EmpiricalVariogramMap(p.Grid)

	azimuth, err := direction.DominantAzimuth(grid.FromGrid3D(vmap), p.Resolution.Dx, p.Resolution.Dy)
	if err != nil {
		return nil, fmt.Errorf("estimation: dominant direction: %w", err)
	}

	guess, lower, upper := defaultParameterSpace(vmap, azimuth)
	fn := p.Family.Variogram()
	jac := p.Family.Jacobian()
	par, quality, err := FitField3D(fn, jac, vmap, p.Resolution, counts, guess, lower, upper, p.SigmaWeight)
	if err != nil {
		return nil, fmt.Errorf("estimation: fitting %s family: %w", p.Family, err)
	}

	return &Estimate{
		Family:     p.Family,
		Parameters: par,
		Quality:    quality,
		Azimuth:    azimuth,
		Map:        vmap,
		Counts:     counts,
	}, nil
}

// defaultParameterSpace derives the initial guess and bounds from the
// empirical map: ranges start at half the map half-extent, the sill at
// the median semivariance, and the azimuth at the dominant direction of
// the map.
func defaultParameterSpace(vmap *grid.Grid3D, azimuth float64) (guess, lower, upper []float64) {
	present := make([]float64, 0, len(vmap.Data))
	for _, v := range vmap.Data {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	maxVar := 0.0
	sillGuess := 0.0
	if len(present) > 0 {
		maxVar = floats.Max(present)
		sillGuess = math.Sqrt(median(present))
	}
	sillUpper := math.Max(2*math.Sqrt(maxVar), 1)

	ex := math.Max(float64(vmap.Nx/2), 1)
	ey := math.Max(float64(vmap.Ny/2), 1)
	ez := math.Max(float64(vmap.Nz/2), 1)
	extent := math.Max(ex, math.Max(ey, ez))

	guess = make([]float64, variogram.NumParams)
	lower = make([]float64, variogram.NumParams)
	upper = make([]float64, variogram.NumParams)

	guess[variogram.ParamRangeX] = ex / 2
	guess[variogram.ParamRangeY] = ey / 2
	guess[variogram.ParamRangeZ] = ez / 2
	guess[variogram.ParamAzimuth] = azimuth
	guess[variogram.ParamSigma] = sillGuess

	for _, idx := range []int{variogram.ParamRangeX, variogram.ParamRangeY, variogram.ParamRangeZ} {
		lower[idx] = 0.1
		upper[idx] = 10 * extent
	}
	lower[variogram.ParamAzimuth] = 0
	upper[variogram.ParamAzimuth] = math.Pi
	lower[variogram.ParamSigma] = 0
	upper[variogram.ParamSigma] = sillUpper

	return guess, lower, upper
}
