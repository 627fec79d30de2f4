// Package direction locates the dominant anisotropy direction of a
// correlation map: the azimuth along which the cumulative variogram
// grows slowest with lag distance, found by integrating interpolated
// radial profiles over a fan of candidate azimuths.
package direction

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"variogrest/pkg/grid"
	"variogrest/pkg/interpolation"
)

const (
	numAzimuths  = 24
	numDistances = 21
)

// DominantAzimuth returns the azimuth in [0, pi) of slowest correlation
// decay for a rank-2 or rank-3 map with the given planar resolution.
// Rank-3 maps are collapsed to their middle horizontal plane first. An
// entirely missing map yields azimuth 0. Maps of any other rank are an
// error.
func DominantAzimuth(m *grid.Map, dx, dy float64) (float64, error) {
	plane, err := m.HorizontalMidSlice()
	if err != nil {
		return 0, err
	}
	if plane.AllMissing() {
		return 0, nil
	}

	nx, ny := plane.Shape[0], plane.Shape[1]
	xLength := float64(nx-1) * dx
	yLength := float64(ny-1) * dy

	var pts []r2.Vec
	var vals []float64
	for i := 0; i < nx; i++ {
		x := (float64(i) - float64(nx-1)/2) * dx
		for j := 0; j < ny; j++ {
			v := plane.At2(i, j)
			if math.IsNaN(v) {
				continue
			}
			y := (float64(j) - float64(ny-1)/2) * dy
			pts = append(pts, r2.Vec{X: x, Y: y})
			vals = append(vals, v)
		}
	}

	interp, err := interpolation.NewLinearND(pts, vals)
	if err != nil {
		// Too few points to span any direction.
		return 0, nil
	}

	hMax := 0.5 * math.Min(xLength, yLength)
	lags := make([]float64, numDistances)
	for j := range lags {
		lags[j] = hMax * float64(j) / float64(numDistances-1)
	}

	// Each azimuth's profile is independent; integrate them in
	// parallel and collect by index.
	integrals := make([]float64, numAzimuths)
	var wg sync.WaitGroup
	for i := 0; i < numAzimuths; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			azi := math.Pi * float64(i) / numAzimuths
			sin, cos := math.Sincos(azi)
			profile := make([]float64, numDistances)
			for j, h := range lags {
				profile[j] = interp.At(r2.Vec{X: cos * h, Y: sin * h})
			}
			integrals[i] = trapezoidPresent(lags, profile)
		}(i)
	}
	wg.Wait()

	best := -1
	for i, v := range integrals {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v < integrals[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, nil
	}
	return math.Pi * float64(best) / numAzimuths, nil
}

// trapezoidPresent integrates y over x by the trapezoidal rule, using
// only the lags whose value is present. Interior gaps are bridged by
// the surrounding present samples, which approximates rather than
// reproduces the exact quadrature. Fewer than two present samples give
// NaN.
func trapezoidPresent(x, y []float64) float64 {
	sum := 0.0
	prev := -1
	segments := 0
	for i := range y {
		if math.IsNaN(y[i]) {
			continue
		}
		if prev >= 0 {
			sum += 0.5 * (y[i] + y[prev]) * (x[i] - x[prev])
			segments++
		}
		prev = i
	}
	if segments == 0 {
		return math.NaN()
	}
	return sum
}
