// Package estimation implements the numerical core of variogram
// estimation: sampling an observation volume into solver inputs,
// distance-based sample weighting, bounded weighted least-squares
// fitting of a parametric field, the composite fit-quality measure, and
// the FFT-based empirical variogram map the pipeline feeds into the fit.
package estimation

import (
	"math"

	"variogrest/pkg/grid"
)

// Samples holds the solver view of an observation volume: centered cell
// coordinates, observed values and companion pair counts for every
// non-missing cell, plus the not-missing mask over the full raveled
// grid used to scatter results back.
type Samples struct {
	X, Y, Z []float64
	Values  []float64
	Counts  []float64
	Mask    []bool
}

// Len returns the number of retained samples.
func (s *Samples) Len() int {
	return len(s.Values)
}

// SampleGrid converts a volume into coordinate/value/count triples,
// dropping missing cells. Coordinates are centered cell indices. The
// counts grid may be nil; when present it must share the volume's shape
// and is filtered identically. An all-missing volume yields zero
// samples.
func SampleGrid(g *grid.Grid3D, counts *grid.Grid3D) *Samples {
	n := g.Size()
	s := &Samples{Mask: make([]bool, n)}
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				idx := g.Index(i, j, k)
				v := g.Data[idx]
				if math.IsNaN(v) {
					continue
				}
				s.Mask[idx] = true
				s.X = append(s.X, grid.Coordinate(i, g.Nx))
				s.Y = append(s.Y, grid.Coordinate(j, g.Ny))
				s.Z = append(s.Z, grid.Coordinate(k, g.Nz))
				s.Values = append(s.Values, v)
				if counts != nil {
					s.Counts = append(s.Counts, counts.Data[idx])
				}
			}
		}
	}
	return s
}
