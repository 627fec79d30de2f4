// Package grid provides the gridded data model shared by the estimation
// pipeline: 3D observation volumes with a NaN missing-value sentinel,
// lower-rank lag maps, and the physical resolution attached to them.
package grid

import (
	"fmt"
	"math"
)

// Resolution is the physical cell size along each axis.
type Resolution struct {
	Dx, Dy, Dz float64
}

// Grid3D is a 3D array of observations stored as a flat buffer in
// row-major (x-major) order: the cell (i, j, k) lives at index
// (i*Ny+j)*Nz+k. Missing measurements are represented by NaN.
type Grid3D struct {
	Data       []float64
	Nx, Ny, Nz int
}

// NewGrid3D allocates a grid of the given shape with every cell missing.
func NewGrid3D(nx, ny, nz int) *Grid3D {
	data := make([]float64, nx*ny*nz)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Grid3D{Data: data, Nx: nx, Ny: ny, Nz: nz}
}

// NewGrid3DFrom wraps an existing flat buffer. The buffer length must
// equal nx*ny*nz.
func NewGrid3DFrom(data []float64, nx, ny, nz int) (*Grid3D, error) {
	if len(data) != nx*ny*nz {
		return nil, fmt.Errorf("grid: buffer length %d does not match shape %dx%dx%d", len(data), nx, ny, nz)
	}
	return &Grid3D{Data: data, Nx: nx, Ny: ny, Nz: nz}, nil
}

// Index returns the flat buffer index of cell (i, j, k).
func (g *Grid3D) Index(i, j, k int) int {
	return (i*g.Ny+j)*g.Nz + k
}

// At returns the value at cell (i, j, k). NaN means missing.
func (g *Grid3D) At(i, j, k int) float64 {
	return g.Data[g.Index(i, j, k)]
}

// Set stores a value at cell (i, j, k).
func (g *Grid3D) Set(i, j, k int, v float64) {
	g.Data[g.Index(i, j, k)] = v
}

// Size returns the total number of cells.
func (g *Grid3D) Size() int {
	return g.Nx * g.Ny * g.Nz
}

// AllMissing reports whether every cell of the grid is NaN.
func (g *Grid3D) AllMissing() bool {
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Coordinate maps an index along an axis of length n to its centered
// coordinate: index i corresponds to i - floor(n/2) cells from the
// grid center.
func Coordinate(i, n int) float64 {
	return float64(i - n/2)
}

// Center returns the center cell indices (floor of half the extent on
// each axis).
func (g *Grid3D) Center() (int, int, int) {
	return g.Nx / 2, g.Ny / 2, g.Nz / 2
}
