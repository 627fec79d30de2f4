package grid

import (
	"fmt"
	"math"
)

// Map is a correlation (variogram) map of rank 2 or 3, stored as a flat
// buffer with the last axis varying fastest. Rank-2 maps have shape
// (nx, ny); rank-3 maps have shape (nx, ny, nz). NaN marks lags without
// any contributing pairs.
type Map struct {
	Data  []float64
	Shape []int
}

// NewMap wraps a flat buffer with the given shape. The shape must have
// rank 2 or 3 and the buffer length must match its product.
func NewMap(data []float64, shape ...int) (*Map, error) {
	if len(shape) != 2 && len(shape) != 3 {
		return nil, fmt.Errorf("grid: map rank must be 2 or 3, got %d", len(shape))
	}
	size := 1
	for _, n := range shape {
		size *= n
	}
	if len(data) != size {
		return nil, fmt.Errorf("grid: buffer length %d does not match shape %v", len(data), shape)
	}
	return &Map{Data: data, Shape: append([]int(nil), shape...)}, nil
}

// FromGrid3D converts a volume to a rank-3 map sharing the same buffer.
func FromGrid3D(g *Grid3D) *Map {
	return &Map{Data: g.Data, Shape: []int{g.Nx, g.Ny, g.Nz}}
}

// Rank returns the number of axes.
func (m *Map) Rank() int {
	return len(m.Shape)
}

// At2 returns the value at (i, j) of a rank-2 map.
func (m *Map) At2(i, j int) float64 {
	return m.Data[i*m.Shape[1]+j]
}

// At3 returns the value at (i, j, k) of a rank-3 map.
func (m *Map) At3(i, j, k int) float64 {
	return m.Data[(i*m.Shape[1]+j)*m.Shape[2]+k]
}

// HorizontalMidSlice collapses a rank-3 map to its middle horizontal
// plane and returns the result as a rank-2 map. When the vertical extent
// is odd the exact middle plane is taken. When it is even the two middle
// planes are averaged per cell over their non-missing contributions: a
// cell missing in both stays missing, a cell missing in one takes the
// other at full weight. Rank-2 maps are returned unchanged.
func (m *Map) HorizontalMidSlice() (*Map, error) {
	switch m.Rank() {
	case 2:
		return m, nil
	case 3:
		nx, ny, nz := m.Shape[0], m.Shape[1], m.Shape[2]
		out := make([]float64, nx*ny)
		if nz%2 == 1 {
			mid := nz / 2
			for i := 0; i < nx; i++ {
				for j := 0; j < ny; j++ {
					out[i*ny+j] = m.At3(i, j, mid)
				}
			}
		} else {
			lo, hi := nz/2-1, nz/2
			for i := 0; i < nx; i++ {
				for j := 0; j < ny; j++ {
					v0, v1 := m.At3(i, j, lo), m.At3(i, j, hi)
					sum, n := 0.0, 0
					if !math.IsNaN(v0) {
						sum += v0
						n++
					}
					if !math.IsNaN(v1) {
						sum += v1
						n++
					}
					if n == 0 {
						out[i*ny+j] = math.NaN()
					} else {
						out[i*ny+j] = sum / float64(n)
					}
				}
			}
		}
		return &Map{Data: out, Shape: []int{nx, ny}}, nil
	default:
		return nil, fmt.Errorf("grid: %w: rank %d", ErrUnsupportedGeometry, m.Rank())
	}
}

// AllMissing reports whether every cell of the map is NaN.
func (m *Map) AllMissing() bool {
	for _, v := range m.Data {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
