package interpolation

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func planePoints() ([]r2.Vec, []float64) {
	// z = 2x + 3y + 1 on a 4x4 grid.
	var pts []r2.Vec
	var vals []float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			p := r2.Vec{X: float64(i), Y: float64(j)}
			pts = append(pts, p)
			vals = append(vals, 2*p.X+3*p.Y+1)
		}
	}
	return pts, vals
}

func TestLinearNDReproducesPlane(t *testing.T) {
	interp, err := NewLinearND(planePoints())
	if err != nil {
		t.Fatalf("NewLinearND failed: %v", err)
	}

	queries := []r2.Vec{
		{X: 0.5, Y: 0.5},
		{X: 1.3, Y: 2.7},
		{X: 0, Y: 0},
		{X: 3, Y: 3},
		{X: 2.99, Y: 0.01},
	}
	for _, q := range queries {
		want := 2*q.X + 3*q.Y + 1
		got := interp.At(q)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("At(%v) = %v, want %v", q, got, want)
		}
	}
}

func TestLinearNDOutsideHull(t *testing.T) {
	interp, err := NewLinearND(planePoints())
	if err != nil {
		t.Fatalf("NewLinearND failed: %v", err)
	}
	for _, q := range []r2.Vec{{X: -1, Y: 0}, {X: 5, Y: 5}, {X: 1.5, Y: -0.2}} {
		if got := interp.At(q); !math.IsNaN(got) {
			t.Errorf("At(%v) = %v, want NaN outside the hull", q, got)
		}
	}
}

func TestLinearNDTooFewPoints(t *testing.T) {
	_, err := NewLinearND([]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}}, []float64{1, 2})
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints for two points, got %v", err)
	}

	// Collinear points admit no triangulation either.
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	if _, err := NewLinearND(pts, []float64{1, 2, 3, 4}); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints for collinear points, got %v", err)
	}
}

func TestLinearNDLengthMismatch(t *testing.T) {
	if _, err := NewLinearND([]r2.Vec{{}, {X: 1}, {Y: 1}}, []float64{1}); err == nil {
		t.Error("expected an error for mismatched lengths")
	}
}
