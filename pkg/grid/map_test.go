package grid

import (
	"errors"
	"math"
	"testing"
)

func TestHorizontalMidSliceOdd(t *testing.T) {
	g := NewGrid3D(2, 2, 3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 3; k++ {
				g.Set(i, j, k, float64(100*i+10*j+k))
			}
		}
	}

	slice, err := FromGrid3D(g).HorizontalMidSlice()
	if err != nil {
		t.Fatalf("HorizontalMidSlice failed: %v", err)
	}
	if slice.Rank() != 2 {
		t.Fatalf("expected rank 2, got %d", slice.Rank())
	}
	// Middle plane is k=1.
	if v := slice.At2(1, 0); v != 101 {
		t.Errorf("expected 101 at (1,0), got %v", v)
	}
}

func TestHorizontalMidSliceEven(t *testing.T) {
	g := NewGrid3D(1, 3, 2)
	// Both middle planes present.
	g.Set(0, 0, 0, 2)
	g.Set(0, 0, 1, 4)
	// Only one plane present.
	g.Set(0, 1, 1, 6)
	// (0,2,*) stays missing in both planes.

	slice, err := FromGrid3D(g).HorizontalMidSlice()
	if err != nil {
		t.Fatalf("HorizontalMidSlice failed: %v", err)
	}
	if v := slice.At2(0, 0); v != 3 {
		t.Errorf("expected average 3 when both planes present, got %v", v)
	}
	if v := slice.At2(0, 1); v != 6 {
		t.Errorf("expected 6 at full weight when one plane present, got %v", v)
	}
	if v := slice.At2(0, 2); !math.IsNaN(v) {
		t.Errorf("expected missing when both planes missing, got %v", v)
	}
}

func TestMidSliceRankErrors(t *testing.T) {
	m2, err := NewMap(make([]float64, 6), 2, 3)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	got, err := m2.HorizontalMidSlice()
	if err != nil {
		t.Fatalf("expected rank-2 map to pass through, got error: %v", err)
	}
	if got != m2 {
		t.Error("expected rank-2 map to be returned unchanged")
	}

	bad := &Map{Data: make([]float64, 2), Shape: []int{2}}
	if _, err := bad.HorizontalMidSlice(); !errors.Is(err, ErrUnsupportedGeometry) {
		t.Errorf("expected ErrUnsupportedGeometry for rank 1, got %v", err)
	}

	if _, err := NewMap(make([]float64, 2), 2); err == nil {
		t.Error("expected NewMap to reject rank-1 shapes")
	}
}
