package grid

import (
	"math"
	"strings"
	"testing"
)

func TestNewGrid3DStartsMissing(t *testing.T) {
	g := NewGrid3D(3, 4, 5)
	if g.Size() != 60 {
		t.Errorf("expected size 60, got %d", g.Size())
	}
	if !g.AllMissing() {
		t.Error("expected a fresh grid to be all missing")
	}

	g.Set(1, 2, 3, 7.5)
	if g.AllMissing() {
		t.Error("expected grid with one value to not be all missing")
	}
	if v := g.At(1, 2, 3); v != 7.5 {
		t.Errorf("expected 7.5 at (1,2,3), got %v", v)
	}
}

func TestCoordinateCentering(t *testing.T) {
	// Odd extent: symmetric around zero.
	if c := Coordinate(2, 5); c != 0 {
		t.Errorf("expected center coordinate 0 for n=5, got %v", c)
	}
	if c := Coordinate(0, 5); c != -2 {
		t.Errorf("expected -2 for i=0, n=5, got %v", c)
	}
	if c := Coordinate(4, 5); c != 2 {
		t.Errorf("expected 2 for i=4, n=5, got %v", c)
	}

	// Even extent: zero sits at index n/2.
	if c := Coordinate(2, 4); c != 0 {
		t.Errorf("expected 0 for i=2, n=4, got %v", c)
	}
	if c := Coordinate(0, 4); c != -2 {
		t.Errorf("expected -2 for i=0, n=4, got %v", c)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	g := NewGrid3D(2, 3, 2)
	g.Set(0, 0, 0, 1.25)
	g.Set(1, 2, 1, -3.5)
	// (0,1,0) stays missing.

	var buf strings.Builder
	if err := WriteCSV(&buf, g); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got.Nx != 2 || got.Ny != 3 || got.Nz != 2 {
		t.Fatalf("expected shape 2x3x2, got %dx%dx%d", got.Nx, got.Ny, got.Nz)
	}
	if v := got.At(0, 0, 0); v != 1.25 {
		t.Errorf("expected 1.25 at (0,0,0), got %v", v)
	}
	if v := got.At(1, 2, 1); v != -3.5 {
		t.Errorf("expected -3.5 at (1,2,1), got %v", v)
	}
	if v := got.At(0, 1, 0); !math.IsNaN(v) {
		t.Errorf("expected missing cell at (0,1,0), got %v", v)
	}
}
