package visualization

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"variogrest/pkg/grid"
)

func rampVolume() *grid.Grid3D {
	g := grid.NewGrid3D(4, 3, 2)
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 2; k++ {
				g.Set(i, j, k, float64(i+j+k))
			}
		}
	}
	return g
}

func TestExtractSliceDimensions(t *testing.T) {
	v := NewViewer(rampVolume())

	img, err := v.ExtractSlice("x", 1)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("expected 3x2 x-slice, got %dx%d", b.Dx(), b.Dy())
	}

	img, err = v.ExtractSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("expected 4x3 z-slice, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestExtractSliceNormalization(t *testing.T) {
	v := NewViewer(rampVolume())
	img, err := v.ExtractSlice("z", 1)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	// Values span 0..6, so cell (0,0) at value 1 maps below mid gray and
	// cell (3,2) at the maximum maps to full white.
	white := color.Gray16Model.Convert(img.At(3, 2)).(color.Gray16)
	if white.Y != 65535 {
		t.Errorf("expected the maximum value to map to white, got %d", white.Y)
	}
	low := color.Gray16Model.Convert(img.At(0, 0)).(color.Gray16)
	if low.Y >= white.Y {
		t.Errorf("expected lower values to map darker, got %d", low.Y)
	}
}

func TestExtractSliceMissingRendersBlack(t *testing.T) {
	g := rampVolume()
	g.Set(2, 1, 0, math.NaN())
	v := NewViewer(g)
	img, err := v.ExtractSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	px := color.Gray16Model.Convert(img.At(2, 1)).(color.Gray16)
	if px.Y != 0 {
		t.Errorf("expected missing cell to render black, got %d", px.Y)
	}
}

func TestExtractSliceErrors(t *testing.T) {
	v := NewViewer(rampVolume())
	if _, err := v.ExtractSlice("w", 0); err == nil {
		t.Error("expected an error for an invalid axis")
	}
	if _, err := v.ExtractSlice("x", 10); err == nil {
		t.Error("expected an error for an out-of-range position")
	}
	if _, err := v.ExtractSlice("x", -1); err == nil {
		t.Error("expected an error for a negative position")
	}
}

func TestSaveSliceSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slices")
	v := NewViewer(rampVolume())
	if err := v.SaveSliceSequence("y", dir); err != nil {
		t.Fatalf("SaveSliceSequence failed: %v", err)
	}
	for pos := 0; pos < 3; pos++ {
		name := filepath.Join(dir, fmt.Sprintf("slice_y_%03d.jpg", pos))
		if _, err := os.Stat(name); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestMapColorLimits(t *testing.T) {
	lo, hi := MapColorLimits([]float64{1, 2, 3, math.NaN(), 4})
	if lo != 0 {
		t.Errorf("expected lower limit 0, got %v", lo)
	}
	// Sample variance of 1..4 is 5/3.
	if math.Abs(hi-1.5*5.0/3.0) > 1e-12 {
		t.Errorf("expected upper limit 2.5, got %v", hi)
	}

	lo, hi = MapColorLimits([]float64{math.NaN()})
	if lo != 0 || hi != 1 {
		t.Errorf("expected fallback limits [0, 1], got [%v, %v]", lo, hi)
	}
}
