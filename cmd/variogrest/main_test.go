package main

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"variogrest/pkg/estimation"
	"variogrest/pkg/grid"
	"variogrest/pkg/variogram"
)

func TestFittedVariogramMapUsesCellUnits(t *testing.T) {
	// Fitted ranges are in cell units; the rendered model must match a
	// direct evaluation at cell lags even when the physical resolution
	// is not 1.
	par := []float64{4, 4, 2, 0, 1}
	vmap := grid.NewGrid3D(9, 9, 5)
	est := &estimation.Estimate{Parameters: par, Map: vmap}

	fitted := fittedVariogramMap(variogram.Exponential, est)

	// Cell lag 2 along x: t = 2/4, gamma = 1 - exp(-1.5).
	want := 1 - math.Exp(-1.5)
	got := fitted.At(6, 4, 2)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("fitted map at cell lag 2 = %v, want %v", got, want)
	}

	// The physically scaled evaluation would land at t = 1 instead.
	wrong := 1 - math.Exp(-3)
	if math.Abs(got-wrong) < 1e-6 {
		t.Errorf("fitted map evaluated with physical lags: %v", got)
	}
}

func TestSaveImageryColorLimitsFromObservations(t *testing.T) {
	// The shared color scale comes from the observed data, not from the
	// semivariances: with observations of variance 4/3 the upper limit
	// is 2, so a map cell at 2 renders full white.
	observations := grid.NewGrid3D(2, 2, 1)
	observations.Set(0, 0, 0, 0)
	observations.Set(0, 1, 0, 2)
	observations.Set(1, 0, 0, 0)
	observations.Set(1, 1, 0, 2)

	vmap := grid.NewGrid3D(3, 3, 3)
	for idx := range vmap.Data {
		vmap.Data[idx] = 0.5
	}
	vmap.Set(0, 0, 1, 2)
	vmap.Set(1, 1, 1, 1)

	est := &estimation.Estimate{
		Parameters: []float64{2, 2, 2, 0, 1},
		Map:        vmap,
		Counts:     grid.NewGrid3D(3, 3, 3),
	}

	dir := t.TempDir()
	res := grid.Resolution{Dx: 1, Dy: 1, Dz: 1}
	if err := saveImagery(dir, variogram.Exponential, est, observations, res); err != nil {
		t.Fatalf("saveImagery failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "map_empirical_exponential.png"))
	if err != nil {
		t.Fatalf("expected empirical map image: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding empirical map image: %v", err)
	}

	at := func(i, j int) uint16 {
		return color.Gray16Model.Convert(img.At(i, j)).(color.Gray16).Y
	}
	if got := at(0, 0); got != 65535 {
		t.Errorf("expected the upper-limit cell to render white, got %d", got)
	}
	if got := at(1, 1); got != 32767 {
		t.Errorf("expected the half-limit cell to render mid gray, got %d", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "map_fitted_exponential.png")); err != nil {
		t.Errorf("expected fitted map image: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slices_exponential_x.png")); err != nil {
		t.Errorf("expected slice plot: %v", err)
	}
}
