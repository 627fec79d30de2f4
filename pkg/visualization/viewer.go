// Package visualization renders QC imagery for variogram estimation:
// grayscale slice sequences of a 3D map, empirical-versus-parametric
// center-line curves, and 2D variogram map heatmaps with a shared
// color scale.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"variogrest/pkg/grid"
)

// Viewer extracts and saves 2D slice imagery from a 3D map. Values are
// normalized to the map's finite range; missing cells render black.
type Viewer struct {
	volume *grid.Grid3D

	// lo and hi are the normalization range, scanned once.
	lo, hi float64
}

// NewViewer creates a viewer over the given volume.
func NewViewer(volume *grid.Grid3D) *Viewer {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range volume.Data {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return &Viewer{volume: volume, lo: lo, hi: hi}
}

func (v *Viewer) gray(val float64) color.Gray16 {
	if math.IsNaN(val) || v.hi <= v.lo {
		return color.Gray16{}
	}
	scaled := (val - v.lo) / (v.hi - v.lo)
	return color.Gray16{Y: uint16(math.Max(0, math.Min(65535, scaled*65535)))}
}

// ExtractSlice extracts a 2D grayscale slice perpendicular to the given
// axis at the given position.
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}
	g := v.volume

	var img *image.Gray16
	switch axis {
	case "x", "X":
		if position >= g.Nx {
			return nil, fmt.Errorf("position %d exceeds x extent %d", position, g.Nx)
		}
		img = image.NewGray16(image.Rect(0, 0, g.Ny, g.Nz))
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				img.SetGray16(j, k, v.gray(g.At(position, j, k)))
			}
		}
	case "y", "Y":
		if position >= g.Ny {
			return nil, fmt.Errorf("position %d exceeds y extent %d", position, g.Ny)
		}
		img = image.NewGray16(image.Rect(0, 0, g.Nx, g.Nz))
		for i := 0; i < g.Nx; i++ {
			for k := 0; k < g.Nz; k++ {
				img.SetGray16(i, k, v.gray(g.At(i, position, k)))
			}
		}
	case "z", "Z":
		if position >= g.Nz {
			return nil, fmt.Errorf("position %d exceeds z extent %d", position, g.Nz)
		}
		img = image.NewGray16(image.Rect(0, 0, g.Nx, g.Ny))
		for i := 0; i < g.Nx; i++ {
			for j := 0; j < g.Ny; j++ {
				img.SetGray16(i, j, v.gray(g.At(i, j, position)))
			}
		}
	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}
	return img, nil
}

// SaveSlice saves an extracted slice as a JPEG image.
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSliceSequence extracts and saves every slice along the given axis
// into outputDir.
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.volume.Nx
	case "y", "Y":
		maxPos = v.volume.Ny
	case "z", "Z":
		maxPos = v.volume.Nz
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
