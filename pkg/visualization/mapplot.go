package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"

	"variogrest/pkg/grid"
)

// MapColorLimits returns the shared color scale for variogram map
// imagery: zero up to 1.5 times the variance of the present data
// values. The same limits applied to the empirical and the fitted map
// make the two images directly comparable.
func MapColorLimits(values []float64) (lo, hi float64) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return 0, 1
	}
	hi = 1.5 * stat.Variance(present, nil)
	if hi <= 0 {
		hi = 1
	}
	return 0, hi
}

// SaveMapImage renders a 2D map as a grayscale PNG with the given color
// limits. Missing cells render black; values outside the limits clip.
func SaveMapImage(m *grid.Map, lo, hi float64, filename string) error {
	if m.Rank() != 2 {
		return fmt.Errorf("map rank %d: %w", m.Rank(), grid.ErrUnsupportedGeometry)
	}
	nx, ny := m.Shape[0], m.Shape[1]

	img := image.NewGray16(image.Rect(0, 0, nx, ny))
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			v := m.At2(i, j)
			if math.IsNaN(v) || hi <= lo {
				img.SetGray16(i, j, color.Gray16{})
				continue
			}
			scaled := (v - lo) / (hi - lo)
			scaled = math.Max(0, math.Min(1, scaled))
			img.SetGray16(i, j, color.Gray16{Y: uint16(scaled * 65535)})
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
