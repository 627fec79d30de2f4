package variogram

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"variogrest/pkg/grid"
)

// Parameter vector layout for the anisotropic model. The horizontal
// plane is rotated by the azimuth before the per-axis range scaling, so
// RangeX acts along the azimuth direction and RangeY across it.
const (
	ParamRangeX = iota
	ParamRangeY
	ParamRangeZ
	ParamAzimuth
	ParamSigma

	NumParams
)

// normLag computes the rotated, range-scaled lag distance t for a single
// coordinate, along with the rotated in-plane components used by the
// Jacobian.
func normLag(x, y, z float64, par []float64) (t, u, v float64) {
	rx, ry, rz := par[ParamRangeX], par[ParamRangeY], par[ParamRangeZ]
	sin, cos := math.Sincos(par[ParamAzimuth])
	u = x*cos + y*sin
	v = -x*sin + y*cos
	t = math.Sqrt(u*u/(rx*rx) + v*v/(ry*ry) + z*z/(rz*rz))
	return t, u, v
}

// Variogram returns the grid-evaluated model function for the family:
// gamma(h) = sigma^2 * (1 - Corr(t(h))), vectorized over the coordinate
// slices. The returned closure satisfies the fitter's field contract.
func (f Family) Variogram() func(x, y, z, par []float64) []float64 {
	return func(x, y, z, par []float64) []float64 {
		out := make([]float64, len(x))
		sigma := par[ParamSigma]
		for i := range x {
			t, _, _ := normLag(x[i], y[i], z[i], par)
			out[i] = sigma * sigma * (1 - f.Corr(t))
		}
		return out
	}
}

// Jacobian returns the analytic derivative of the model with respect to
// its parameter vector, as an N x NumParams matrix over the coordinates.
func (f Family) Jacobian() func(x, y, z, par []float64) *mat.Dense {
	return func(x, y, z, par []float64) *mat.Dense {
		rx, ry, rz := par[ParamRangeX], par[ParamRangeY], par[ParamRangeZ]
		sigma := par[ParamSigma]
		jac := mat.NewDense(len(x), NumParams, nil)
		for i := range x {
			t, u, v := normLag(x[i], y[i], z[i], par)
			jac.Set(i, ParamSigma, 2*sigma*(1-f.Corr(t)))
			if t == 0 {
				continue
			}
			// gamma = sigma^2 (1 - Corr(t)), so dgamma/dp = -sigma^2 Corr'(t) dt/dp.
			scale := -sigma * sigma * f.corrDeriv(t)
			jac.Set(i, ParamRangeX, scale*(-u*u/(rx*rx*rx*t)))
			jac.Set(i, ParamRangeY, scale*(-v*v/(ry*ry*ry*t)))
			jac.Set(i, ParamRangeZ, scale*(-z[i]*z[i]/(rz*rz*rz*t)))
			jac.Set(i, ParamAzimuth, scale*(u*v*(1/(rx*rx)-1/(ry*ry))/t))
		}
		return jac
	}
}

// CorrArray evaluates the model's correlation field on a centered grid
// of the given shape, with lag distances scaled by the resolution. Used
// by the QC rendering of fitted versus empirical maps.
func (f Family) CorrArray(nx, ny, nz int, res grid.Resolution, par []float64) *grid.Grid3D {
	out := grid.NewGrid3D(nx, ny, nz)
	for i := 0; i < nx; i++ {
		x := grid.Coordinate(i, nx) * res.Dx
		for j := 0; j < ny; j++ {
			y := grid.Coordinate(j, ny) * res.Dy
			for k := 0; k < nz; k++ {
				z := grid.Coordinate(k, nz) * res.Dz
				t, _, _ := normLag(x, y, z, par)
				out.Set(i, j, k, f.Corr(t))
			}
		}
	}
	return out
}

// VariogramArray evaluates the model variogram (sill applied) on a
// centered grid of the given shape.
func (f Family) VariogramArray(nx, ny, nz int, res grid.Resolution, par []float64) *grid.Grid3D {
	out := f.CorrArray(nx, ny, nz, res, par)
	sigma := par[ParamSigma]
	for i, v := range out.Data {
		out.Data[i] = sigma * sigma * (1 - v)
	}
	return out
}
