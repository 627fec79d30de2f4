package estimation

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"variogrest/pkg/grid"
)

// EmpiricalVariogramMap computes the nonparametric variogram map of an
// observation volume by FFT: the masked value, squared-value and
// indicator grids are zero-padded and transformed, and the pairwise
// sums behind the semivariance at every lag fall out of three
// cross-spectra. The result covers lags from -(n-1) to n-1 on each
// axis, shape (2nx-1, 2ny-1, 2nz-1), centered on the zero lag. Lags
// with no contributing pairs are NaN. The companion grid holds the
// pair count per lag.
func EmpiricalVariogramMap(g *grid.Grid3D) (*grid.Grid3D, *grid.Grid3D) {
	nx, ny, nz := g.Nx, g.Ny, g.Nz
	px, py, pz := 2*nx, 2*ny, 2*nz
	size := px * py * pz

	vals := make([]complex128, size)
	sq := make([]complex128, size)
	ind := make([]complex128, size)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				v := g.At(i, j, k)
				if math.IsNaN(v) {
					continue
				}
				idx := (i*py+j)*pz + k
				vals[idx] = complex(v, 0)
				sq[idx] = complex(v*v, 0)
				ind[idx] = 1
			}
		}
	}

	fft3(vals, px, py, pz, false)
	fft3(sq, px, py, pz, false)
	fft3(ind, px, py, pz, false)

	// Per-frequency cross spectra. corr(a,b)(h) = IFFT(conj(A)*B) gives
	// sum over x of a(x)*b(x+h); the semivariance numerator at lag h is
	// corr(I, z^2) + corr(z^2, I) - 2*corr(z, z).
	pairSums := make([]complex128, size)
	pairCounts := make([]complex128, size)
	for i := range vals {
		ci, cs, cv := cmplx.Conj(ind[i]), cmplx.Conj(sq[i]), cmplx.Conj(vals[i])
		pairSums[i] = ci*sq[i] + cs*ind[i] - 2*cv*vals[i]
		pairCounts[i] = ci * ind[i]
	}
	fft3(pairSums, px, py, pz, true)
	fft3(pairCounts, px, py, pz, true)

	mx, my, mz := 2*nx-1, 2*ny-1, 2*nz-1
	vmap := grid.NewGrid3D(mx, my, mz)
	counts := grid.NewGrid3D(mx, my, mz)
	norm := 1.0 / float64(size)
	for i := 0; i < mx; i++ {
		li := wrapLag(i-(nx-1), px)
		for j := 0; j < my; j++ {
			lj := wrapLag(j-(ny-1), py)
			for k := 0; k < mz; k++ {
				lk := wrapLag(k-(nz-1), pz)
				src := (li*py+lj)*pz + lk
				n := math.Round(real(pairCounts[src]) * norm)
				counts.Set(i, j, k, n)
				if n < 0.5 {
					continue
				}
				vmap.Set(i, j, k, real(pairSums[src])*norm/(2*n))
			}
		}
	}
	return vmap, counts
}

func wrapLag(l, n int) int {
	if l < 0 {
		return l + n
	}
	return l
}

// fft3 transforms a padded complex volume in place, one axis at a time.
// The inverse transform leaves the data unnormalized per axis; the
// caller divides by the total padded size once.
func fft3(data []complex128, nx, ny, nz int, inverse bool) {
	fftX := fourier.NewCmplxFFT(nx)
	fftY := fourier.NewCmplxFFT(ny)
	fftZ := fourier.NewCmplxFFT(nz)

	line := make([]complex128, nx)
	out := make([]complex128, nx)
	for j := 0; j < ny; j++ {
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				line[i] = data[(i*ny+j)*nz+k]
			}
			transformLine(fftX, out[:nx], line[:nx], inverse)
			for i := 0; i < nx; i++ {
				data[(i*ny+j)*nz+k] = out[i]
			}
		}
	}

	if cap(line) < ny {
		line = make([]complex128, ny)
		out = make([]complex128, ny)
	}
	for i := 0; i < nx; i++ {
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				line[j] = data[(i*ny+j)*nz+k]
			}
			transformLine(fftY, out[:ny], line[:ny], inverse)
			for j := 0; j < ny; j++ {
				data[(i*ny+j)*nz+k] = out[j]
			}
		}
	}

	if cap(line) < nz {
		line = make([]complex128, nz)
		out = make([]complex128, nz)
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			base := (i*ny + j) * nz
			copy(line[:nz], data[base:base+nz])
			transformLine(fftZ, out[:nz], line[:nz], inverse)
			copy(data[base:base+nz], out[:nz])
		}
	}
}

func transformLine(fft *fourier.CmplxFFT, dst, src []complex128, inverse bool) {
	if inverse {
		fft.Sequence(dst, src)
	} else {
		fft.Coefficients(dst, src)
	}
}
