package estimation

import "math"

// smoothstepOrder is the order of the weight compression polynomial.
const smoothstepOrder = 2

// compressWeight maps a raw weight in [0, 1] through a symmetric
// smoothstep polynomial of order n: values below 0.5 follow
// 2^(n-1)*w^n, values above follow the mirrored branch. The fixed
// points 0, 0.5 and 1 are preserved and the mapping is monotone, which
// compresses the contrast between near-zero and near-one weights.
func compressWeight(w float64) float64 {
	if w < 0.5 {
		return math.Pow(2, smoothstepOrder-1) * math.Pow(w, smoothstepOrder)
	}
	return 1 - math.Pow(2, smoothstepOrder-1)*math.Pow(1-w, smoothstepOrder)
}

// DistanceSigmas computes the per-sample standard deviations for a
// center-weighted fit. Each sample gets a Gaussian kernel weight
// exp(-d^2 / (2*sigmaWT^2)) from its squared distance to the origin in
// cell units, compressed through the smoothstep polynomial, and
// converted to a solver sigma of 1/weight. Samples whose compressed
// weight is exactly zero get +Inf sigma rather than faulting. sigmaWT
// is interpreted as a number of grid cells.
func DistanceSigmas(x, y, z []float64, sigmaWT float64) []float64 {
	coef := 1.0 / (2.0 * sigmaWT * sigmaWT)
	sig := make([]float64, len(x))
	for i := range x {
		dsq := x[i]*x[i] + y[i]*y[i] + z[i]*z[i]
		w := compressWeight(math.Exp(-coef * dsq))
		if w == 0 {
			sig[i] = math.Inf(1)
		} else {
			sig[i] = 1 / w
		}
	}
	return sig
}
