package estimation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FieldFunc is a grid-evaluated parametric field: given coordinate
// slices of equal length N and a parameter vector, it returns the N
// field values.
type FieldFunc func(x, y, z, par []float64) []float64

// JacobianFunc is the derivative of a FieldFunc with respect to its
// parameters, as an N x M matrix. A nil JacobianFunc makes the fitter
// estimate derivatives by forward differences.
type JacobianFunc func(x, y, z, par []float64) *mat.Dense

const (
	fitMaxIterations = 200
	fitTolerance     = 1e-8
	fitMaxLambda     = 1e16
)

// FitBounded solves the box-constrained weighted least-squares problem
//
//	min over p of sum_i ((values_i - fn(coords_i; p)) / sigma_i)^2
//	subject to lower <= p <= upper
//
// by Levenberg-Marquardt with the step clamped to the box. sigma may be
// nil for an equal-uncertainty fit; +Inf entries remove a sample from
// the objective. It returns ErrInfeasibleBounds for inconsistent bounds
// or a guess outside them, and ErrNotConverged when the iteration
// budget runs out before the tolerance is met.
func FitBounded(fn FieldFunc, jac JacobianFunc, s *Samples, sigma, guess, lower, upper []float64) ([]float64, error) {
	m := len(guess)
	if len(lower) != m || len(upper) != m {
		return nil, fmt.Errorf("estimation: %w: guess length %d, bounds lengths %d/%d",
			ErrInfeasibleBounds, m, len(lower), len(upper))
	}
	for j := 0; j < m; j++ {
		if lower[j] > upper[j] {
			return nil, fmt.Errorf("estimation: %w: lower[%d]=%g > upper[%d]=%g",
				ErrInfeasibleBounds, j, lower[j], j, upper[j])
		}
		if guess[j] < lower[j] || guess[j] > upper[j] {
			return nil, fmt.Errorf("estimation: %w: guess[%d]=%g outside [%g, %g]",
				ErrInfeasibleBounds, j, guess[j], lower[j], upper[j])
		}
	}

	n := s.Len()
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
		if sigma != nil {
			if math.IsInf(sigma[i], 1) {
				weights[i] = 0
			} else {
				weights[i] = 1 / sigma[i]
			}
		}
	}

	par := append([]float64(nil), guess...)
	resid := make([]float64, n)
	cost := weightedResiduals(fn, s, par, weights, resid)

	lambda := 1e-3
	nu := 2.0
	parNew := make([]float64, m)
	residNew := make([]float64, n)
	step := mat.NewVecDense(m, nil)

	for iter := 0; iter < fitMaxIterations; iter++ {
		jm := evalJacobian(fn, jac, s, par, lower, upper)
		scaleRows(jm, weights)

		// Normal equations: (J'J + lambda*diag(J'J)) dp = -J'r.
		jtj := mat.NewSymDense(m, nil)
		jtj.SymOuterK(1, jm.T())
		grad := mat.NewVecDense(m, nil)
		grad.MulVec(jm.T(), mat.NewVecDense(n, resid))

		if mat.Norm(grad, math.Inf(1)) < fitTolerance*(1+cost) {
			return par, nil
		}

		accepted := false
		for !accepted {
			damped := mat.NewSymDense(m, nil)
			damped.CopySym(jtj)
			for j := 0; j < m; j++ {
				d := jtj.At(j, j)
				if d == 0 {
					d = 1
				}
				damped.SetSym(j, j, d*(1+lambda))
			}

			var chol mat.Cholesky
			solved := chol.Factorize(damped)
			if solved {
				solved = chol.SolveVecTo(step, grad) == nil
			}
			if solved {
				for j := 0; j < m; j++ {
					parNew[j] = clamp(par[j]-step.AtVec(j), lower[j], upper[j])
				}
				costNew := weightedResiduals(fn, s, parNew, weights, residNew)
				if costNew < cost {
					improvement := (cost - costNew) / math.Max(cost, 1e-300)
					copy(par, parNew)
					copy(resid, residNew)
					cost = costNew
					lambda = math.Max(lambda/3, 1e-15)
					nu = 2.0
					accepted = true
					if improvement < fitTolerance {
						return par, nil
					}
					break
				}
			}
			lambda *= nu
			nu *= 2
			if lambda > fitMaxLambda {
				// No descent direction left within the box.
				return par, nil
			}
		}
	}
	return nil, fmt.Errorf("estimation: %w after %d iterations (cost %g)", ErrNotConverged, fitMaxIterations, cost)
}

// weightedResiduals fills resid with the weighted residual vector at p
// and returns its squared norm.
func weightedResiduals(fn FieldFunc, s *Samples, par, weights, resid []float64) float64 {
	model := fn(s.X, s.Y, s.Z, par)
	cost := 0.0
	for i := range resid {
		resid[i] = (model[i] - s.Values[i]) * weights[i]
		cost += resid[i] * resid[i]
	}
	return cost
}

// evalJacobian returns the model Jacobian at p, either analytic or via
// forward differences with the step direction flipped at the upper
// bound so perturbed parameters stay inside the box.
func evalJacobian(fn FieldFunc, jac JacobianFunc, s *Samples, par, lower, upper []float64) *mat.Dense {
	if jac != nil {
		return jac(s.X, s.Y, s.Z, par)
	}
	n, m := s.Len(), len(par)
	base := fn(s.X, s.Y, s.Z, par)
	jm := mat.NewDense(n, m, nil)
	perturbed := append([]float64(nil), par...)
	for j := 0; j < m; j++ {
		h := math.Sqrt(fitTolerance) * math.Max(1, math.Abs(par[j]))
		if par[j]+h > upper[j] && par[j]-h >= lower[j] {
			h = -h
		}
		perturbed[j] = par[j] + h
		shifted := fn(s.X, s.Y, s.Z, perturbed)
		perturbed[j] = par[j]
		for i := 0; i < n; i++ {
			jm.Set(i, j, (shifted[i]-base[i])/h)
		}
	}
	return jm
}

func scaleRows(jm *mat.Dense, weights []float64) {
	n, m := jm.Dims()
	for i := 0; i < n; i++ {
		if weights[i] == 1 {
			continue
		}
		for j := 0; j < m; j++ {
			jm.Set(i, j, jm.At(i, j)*weights[i])
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
