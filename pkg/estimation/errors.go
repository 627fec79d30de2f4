package estimation

import "errors"

var (
	// ErrInfeasibleBounds is returned when the box constraints are
	// inconsistent or the initial guess lies outside them.
	ErrInfeasibleBounds = errors.New("infeasible parameter bounds")

	// ErrNotConverged is returned when the solver exhausts its iteration
	// budget without meeting the convergence tolerance.
	ErrNotConverged = errors.New("fit did not converge")
)
