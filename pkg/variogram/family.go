// Package variogram provides the parametric variogram families and the
// anisotropic 3D model the estimation pipeline fits: each family maps a
// normalized lag distance to a correlation value, and the model wraps
// that shape with rotated, per-axis range scaling and a sill.
package variogram

import (
	"fmt"
	"math"
	"strings"
)

// Family enumerates the supported variogram shapes. The set is fixed at
// compile time and dispatched by switch rather than a lookup table.
type Family int

const (
	Exponential Family = iota
	Spherical
	Gaussian
	GeneralExponential
)

// GenExpPower is the fixed exponent of the general exponential family.
const GenExpPower = 1.5

// Families returns all supported families in a stable order.
func Families() []Family {
	return []Family{Exponential, Spherical, Gaussian, GeneralExponential}
}

func (f Family) String() string {
	switch f {
	case Exponential:
		return "exponential"
	case Spherical:
		return "spherical"
	case Gaussian:
		return "gaussian"
	case GeneralExponential:
		return "general_exponential"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily maps a family name to its enum value.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exponential":
		return Exponential, nil
	case "spherical":
		return Spherical, nil
	case "gaussian":
		return Gaussian, nil
	case "general_exponential", "general-exponential":
		return GeneralExponential, nil
	default:
		return 0, fmt.Errorf("variogram: unknown family %q", s)
	}
}

// Corr returns the correlation of the family at normalized lag t >= 0.
// Every family satisfies Corr(0) = 1 and decays towards 0.
func (f Family) Corr(t float64) float64 {
	switch f {
	case Exponential:
		return math.Exp(-3 * t)
	case Spherical:
		if t >= 1 {
			return 0
		}
		return 1 - 1.5*t + 0.5*t*t*t
	case Gaussian:
		return math.Exp(-3 * t * t)
	case GeneralExponential:
		return math.Exp(-3 * math.Pow(t, GenExpPower))
	default:
		panic("variogram: unknown family")
	}
}

// corrDeriv returns dCorr/dt at normalized lag t >= 0.
func (f Family) corrDeriv(t float64) float64 {
	switch f {
	case Exponential:
		return -3 * math.Exp(-3*t)
	case Spherical:
		if t >= 1 {
			return 0
		}
		return -1.5 + 1.5*t*t
	case Gaussian:
		return -6 * t * math.Exp(-3*t*t)
	case GeneralExponential:
		if t == 0 {
			return 0
		}
		return -3 * GenExpPower * math.Pow(t, GenExpPower-1) * math.Exp(-3*math.Pow(t, GenExpPower))
	default:
		panic("variogram: unknown family")
	}
}
