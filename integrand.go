package tfim

import "math"

// IntegrandFunc is an integrand parameterised by the coupling g.
type IntegrandFunc func(g, x float64) float64

// Integrand is the single-mode excitation energy of the transverse-field
// Ising chain:
//
//	sqrt((g - cos x)² + sin² x)
//
// It is defined for every real g and x. On [0, π] it is continuous and
// non-negative; it vanishes only at (g, x) = (1, 0) and (-1, π), where the
// quadrature sees a kink.
func Integrand(g, x float64) float64 {
	return math.Hypot(g-math.Cos(x), math.Sin(x))
}

// Bind fixes g and returns the one-argument integrand for that coupling.
func Bind(g float64) Func {
	return BindFunc(Integrand, g)
}

// BindFunc fixes g for an arbitrary parameterised integrand.
func BindFunc(integrand IntegrandFunc, g float64) Func {
	return func(x float64) float64 {
		return integrand(g, x)
	}
}
