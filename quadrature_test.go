package tfim

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/integrate/quad"
)

// TestIntegrate_KnownIntegrals checks closed-form integrals, smooth and not.
func TestIntegrate_KnownIntegrals(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		a, b float64
		want float64
	}{
		{"constant", func(x float64) float64 { return 1 }, 0, math.Pi, math.Pi},
		{"polynomial", func(x float64) float64 { return x * x * x * x * x }, 0, 1, 1.0 / 6},
		{"sine", math.Sin, 0, math.Pi, 2},
		{"exponential", math.Exp, -1, 2, math.Exp(2) - math.Exp(-1)},
		{"kink", func(x float64) float64 { return math.Abs(x - 0.3) }, -1, 1, 1.09},
		{"sqrt endpoint", math.Sqrt, 0, 1, 2.0 / 3},
		{"ising g=1", Bind(1), 0, math.Pi, 4},
	}

	cfg := DefaultQuadConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Integrate(tt.f, tt.a, tt.b, cfg)
			if err != nil {
				t.Fatalf("Integrate failed: %v", err)
			}

			if diff := math.Abs(res.Estimate - tt.want); diff > 1e-9 {
				t.Errorf("∫ = %.15f, expected %.15f (diff %.3g)", res.Estimate, tt.want, diff)
			}
			if res.AbsErr < 0 || res.AbsErr > 1e-9 {
				t.Errorf("Error bound %.3g outside [0, 1e-9]", res.AbsErr)
			}

			t.Logf("∫ = %.15f ± %.2e (%d subintervals, %d evaluations)",
				res.Estimate, res.AbsErr, res.Subintervals, res.Evaluations)
		})
	}
}

// TestIntegrate_SmoothErrorBound verifies the error bound sits near round-off
// for a smooth integrand, after the single mandatory bisection.
func TestIntegrate_SmoothErrorBound(t *testing.T) {
	res, err := Integrate(Bind(0), 0, math.Pi, DefaultQuadConfig())
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}

	if res.Subintervals != 2 {
		t.Errorf("Constant integrand needed %d subintervals, expected 2", res.Subintervals)
	}
	if res.AbsErr > 1e-13 {
		t.Errorf("Error bound %.3g, expected ≲ 1e-13", res.AbsErr)
	}
	if res.Evaluations != 63 {
		t.Errorf("Evaluations = %d, expected 63", res.Evaluations)
	}

	t.Logf("✓ ∫₀^π 1 dx = %.16f ± %.2e", res.Estimate, res.AbsErr)
}

// TestIntegrate_UnresolvedCusp integrates sqrt(δ² + x²) on [0, π], a cusp
// smoothed over a width δ far below the spacing of the first rule's nodes.
// The reported bound must still cover the true error.
func TestIntegrate_UnresolvedCusp(t *testing.T) {
	cfg := DefaultQuadConfig()

	for _, delta := range []float64{1e-4, 3e-5, 1e-5, 1e-6} {
		f := func(x float64) float64 { return math.Hypot(delta, x) }
		// ∫₀^π √(δ²+x²) dx = (π·r + δ²·asinh(π/δ)) / 2, r = √(δ²+π²).
		want := 0.5 * (math.Pi*math.Hypot(delta, math.Pi) + delta*delta*math.Asinh(math.Pi/delta))

		res, err := Integrate(f, 0, math.Pi, cfg)
		if err != nil {
			t.Fatalf("δ=%g: %v", delta, err)
		}

		diff := math.Abs(res.Estimate - want)
		if diff > res.AbsErr {
			t.Errorf("δ=%g: true error %.3g exceeds reported bound %.3g (%d subintervals)",
				delta, diff, res.AbsErr, res.Subintervals)
		}
		if tol := math.Max(cfg.AbsTol, cfg.RelTol*math.Abs(res.Estimate)); diff > tol {
			t.Errorf("δ=%g: true error %.3g exceeds tolerance %.3g", delta, diff, tol)
		}

		t.Logf("✓ δ=%g: error %.2e ≤ %.2e with %d subintervals", delta, diff, res.AbsErr, res.Subintervals)
	}
}

// TestIntegrate_Refines verifies the kink is handled by subdivision.
func TestIntegrate_Refines(t *testing.T) {
	res, err := Integrate(func(x float64) float64 { return math.Abs(x - 0.3) }, -1, 1, DefaultQuadConfig())
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}

	if res.Subintervals < 2 {
		t.Errorf("Kink integrated without subdivision (%d subintervals)", res.Subintervals)
	}
	if res.Evaluations != 21*(2*res.Subintervals-1) {
		t.Errorf("Evaluations = %d inconsistent with %d subintervals", res.Evaluations, res.Subintervals)
	}

	t.Logf("✓ Kink at x=0.3 resolved with %d subintervals", res.Subintervals)
}

// TestIntegrate_Idempotent verifies repeated calls are bit-identical.
func TestIntegrate_Idempotent(t *testing.T) {
	cfg := DefaultQuadConfig()

	for _, g := range []float64{0, 0.5, 0.95, 1, 1.05, 2} {
		first, err := Integrate(Bind(g), 0, math.Pi, cfg)
		if err != nil {
			t.Fatalf("g=%.2f: %v", g, err)
		}
		second, err := Integrate(Bind(g), 0, math.Pi, cfg)
		if err != nil {
			t.Fatalf("g=%.2f: %v", g, err)
		}

		if first != second {
			t.Errorf("g=%.2f: results differ: %+v vs %+v", g, first, second)
		}
	}
}

// TestIntegrate_ReversedAndEmpty checks interval orientation.
func TestIntegrate_ReversedAndEmpty(t *testing.T) {
	cfg := DefaultQuadConfig()

	forward, err := Integrate(math.Sin, 0, math.Pi, cfg)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	backward, err := Integrate(math.Sin, math.Pi, 0, cfg)
	if err != nil {
		t.Fatalf("backward: %v", err)
	}
	if forward.Estimate != -backward.Estimate {
		t.Errorf("∫_π^0 = %.15f, expected %.15f", backward.Estimate, -forward.Estimate)
	}

	empty, err := Integrate(math.Sin, 1, 1, cfg)
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if empty.Estimate != 0 || empty.AbsErr != 0 {
		t.Errorf("Empty interval gave %+v", empty)
	}
}

// TestIntegrate_BudgetExhausted verifies non-convergence is reported, not hidden.
func TestIntegrate_BudgetExhausted(t *testing.T) {
	cfg := DefaultQuadConfig()
	cfg.MaxSubintervals = 4

	f := func(x float64) float64 { return math.Cos(400 * x) }
	res, err := Integrate(f, 0, math.Pi-0.1, cfg)
	if err == nil {
		t.Fatalf("Expected non-convergence, got %+v", res)
	}
	if !errors.Is(err, ErrNonConvergence) {
		t.Fatalf("Expected ErrNonConvergence, got %v", err)
	}

	var nce *NonConvergenceError
	if !errors.As(err, &nce) {
		t.Fatalf("Expected *NonConvergenceError, got %T", err)
	}
	if nce.Reason != "budget" {
		t.Errorf("Reason = %q, expected budget", nce.Reason)
	}
	if nce.Subintervals != cfg.MaxSubintervals {
		t.Errorf("Subintervals = %d, expected %d", nce.Subintervals, cfg.MaxSubintervals)
	}
	if nce.AbsErr <= nce.Tolerance {
		t.Errorf("Reported error %.3g within tolerance %.3g", nce.AbsErr, nce.Tolerance)
	}
	if res != (QuadResult{}) {
		t.Errorf("Partial result leaked: %+v", res)
	}

	t.Logf("✓ %v", err)
}

// TestIntegrate_MinimalBudget covers the smallest budget: one bisection and no more.
func TestIntegrate_MinimalBudget(t *testing.T) {
	kink := func(x float64) float64 { return math.Abs(x - 0.3) }

	cfg := DefaultQuadConfig()
	cfg.MaxSubintervals = 1
	if _, err := Integrate(kink, -1, 1, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Budget 1: expected ErrInvalidConfig, got %v", err)
	}

	cfg.MaxSubintervals = 2
	_, err := Integrate(kink, -1, 1, cfg)
	var nce *NonConvergenceError
	if !errors.As(err, &nce) {
		t.Fatalf("Budget 2: expected *NonConvergenceError, got %v", err)
	}
	if nce.Subintervals != 2 || nce.Reason != "budget" {
		t.Errorf("Budget 2: got %d subintervals, reason %q", nce.Subintervals, nce.Reason)
	}
}

// TestIntegrate_Roundoff verifies an unattainable tolerance is reported as round-off.
func TestIntegrate_Roundoff(t *testing.T) {
	cfg := QuadConfig{AbsTol: 1e-30, RelTol: 0, MaxSubintervals: 100}

	_, err := Integrate(func(x float64) float64 { return 1 }, 0, math.Pi, cfg)

	var nce *NonConvergenceError
	if !errors.As(err, &nce) {
		t.Fatalf("Expected *NonConvergenceError, got %v", err)
	}
	if nce.Reason != "roundoff" {
		t.Errorf("Reason = %q, expected roundoff", nce.Reason)
	}
}

// TestIntegrate_InvalidInput covers bounds, integrand values and config.
func TestIntegrate_InvalidInput(t *testing.T) {
	cfg := DefaultQuadConfig()

	if _, err := Integrate(math.Sin, 0, math.Inf(1), cfg); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Infinite bound: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := Integrate(math.Sin, math.NaN(), 1, cfg); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("NaN bound: expected ErrInvalidInterval, got %v", err)
	}

	nan := func(x float64) float64 {
		if x > 0.5 {
			return math.NaN()
		}
		return x
	}
	if _, err := Integrate(nan, 0, 1, cfg); !errors.Is(err, ErrNonFiniteIntegrand) {
		t.Errorf("NaN integrand: expected ErrNonFiniteIntegrand, got %v", err)
	}

	bad := []QuadConfig{
		{AbsTol: -1, RelTol: 1e-10, MaxSubintervals: 10},
		{AbsTol: 1e-10, RelTol: math.NaN(), MaxSubintervals: 10},
		{AbsTol: 0, RelTol: 0, MaxSubintervals: 10},
		{AbsTol: 1e-10, RelTol: 1e-10, MaxSubintervals: 0},
		{AbsTol: 1e-10, RelTol: 1e-10, MaxSubintervals: 1},
	}
	for _, c := range bad {
		if _, err := Integrate(math.Sin, 0, 1, c); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Config %+v: expected ErrInvalidConfig, got %v", c, err)
		}
	}
}

// TestIntegrate_AgreesWithGaussLegendre cross-checks against a high-order
// fixed Gauss–Legendre rule.
func TestIntegrate_AgreesWithGaussLegendre(t *testing.T) {
	for _, g := range []float64{0.25, 0.5, 1.5, 2} {
		f := Bind(g)

		res, err := Integrate(f, 0, math.Pi, DefaultQuadConfig())
		if err != nil {
			t.Fatalf("g=%.2f: %v", g, err)
		}
		fixed := quad.Fixed(f, 0, math.Pi, 200, nil, 0)

		if diff := math.Abs(res.Estimate - fixed); diff > 1e-9 {
			t.Errorf("g=%.2f: adaptive %.15f vs Legendre %.15f (diff %.3g)",
				g, res.Estimate, fixed, diff)
		}
	}
}
