package tfim

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// ReferenceEnergies is ε(0.1·i), i = 0..20, as produced by an independent
// adaptive quadrature. DefaultGrid sweeps must reproduce it.
var ReferenceEnergies = []float64{
	1.0, 1.00250157, 1.01002525, 1.02262951, 1.04041709,
	1.06354441, 1.09223858, 1.12682867, 1.16780951, 1.21600091,
	1.27323954, 1.34286402, 1.41961927, 1.50082324, 1.58518830,
	1.67192622, 1.76050812, 1.85055934, 1.94180430, 2.03403456,
	2.12708882,
}

// AssertEnergies verifies a sweep against expected ε values.
//
// relTol is a relative tolerance: 5e-7 checks ~6 significant digits.
func AssertEnergies(t *testing.T, points []SweepPoint, want []float64, relTol float64) {
	t.Helper()

	if len(points) != len(want) {
		t.Fatalf("Sweep length %d, expected %d", len(points), len(want))
	}

	var failures []string
	for i, p := range points {
		rel := math.Abs(p.Energy-want[i]) / math.Max(math.Abs(want[i]), 1e-300)
		if rel > relTol {
			failures = append(failures, fmt.Sprintf(
				"  g=%.2f: ε=%.10f, expected %.10f (rel err %.2e)",
				p.G, p.Energy, want[i], rel))
		}
	}

	if len(failures) > 0 {
		t.Errorf("Energies outside tolerance %.1e:\n%s", relTol, strings.Join(failures, "\n"))
		return
	}

	t.Logf("✓ %d energies match within relative tolerance %.1e", len(points), relTol)
}

// AssertPhysical verifies every ε is finite and non-negative, and that the
// reported error bound is far below the estimate.
func AssertPhysical(t *testing.T, points []SweepPoint) {
	t.Helper()

	for _, p := range points {
		if math.IsNaN(p.Energy) || math.IsInf(p.Energy, 0) {
			t.Errorf("g=%.4f: ε=%v is not finite", p.G, p.Energy)
		}
		if p.Energy < 0 {
			t.Errorf("g=%.4f: ε=%v is negative", p.G, p.Energy)
		}
		if p.AbsErr < 0 || p.AbsErr > 1e-6*p.Energy {
			t.Errorf("g=%.4f: error bound %.3g is not ≪ ε=%.6f", p.G, p.AbsErr, p.Energy)
		}
	}
}

// AssertMonotonicFrom verifies ε is non-decreasing for g ≥ gMin.
func AssertMonotonicFrom(t *testing.T, points []SweepPoint, gMin float64) {
	t.Helper()

	prev := math.Inf(-1)
	checked := 0
	for _, p := range points {
		if p.G < gMin {
			continue
		}
		if p.Energy < prev {
			t.Errorf("ε decreased at g=%.4f: %.10f < %.10f", p.G, p.Energy, prev)
		}
		prev = p.Energy
		checked++
	}

	t.Logf("✓ ε non-decreasing over %d points with g ≥ %.2f", checked, gMin)
}

// AssertMatchesExact compares a sweep with the elliptic-integral closed form.
func AssertMatchesExact(t *testing.T, points []SweepPoint, absTol float64) {
	t.Helper()

	dev, at := MaxDeviation(points)
	if dev > absTol {
		t.Errorf("Max |ε - exact| = %.3g at g=%.4f (tolerance %.1e)", dev, at, absTol)
		return
	}

	t.Logf("✓ Max |ε - exact| = %.3g at g=%.4f", dev, at)
}

// PrintSweep writes a sweep to the test log.
func PrintSweep(t *testing.T, points []SweepPoint) {
	t.Helper()

	t.Logf("\n=== ε(g) ===")
	t.Logf("  g       ε(g)            abs err     intervals  evals")
	t.Logf("  ------  --------------  ----------  ---------  -----")
	for _, p := range points {
		t.Logf("  %-6.3f  %.12f  %10.2e  %9d  %5d",
			p.G, p.Energy, p.AbsErr, p.Subintervals, p.Evaluations)
	}
}
