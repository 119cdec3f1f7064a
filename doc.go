// Package tfim computes the ground-state energy density of the
// transverse-field Ising chain by adaptive numerical quadrature.
//
// # Overview
//
// For the chain H = -Σ σᶻσᶻ - g Σ σˣ the energy per site is
//
//	ε(g) = (1/π) ∫₀^π sqrt((g - cos x)² + sin² x) dx
//
// tfim evaluates the integral for a sequence of couplings g and returns the
// curve as ordered (g, ε) pairs.
//
// # Architecture
//
// The package components:
//
//   - integrand   - The excitation energy sqrt((g - cos x)² + sin² x)
//   - quadrature  - Adaptive Gauss–Kronrod (10/21) integration
//   - sweep       - Parameter sweep over g
//   - exact       - Closed form through the complete elliptic integral E(m)
//   - assertions  - Test helpers for sweep properties
//
// # Quick Start
//
//	points, err := tfim.Sweep(ctx, tfim.DefaultGrid(), tfim.DefaultSweepConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range points {
//	    fmt.Printf("g=%.1f  ε=%.8f\n", p.G, p.Energy)
//	}
//
// # Quadrature
//
// Integrate always bisects once, then bisects the subinterval with the largest
// error estimate until the summed error is below max(AbsTol, RelTol·|estimate|):
//
//	res, err := tfim.Integrate(tfim.Bind(0.5), 0, math.Pi, tfim.DefaultQuadConfig())
//	if errors.Is(err, tfim.ErrNonConvergence) {
//	    // budget exhausted; res is not usable
//	}
//
// The integrand vanishes at (g, x) = (1, 0). Refinement concentrates there
// on its own; callers never split the interval.
//
// # Reference points
//
//   - ε(0) = 1
//   - ε(1) = 4/π ≈ 1.2732395447351625
//   - ε(g) non-decreasing for g ≥ 1
//
// # Testing
//
//	func TestMySweep(t *testing.T) {
//	    points, _ := tfim.Sweep(ctx, tfim.DefaultGrid(), tfim.DefaultSweepConfig())
//
//	    tfim.AssertPhysical(t, points)
//	    tfim.AssertEnergies(t, points, tfim.ReferenceEnergies, 5e-7)
//	    tfim.AssertMonotonicFrom(t, points, 1.0)
//	}
//
// # See Also
//
//   - cmd/tfim - Command line sweep, single point and plot
package tfim
