package tfim

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Integration bounds for ε(g).
const (
	IntervalStart = 0.0
	IntervalEnd   = math.Pi
)

// SweepPoint is one sample of the energy curve.
type SweepPoint struct {
	G            float64 `json:"g" yaml:"g"`                       // Coupling
	Energy       float64 `json:"energy" yaml:"energy"`             // ε(g) = estimate / π
	AbsErr       float64 `json:"abs_err" yaml:"abs_err"`           // Quadrature error / π
	Subintervals int     `json:"subintervals" yaml:"subintervals"` // Final partition size
	Evaluations  int     `json:"evaluations" yaml:"evaluations"`   // Integrand calls
}

// SweepConfig controls a parameter sweep.
type SweepConfig struct {
	Quad QuadConfig

	// OnPoint, if set, is called after each point is computed.
	OnPoint func(SweepPoint)
}

// DefaultSweepConfig returns a config using DefaultQuadConfig.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{Quad: DefaultQuadConfig()}
}

// SweepError reports which sweep point failed.
type SweepError struct {
	Index int     // Position in the input sequence
	G     float64 // Coupling at that position
	Err   error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("sweep point %d (g=%g): %v", e.Index, e.G, e.Err)
}

func (e *SweepError) Unwrap() error { return e.Err }

// Sweep computes ε(g) for each g in order.
//
// Each point is independent: a fresh integrand is bound per g and nothing is
// carried between iterations. The first quadrature failure aborts the sweep
// and is returned as a *SweepError; points already computed are discarded.
// An empty gs yields an empty result.
func Sweep(ctx context.Context, gs []float64, cfg SweepConfig) ([]SweepPoint, error) {
	return SweepFunc(ctx, Integrand, gs, cfg)
}

// SweepFunc is Sweep over an arbitrary parameterised integrand.
func SweepFunc(ctx context.Context, integrand IntegrandFunc, gs []float64, cfg SweepConfig) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, len(gs))

	for i, g := range gs {
		if err := ctx.Err(); err != nil {
			return nil, &SweepError{Index: i, G: g, Err: err}
		}

		point, err := energyDensity(integrand, g, cfg.Quad)
		if err != nil {
			return nil, &SweepError{Index: i, G: g, Err: err}
		}

		if cfg.OnPoint != nil {
			cfg.OnPoint(point)
		}
		points = append(points, point)
	}

	return points, nil
}

// EnergyDensity computes ε(g) for a single coupling.
func EnergyDensity(g float64, cfg QuadConfig) (SweepPoint, error) {
	return energyDensity(Integrand, g, cfg)
}

func energyDensity(integrand IntegrandFunc, g float64, cfg QuadConfig) (SweepPoint, error) {
	res, err := Integrate(BindFunc(integrand, g), IntervalStart, IntervalEnd, cfg)
	if err != nil {
		return SweepPoint{}, err
	}

	return SweepPoint{
		G:            g,
		Energy:       res.Estimate / math.Pi,
		AbsErr:       res.AbsErr / math.Pi,
		Subintervals: res.Subintervals,
		Evaluations:  res.Evaluations,
	}, nil
}

// Grid returns n couplings start + step·i, i = 0..n-1.
func Grid(start, step float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	gs := make([]float64, n)
	for i := range gs {
		gs[i] = start + step*float64(i)
	}
	return gs
}

// GridSpan returns n evenly spaced couplings covering [lo, hi].
func GridSpan(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// DefaultGrid is the conventional sampling g = 0.1·i for i in [0, 20].
func DefaultGrid() []float64 {
	return Grid(0, 0.1, 21)
}

// Couplings returns the g column of a sweep.
func Couplings(points []SweepPoint) []float64 {
	gs := make([]float64, len(points))
	for i, p := range points {
		gs[i] = p.G
	}
	return gs
}

// Energies returns the ε column of a sweep.
func Energies(points []SweepPoint) []float64 {
	es := make([]float64, len(points))
	for i, p := range points {
		es[i] = p.Energy
	}
	return es
}

// MaxDeviation returns the largest |ε - ExactEnergyDensity(g)| over the sweep
// and the coupling where it occurs.
func MaxDeviation(points []SweepPoint) (dev, at float64) {
	if len(points) == 0 {
		return 0, 0
	}
	diffs := make([]float64, len(points))
	for i, p := range points {
		diffs[i] = math.Abs(p.Energy - ExactEnergyDensity(p.G))
	}
	i := floats.MaxIdx(diffs)
	return diffs[i], points[i].G
}
