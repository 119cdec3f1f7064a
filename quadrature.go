package tfim

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

// Func is a one-argument real integrand.
type Func func(x float64) float64

// QuadResult is the outcome of a single Integrate call.
type QuadResult struct {
	Estimate     float64 // Integral estimate
	AbsErr       float64 // Estimated absolute error (≥ 0)
	Subintervals int     // Subintervals in the final partition
	Evaluations  int     // Integrand evaluations
}

// QuadConfig controls adaptive quadrature.
type QuadConfig struct {
	AbsTol          float64 // Absolute error target
	RelTol          float64 // Relative error target (against |estimate|)
	MaxSubintervals int     // Refinement budget before giving up
}

// DefaultQuadConfig returns the tolerances used by the sweep.
//
// The error target is max(AbsTol, RelTol·|estimate|). For ε(g) on [0, 2] the
// integral is between π and ~7, so 1e-10 leaves the reported error many
// orders of magnitude below the estimate while staying clear of float64
// round-off.
func DefaultQuadConfig() QuadConfig {
	return QuadConfig{
		AbsTol:          1e-10,
		RelTol:          1e-10,
		MaxSubintervals: 100,
	}
}

// Validate reports whether the configuration can drive Integrate.
func (c QuadConfig) Validate() error {
	switch {
	case math.IsNaN(c.AbsTol) || c.AbsTol < 0:
		return fmt.Errorf("%w: AbsTol = %v", ErrInvalidConfig, c.AbsTol)
	case math.IsNaN(c.RelTol) || c.RelTol < 0:
		return fmt.Errorf("%w: RelTol = %v", ErrInvalidConfig, c.RelTol)
	case c.AbsTol == 0 && c.RelTol == 0:
		return fmt.Errorf("%w: AbsTol and RelTol are both zero", ErrInvalidConfig)
	case c.MaxSubintervals < 2:
		return fmt.Errorf("%w: MaxSubintervals = %d", ErrInvalidConfig, c.MaxSubintervals)
	}
	return nil
}

var (
	// ErrNonConvergence is matched by every *NonConvergenceError.
	ErrNonConvergence = errors.New("quadrature did not converge")

	// ErrInvalidInterval is returned when a bound is NaN or infinite.
	ErrInvalidInterval = errors.New("integration bounds must be finite")

	// ErrNonFiniteIntegrand is returned when f yields NaN or ±Inf at a node.
	ErrNonFiniteIntegrand = errors.New("integrand returned a non-finite value")

	// ErrInvalidConfig wraps every QuadConfig.Validate failure.
	ErrInvalidConfig = errors.New("invalid quadrature config")
)

// NonConvergenceError is returned when the tolerance could not be met.
// The partial estimate is kept for diagnostics only.
type NonConvergenceError struct {
	Estimate     float64
	AbsErr       float64
	Tolerance    float64
	Subintervals int
	Reason       string // "budget" or "roundoff"
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("quadrature did not converge (%s): error %.3g > tolerance %.3g after %d subintervals",
		e.Reason, e.AbsErr, e.Tolerance, e.Subintervals)
}

// Is makes errors.Is(err, ErrNonConvergence) hold.
func (e *NonConvergenceError) Is(target error) bool {
	return target == ErrNonConvergence
}

const (
	epmach = 2.220446049250313e-16 // float64 machine epsilon
	uflow  = 2.2250738585072014e-308

	// gapFactor scales |K21−G10| into the smallest error a rule may report.
	gapFactor = 10
)

// 21-point Kronrod rule on [-1, 1]. Odd indices of xgk are the 10-point
// Gauss nodes, weighted by wg.
var (
	xgk = [11]float64{
		0.995657163025808080735527280689003,
		0.973906528517171720077964012084452,
		0.930157491355708226001207180059508,
		0.865063366688984510732096688423493,
		0.780817726586416897063717578345042,
		0.679409568299024406234327365114874,
		0.562757134668604683339000099272694,
		0.433395394129247190799265943165784,
		0.294392862701460198131126603103866,
		0.148874338981631210884826001129720,
		0,
	}
	wgk = [11]float64{
		0.011694638867371874278064396062192,
		0.032558162307964727478818972459390,
		0.054755896574351996031381300244580,
		0.075039674810919952767043140916190,
		0.093125454583697605535065465083366,
		0.109387158802297641899210590325805,
		0.123491976262065851077600525603138,
		0.134709217311473325928054001771707,
		0.142775938577060080797094273138717,
		0.147739104901338491374841515972068,
		0.149445554002916905664936468389821,
	}
	wg = [5]float64{
		0.066671344308688137593568809893332,
		0.149451349150580593145776339657697,
		0.219086362515982043995534934228163,
		0.269266719309996355091226921569469,
		0.295524224714752870173892994651338,
	}
)

// segment is one subinterval of the adaptive partition.
type segment struct {
	a, b   float64
	result float64
	err    float64
}

// segmentHeap orders segments by descending error.
type segmentHeap []segment

func (h segmentHeap) Len() int           { return len(h) }
func (h segmentHeap) Less(i, j int) bool { return h[i].err > h[j].err }
func (h segmentHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *segmentHeap) Push(x any)        { *h = append(*h, x.(segment)) }
func (h *segmentHeap) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	*h = old[:n-1]
	return s
}

// kronrod21 applies the Gauss–Kronrod 10/21 pair to f on [a, b].
// It returns the Kronrod estimate, the error estimate and |∫f| (used for the
// round-off test).
func kronrod21(f Func, a, b float64) (result, abserr, resabs float64, err error) {
	centr := 0.5 * (a + b)
	hlgth := 0.5 * (b - a)
	dhlgth := math.Abs(hlgth)

	var fv1, fv2 [10]float64

	fc := f(centr)
	if math.IsNaN(fc) || math.IsInf(fc, 0) {
		return 0, 0, 0, fmt.Errorf("%w: f(%v) = %v", ErrNonFiniteIntegrand, centr, fc)
	}

	resg := 0.0
	resk := wgk[10] * fc
	resabs = math.Abs(resk)

	for j := 0; j < 10; j++ {
		absc := hlgth * xgk[j]
		x1, x2 := centr-absc, centr+absc
		f1, f2 := f(x1), f(x2)
		if math.IsNaN(f1) || math.IsInf(f1, 0) {
			return 0, 0, 0, fmt.Errorf("%w: f(%v) = %v", ErrNonFiniteIntegrand, x1, f1)
		}
		if math.IsNaN(f2) || math.IsInf(f2, 0) {
			return 0, 0, 0, fmt.Errorf("%w: f(%v) = %v", ErrNonFiniteIntegrand, x2, f2)
		}
		fv1[j], fv2[j] = f1, f2

		fsum := f1 + f2
		resk += wgk[j] * fsum
		resabs += wgk[j] * (math.Abs(f1) + math.Abs(f2))
		if j%2 == 1 {
			resg += wg[j/2] * fsum
		}
	}

	reskh := resk * 0.5
	resasc := wgk[10] * math.Abs(fc-reskh)
	for j := 0; j < 10; j++ {
		resasc += wgk[j] * (math.Abs(fv1[j]-reskh) + math.Abs(fv2[j]-reskh))
	}

	result = resk * hlgth
	resabs *= dhlgth
	resasc *= dhlgth
	gap := math.Abs((resk - resg) * hlgth)

	abserr = gap
	if resasc != 0 && gap != 0 {
		abserr = resasc * math.Min(1, math.Pow(200*gap/resasc, 1.5))
	}
	// The scaled estimate assumes the nodes resolve f. A cusp smoothed over a
	// width below the node spacing is not resolved, so the raw gap is a floor.
	abserr = math.Max(abserr, gapFactor*gap)
	if resabs > uflow/(50*epmach) {
		abserr = math.Max(epmach*50*resabs, abserr)
	}

	return result, abserr, resabs, nil
}

// evalsPerRule is the number of integrand calls made by kronrod21.
const evalsPerRule = 21

// Integrate computes ∫_a^b f(x) dx by globally adaptive Gauss–Kronrod
// quadrature.
//
// The interval is always bisected at least once, and the halves inherit the
// disagreement between the whole-interval rule and their sum. After that the
// subinterval with the largest error estimate is bisected until the summed
// error drops to max(cfg.AbsTol, cfg.RelTol·|estimate|). Points where f is
// continuous but not differentiable (a cusp) attract refinement
// automatically; the caller never splits the interval.
//
// If the budget of cfg.MaxSubintervals is exhausted, or a subinterval becomes
// too narrow to bisect, a *NonConvergenceError is returned instead of a
// low-accuracy result.
func Integrate(f Func, a, b float64, cfg QuadConfig) (QuadResult, error) {
	if err := cfg.Validate(); err != nil {
		return QuadResult{}, err
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return QuadResult{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidInterval, a, b)
	}
	if a == b {
		return QuadResult{Subintervals: 1}, nil
	}

	result, abserr, resabs, err := kronrod21(f, a, b)
	if err != nil {
		return QuadResult{}, err
	}
	evals := evalsPerRule

	tolerance := math.Max(cfg.AbsTol, cfg.RelTol*math.Abs(result))
	// Round-off already dominates on the whole interval; bisecting cannot help.
	if abserr > tolerance && abserr <= 50*epmach*resabs {
		return QuadResult{}, &NonConvergenceError{
			Estimate: result, AbsErr: abserr, Tolerance: tolerance,
			Subintervals: 1, Reason: "roundoff",
		}
	}

	whole := segment{a: a, b: b, result: result, err: abserr}
	left, right, err := bisect(f, whole)
	if err != nil {
		return QuadResult{}, err
	}
	evals += 2 * evalsPerRule

	// A single rule can agree with itself and still miss a feature narrower
	// than its nodes; the halves cannot claim less than they moved the estimate.
	d := 0.5 * math.Abs(result-(left.result+right.result))
	left.err = math.Max(left.err, d)
	right.err = math.Max(right.err, d)

	segs := make(segmentHeap, 0, cfg.MaxSubintervals)
	heap.Push(&segs, left)
	heap.Push(&segs, right)

	area := left.result + right.result
	errsum := left.err + right.err

	for {
		tolerance = math.Max(cfg.AbsTol, cfg.RelTol*math.Abs(area))
		if errsum <= tolerance {
			return finish(segs, evals), nil
		}
		if segs.Len() >= cfg.MaxSubintervals {
			break
		}

		worst := heap.Pop(&segs).(segment)

		mid := 0.5 * (worst.a + worst.b)
		if math.Max(math.Abs(worst.a), math.Abs(worst.b)) <= (1+100*epmach)*(math.Abs(mid)+1000*uflow) {
			heap.Push(&segs, worst)
			return QuadResult{}, &NonConvergenceError{
				Estimate: area, AbsErr: errsum, Tolerance: tolerance,
				Subintervals: segs.Len(), Reason: "roundoff",
			}
		}

		s1, s2, err := bisect(f, worst)
		if err != nil {
			return QuadResult{}, err
		}
		evals += 2 * evalsPerRule

		area += s1.result + s2.result - worst.result
		errsum += s1.err + s2.err - worst.err

		heap.Push(&segs, s1)
		heap.Push(&segs, s2)
	}

	final := finish(segs, evals)
	return QuadResult{}, &NonConvergenceError{
		Estimate:     final.Estimate,
		AbsErr:       final.AbsErr,
		Tolerance:    math.Max(cfg.AbsTol, cfg.RelTol*math.Abs(final.Estimate)),
		Subintervals: final.Subintervals,
		Reason:       "budget",
	}
}

// bisect applies kronrod21 to both halves of s.
func bisect(f Func, s segment) (segment, segment, error) {
	mid := 0.5 * (s.a + s.b)
	r1, e1, _, err := kronrod21(f, s.a, mid)
	if err != nil {
		return segment{}, segment{}, err
	}
	r2, e2, _, err := kronrod21(f, mid, s.b)
	if err != nil {
		return segment{}, segment{}, err
	}
	return segment{a: s.a, b: mid, result: r1, err: e1},
		segment{a: mid, b: s.b, result: r2, err: e2}, nil
}

// finish resums the partition so the running totals' drift is discarded.
func finish(segs segmentHeap, evals int) QuadResult {
	var sum, errsum float64
	for _, s := range segs {
		sum += s.result
		errsum += s.err
	}
	return QuadResult{
		Estimate:     sum,
		AbsErr:       errsum,
		Subintervals: len(segs),
		Evaluations:  evals,
	}
}
