package rta

import (
	"fmt"
	"math"
)

// ArrivalBound is an upper bound on how often a recurrent activation source
// can release jobs.
//
// MaxArrivals reports the most jobs that can arrive in any half-open interval
// of the given length; Steps enumerates the interval lengths, in increasing
// order, at which that count changes. Fixed-point searches only need to
// evaluate demand at steps, which is what keeps the analyses tractable.
type ArrivalBound interface {
	// MaxArrivals returns the most jobs that can arrive in any interval of
	// length delta. Zero for delta ≤ 0; monotonically non-decreasing.
	MaxArrivals(delta Time) int

	// Steps returns, in increasing order, every interval length delta ≤ limit
	// at which MaxArrivals(delta) > MaxArrivals(delta-1).
	Steps(limit Time) []Time
}

// PeriodicArrivals releases one job exactly every Period time units.
type PeriodicArrivals struct {
	Period Time
}

// NewPeriodicArrivals validates period > 0 and builds the model.
func NewPeriodicArrivals(period Time) (PeriodicArrivals, error) {
	if period <= 0 {
		return PeriodicArrivals{}, fmt.Errorf("%w: period must be positive (got %d)", ErrInvalidInput, period)
	}
	return PeriodicArrivals{Period: period}, nil
}

func (p PeriodicArrivals) MaxArrivals(delta Time) int {
	if delta <= 0 {
		return 0
	}
	return int(divideCeil(delta, p.Period))
}

func (p PeriodicArrivals) Steps(limit Time) []Time {
	var steps []Time
	for j := Time(0); j*p.Period+1 <= limit; j++ {
		steps = append(steps, j*p.Period+1)
	}
	return steps
}

// SporadicArrivals releases jobs at least MinInterarrival apart, with each
// release perturbed by up to Jitter time units. Jitter zero gives the
// classic sporadic model.
type SporadicArrivals struct {
	MinInterarrival Time
	Jitter          Time
}

// NewSporadicArrivals validates the inter-arrival separation and jitter.
func NewSporadicArrivals(minInterarrival, jitter Time) (SporadicArrivals, error) {
	if minInterarrival <= 0 {
		return SporadicArrivals{}, fmt.Errorf("%w: minimum inter-arrival time must be positive (got %d)", ErrInvalidInput, minInterarrival)
	}
	if jitter < 0 {
		return SporadicArrivals{}, fmt.Errorf("%w: jitter must not be negative (got %d)", ErrInvalidInput, jitter)
	}
	return SporadicArrivals{MinInterarrival: minInterarrival, Jitter: jitter}, nil
}

func (s SporadicArrivals) MaxArrivals(delta Time) int {
	if delta <= 0 {
		return 0
	}
	return int(divideCeil(delta+s.Jitter, s.MinInterarrival))
}

func (s SporadicArrivals) Steps(limit Time) []Time {
	var steps []Time
	if limit >= 1 {
		steps = append(steps, 1)
	}
	// The j-th additional arrival first becomes possible once the interval
	// outgrows j separations compressed by the jitter.
	for j := Time(1); ; j++ {
		step := j*s.MinInterarrival + 1 - s.Jitter
		if step <= 1 {
			continue
		}
		if step > limit {
			return steps
		}
		steps = append(steps, step)
	}
}

// NeverArrives is the arrival bound of a source that releases no jobs at
// all. Useful as a neutral element when aggregating interference terms.
type NeverArrives struct{}

func (NeverArrives) MaxArrivals(Time) int { return 0 }

func (NeverArrives) Steps(Time) []Time { return nil }

// PropagatedArrivals bounds the activations of a task triggered by the
// completions of a predecessor: each input job produces one output job, but
// the predecessor's response-time variation adds to the effective jitter.
//
// The bound is safe for any predecessor response time within
// [MinResponse, MaxResponse].
type PropagatedArrivals struct {
	Input       ArrivalBound
	MinResponse Time
	MaxResponse Time
}

// NewPropagatedArrivals validates 0 ≤ minResponse ≤ maxResponse and builds
// the model.
func NewPropagatedArrivals(input ArrivalBound, minResponse, maxResponse Time) (PropagatedArrivals, error) {
	if input == nil {
		return PropagatedArrivals{}, fmt.Errorf("%w: nil input arrival bound", ErrInvalidInput)
	}
	if minResponse < 0 || maxResponse < minResponse {
		return PropagatedArrivals{}, fmt.Errorf("%w: response-time interval must satisfy 0 ≤ min ≤ max (got min=%d max=%d)", ErrInvalidInput, minResponse, maxResponse)
	}
	return PropagatedArrivals{Input: input, MinResponse: minResponse, MaxResponse: maxResponse}, nil
}

// jitter is the extra release variation induced by the predecessor.
func (p PropagatedArrivals) jitter() Time {
	return p.MaxResponse - p.MinResponse
}

func (p PropagatedArrivals) MaxArrivals(delta Time) int {
	if delta <= 0 {
		return 0
	}
	return p.Input.MaxArrivals(delta + p.jitter())
}

func (p PropagatedArrivals) Steps(limit Time) []Time {
	j := p.jitter()
	var steps []Time
	if limit >= 1 && p.MaxArrivals(1) > 0 {
		steps = append(steps, 1)
	}
	for _, s := range p.Input.Steps(limit + j) {
		shifted := s - j
		if shifted <= 1 {
			continue
		}
		if shifted > limit {
			break
		}
		steps = append(steps, shifted)
	}
	return steps
}

// ArrivalGroup aggregates several independent sources into a single arrival
// bound, as needed when multiple tasks share one priority level or one FIFO
// queue position.
type ArrivalGroup []ArrivalBound

func (g ArrivalGroup) MaxArrivals(delta Time) int {
	total := 0
	for _, b := range g {
		total += b.MaxArrivals(delta)
	}
	return total
}

func (g ArrivalGroup) Steps(limit Time) []Time {
	var all [][]Time
	for _, b := range g {
		all = append(all, b.Steps(limit))
	}
	return mergeSteps(all...)
}

// mergeSteps merges already-sorted step sequences into one sorted sequence
// without duplicates.
func mergeSteps(seqs ...[]Time) []Time {
	var merged []Time
	for {
		best := Time(math.MaxInt64)
		found := false
		for _, s := range seqs {
			if len(s) > 0 && s[0] < best {
				best = s[0]
				found = true
			}
		}
		if !found {
			return merged
		}
		for i, s := range seqs {
			if len(s) > 0 && s[0] == best {
				seqs[i] = s[1:]
			}
		}
		merged = append(merged, best)
	}
}

// PoissonArrivals bounds a stochastic source with exponential inter-arrival
// times at the given rate, truncated at the quantile where the residual
// probability mass drops below Epsilon. The resulting curve is a safe bound
// with probability at least 1-Epsilon per interval.
//
// This is the one place the package leaves exact integer arithmetic: the
// quantile computation works on probabilities, but the produced arrival
// bound is integral like every other.
type PoissonArrivals struct {
	// Rate is the expected number of arrivals per time unit.
	Rate float64
	// Epsilon is the per-interval probability mass allowed to exceed the
	// bound.
	Epsilon float64
}

// NewPoissonArrivals validates rate > 0 and 0 < epsilon < 1.
func NewPoissonArrivals(rate, epsilon float64) (PoissonArrivals, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return PoissonArrivals{}, fmt.Errorf("%w: arrival rate must be positive and finite (got %g)", ErrInvalidInput, rate)
	}
	if !(epsilon > 0 && epsilon < 1) {
		return PoissonArrivals{}, fmt.Errorf("%w: epsilon must lie strictly between 0 and 1 (got %g)", ErrInvalidInput, epsilon)
	}
	return PoissonArrivals{Rate: rate, Epsilon: epsilon}, nil
}

// MaxArrivals returns the least n such that the probability of more than n
// arrivals in an interval of length delta is at most Epsilon.
func (p PoissonArrivals) MaxArrivals(delta Time) int {
	if delta <= 0 {
		return 0
	}
	mean := p.Rate * float64(delta)
	// P[N = k] computed incrementally to avoid factorial overflow. For large
	// means exp(-mean) underflows to exactly 0 and the incremental walk from
	// k = 0 could never accumulate any mass, so those intervals are handled
	// by accumulating outward from the mode instead.
	prob := math.Exp(-mean)
	if prob == 0 {
		return p.quantileAroundMode(mean)
	}
	cumulative := prob
	n := 0
	for cumulative < 1-p.Epsilon {
		n++
		prob *= mean / float64(n)
		cumulative += prob
	}
	return n
}

// quantileAroundMode computes the quantile for means so large that the
// probability of zero arrivals is not representable. The mass is accumulated
// outward from the mode, where it always is; tail terms lost to underflow
// only shrink the accumulated mass, which can enlarge the returned count but
// never understate it.
func (p PoissonArrivals) quantileAroundMode(mean float64) int {
	mode := math.Floor(mean)
	lg, _ := math.Lgamma(mode + 1)
	pmfMode := math.Exp(-mean + mode*math.Log(mean) - lg)

	cumulative := pmfMode
	pmf := pmfMode
	for k := mode; k >= 1 && pmf > 0; k-- {
		pmf *= k / mean
		cumulative += pmf
	}

	n := mode
	pmf = pmfMode
	for cumulative < 1-p.Epsilon && pmf > 0 {
		n++
		pmf *= mean / n
		cumulative += pmf
	}
	// Once the upper-tail term underflows, everything float64 can represent
	// has been counted; n is the best answer the arithmetic admits.
	return int(n)
}

// Steps enumerates the interval lengths at which the truncated quantile
// grows. The quantile has no closed-form inverse, so the steps are found by
// scanning; the count changes only O(rate·limit) times.
func (p PoissonArrivals) Steps(limit Time) []Time {
	var steps []Time
	prev := 0
	for delta := Time(1); delta <= limit; delta++ {
		n := p.MaxArrivals(delta)
		if n > prev {
			steps = append(steps, delta)
			prev = n
		}
	}
	return steps
}
