package rta

import "fmt"

// ArrivalCurve bounds an arbitrarily bursty arrival process by a finite
// delta-min prefix: entry i is the least interval length in which i+2 jobs
// may arrive. Distances for zero and one job are not stored, as they are
// always zero.
//
// Beyond the stored prefix the curve answers queries by exploiting the
// superadditivity of proper delta-min functions, repeating the prefix. Use
// Extrapolate (or the ExtrapolatingCurve wrapper) to grow the prefix when
// that repetition is too pessimistic.
type ArrivalCurve struct {
	minDistance []Time
}

// NewArrivalCurve builds a curve from a delta-min prefix. The prefix must be
// non-empty with non-negative entries and end in a positive distance;
// non-monotonic prefixes are repaired by taking the running maximum.
func NewArrivalCurve(deltaMinPrefix []Time) (*ArrivalCurve, error) {
	if len(deltaMinPrefix) == 0 {
		return nil, fmt.Errorf("%w: delta-min prefix must not be empty", ErrInvalidInput)
	}
	dist := make([]Time, len(deltaMinPrefix))
	copy(dist, deltaMinPrefix)
	for i, d := range dist {
		if d < 0 {
			return nil, fmt.Errorf("%w: delta-min prefix entry %d is negative (%d)", ErrInvalidInput, i, d)
		}
		if i > 0 && d < dist[i-1] {
			dist[i] = dist[i-1]
		}
	}
	if dist[len(dist)-1] == 0 {
		return nil, fmt.Errorf("%w: delta-min prefix must reach a positive distance", ErrInvalidInput)
	}
	return &ArrivalCurve{minDistance: dist}, nil
}

// ArrivalCurveFromBound infers a delta-min prefix from an arbitrary arrival
// bound, covering at least upToJobs job arrivals (and never fewer than two
// prefix entries).
func ArrivalCurveFromBound(ab ArrivalBound, upToJobs int) (*ArrivalCurve, error) {
	if ab == nil {
		return nil, fmt.Errorf("%w: nil arrival bound", ErrInvalidInput)
	}
	var dist []Time
	prev := Time(1)
	for n := 2; ; n++ {
		// The prefix must cover the requested jobs, hold at least two entries,
		// and end in a positive distance (a burst of simultaneous releases
		// yields leading zeros that alone cannot anchor prefix repetition).
		if n > upToJobs && len(dist) >= 2 && dist[len(dist)-1] > 0 {
			break
		}
		delta, ok := leastIntervalWithArrivals(ab, n, prev)
		if !ok {
			break
		}
		// Stored as a job-to-job distance, one less than the interval length.
		dist = append(dist, delta-1)
		prev = delta
	}
	if len(dist) == 0 {
		return nil, fmt.Errorf("%w: arrival bound never releases two jobs", ErrInvalidInput)
	}
	if dist[len(dist)-1] == 0 {
		return nil, fmt.Errorf("%w: arrival bound admits unboundedly many simultaneous jobs", ErrInvalidInput)
	}
	return &ArrivalCurve{minDistance: dist}, nil
}

// leastIntervalWithArrivals finds the least delta ≥ lo at which the bound
// admits at least n arrivals, doubling then bisecting. Reports !ok for
// bounds that never reach n arrivals.
func leastIntervalWithArrivals(ab ArrivalBound, n int, lo Time) (Time, bool) {
	const searchHorizon = Time(1) << 42
	hi := maxTime(lo, 1)
	for ab.MaxArrivals(hi) < n {
		if hi > searchHorizon {
			return 0, false
		}
		hi *= 2
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		if ab.MaxArrivals(mid) >= n {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return hi, true
}

// UnrollSporadic converts a sporadic model with jitter into an arrival curve.
// Jitter makes the prefix-repetition bound pessimistic, so the sporadic model
// is unrolled far enough that jitter-induced bursts amortize: at least 500
// jobs, and at least ten times the burst size.
func UnrollSporadic(s SporadicArrivals) (*ArrivalCurve, error) {
	if s.MinInterarrival <= 0 {
		return nil, fmt.Errorf("%w: minimum inter-arrival time must be positive (got %d)", ErrInvalidInput, s.MinInterarrival)
	}
	jitterJobs := int(divideCeil(s.Jitter, s.MinInterarrival))
	n := 500
	if jitterJobs*10 > n {
		n = jitterJobs * 10
	}
	return ArrivalCurveFromBound(s, n)
}

// ArrivalCurveFromTrace infers a delta-min prefix of up to prefixJobs entries
// from a trace of arrival times. Each observed separation between a job and
// its k-th predecessor tightens the belief about the minimum distance of k+1
// jobs. Arrival times must be monotonically non-decreasing.
func ArrivalCurveFromTrace(arrivalTimes []Time, prefixJobs int) (*ArrivalCurve, error) {
	if prefixJobs < 1 {
		return nil, fmt.Errorf("%w: prefix must cover at least one distance (got %d)", ErrInvalidInput, prefixJobs)
	}
	var dist []Time
	var window []Time
	for _, t := range arrivalTimes {
		if len(window) > 0 && t < window[len(window)-1] {
			return nil, fmt.Errorf("%w: arrival trace is not monotonic at time %d", ErrInvalidInput, t)
		}
		for i := 0; i < len(window); i++ {
			gap := t - window[len(window)-1-i]
			if len(dist) <= i {
				dist = append(dist, gap)
			} else if gap < dist[i] {
				dist[i] = gap
			}
		}
		window = append(window, t)
		if len(window) > prefixJobs {
			window = window[1:]
		}
	}
	return NewArrivalCurve(dist)
}

func (c *ArrivalCurve) minJobSeparation() Time { return c.minDistance[0] }

func (c *ArrivalCurve) largestKnownDistance() Time {
	return c.minDistance[len(c.minDistance)-1]
}

func (c *ArrivalCurve) jobsInLargestKnownDistance() int { return len(c.minDistance) }

// MinDistance returns a lower bound on the length of an interval in which n
// jobs arrive. Does not extrapolate, so it is pessimistic for n beyond the
// stored prefix.
func (c *ArrivalCurve) MinDistance(n int) Time {
	if n <= 1 {
		return 0
	}
	i := n - 2
	if i >= len(c.minDistance) {
		i = len(c.minDistance) - 1
	}
	return c.minDistance[i]
}

// lookupArrivals resolves a delta within the stored prefix.
func (c *ArrivalCurve) lookupArrivals(delta Time) int {
	for i, d := range c.minDistance {
		if delta <= d {
			return i + 1
		}
	}
	// Callers guarantee delta ≤ largestKnownDistance.
	panic("arrival curve lookup beyond stored prefix")
}

// MaxArrivals bounds the job arrivals in any interval of length delta,
// repeating the stored prefix superadditively for deltas beyond it.
func (c *ArrivalCurve) MaxArrivals(delta Time) int {
	if delta <= 0 {
		return 0
	}
	prefix := delta / c.largestKnownDistance()
	prefixJobs := int(prefix) * c.jobsInLargestKnownDistance()
	tail := delta % c.largestKnownDistance()
	if tail > c.minJobSeparation() {
		return prefixJobs + c.lookupArrivals(tail)
	}
	return prefixJobs + int(boolToTime(tail > 0))
}

// Steps enumerates the interval lengths at which MaxArrivals grows, cycling
// through the pairwise differences of the stored prefix.
func (c *ArrivalCurve) Steps(limit Time) []Time {
	var diffs []Time
	prev := Time(0)
	for _, d := range c.minDistance {
		if d > prev {
			diffs = append(diffs, d-prev)
		}
		prev = d
	}
	var steps []Time
	sum := Time(1)
	for i := 0; sum <= limit; i = (i + 1) % len(diffs) {
		steps = append(steps, sum)
		sum += diffs[i]
	}
	return steps
}

func (c *ArrivalCurve) canExtrapolate() bool { return len(c.minDistance) >= 2 }

// extrapolateNext derives the next delta-min entry from the stored prefix by
// superadditivity: n jobs need at least the worst split into k and n-k jobs.
func (c *ArrivalCurve) extrapolateNext() Time {
	n := len(c.minDistance)
	best := Time(0)
	// Index shifted by two since distances for zero and one jobs are implicit.
	for k := 0; k <= n/2; k++ {
		if d := c.minDistance[k] + c.minDistance[n-k-1]; d > best {
			best = d
		}
	}
	return best
}

// Extrapolate grows the delta-min prefix until it covers intervals of the
// given length. No-op for single-entry prefixes, which carry too little
// information to extrapolate.
func (c *ArrivalCurve) Extrapolate(horizon Time) {
	if !c.canExtrapolate() {
		return
	}
	for c.largestKnownDistance() < horizon {
		c.minDistance = append(c.minDistance, c.extrapolateNext())
	}
}

// ExtrapolateSteps grows the delta-min prefix until it covers n jobs.
func (c *ArrivalCurve) ExtrapolateSteps(n int) {
	if !c.canExtrapolate() {
		return
	}
	for c.jobsInLargestKnownDistance() < n {
		c.minDistance = append(c.minDistance, c.extrapolateNext())
	}
}

// extrapolateWithBound extends the prefix by one entry for njobs jobs using
// both superadditivity and an externally known least interval length.
func (c *ArrivalCurve) extrapolateWithBound(delta Time, njobs int) {
	if len(c.minDistance)+2 != njobs {
		return
	}
	dmin := delta - 1
	if c.canExtrapolate() {
		dmin = maxTime(dmin, c.extrapolateNext())
	}
	c.minDistance = append(c.minDistance, dmin)
}

// ExtrapolatingCurve wraps an ArrivalCurve and grows its prefix on demand, so
// queries far beyond the original prefix stay tight without a prior
// Extrapolate call. The wrapped curve mutates on use. Not safe for
// concurrent use; analyses that run in parallel must not share one instance.
type ExtrapolatingCurve struct {
	Curve *ArrivalCurve
}

func (e ExtrapolatingCurve) MaxArrivals(delta Time) int {
	if delta <= 0 {
		return 0
	}
	e.Curve.Extrapolate(delta + 1)
	return e.Curve.MaxArrivals(delta)
}

func (e ExtrapolatingCurve) Steps(limit Time) []Time {
	e.Curve.Extrapolate(limit + 1)
	return e.Curve.Steps(limit)
}

// CurveStep records that an arrival curve first assumes the value Jobs for
// intervals of length Delta.
type CurveStep struct {
	Delta Time
	Jobs  int
}

// ArrivalCurvePrefix is a step-based representation of an arrival curve,
// intended for input purposes: a finite sequence of steps exact up to a
// horizon, repeated (pessimistically) beyond it. Convert to an ArrivalCurve
// for better extrapolation.
type ArrivalCurvePrefix struct {
	horizon Time
	steps   []CurveStep
}

// NewArrivalCurvePrefix validates that the steps lie within the horizon,
// start at delta ≥ 1, and are strictly increasing in both fields.
func NewArrivalCurvePrefix(horizon Time, steps []CurveStep) (*ArrivalCurvePrefix, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive (got %d)", ErrInvalidInput, horizon)
	}
	lastJobs := 0
	lastDelta := Time(0)
	for _, s := range steps {
		if s.Delta < 1 || s.Delta > horizon {
			return nil, fmt.Errorf("%w: step delta %d outside [1, horizon=%d]", ErrInvalidInput, s.Delta, horizon)
		}
		if s.Delta <= lastDelta || s.Jobs <= lastJobs {
			return nil, fmt.Errorf("%w: curve steps must be strictly increasing", ErrInvalidInput)
		}
		lastDelta, lastJobs = s.Delta, s.Jobs
	}
	cp := make([]CurveStep, len(steps))
	copy(cp, steps)
	return &ArrivalCurvePrefix{horizon: horizon, steps: cp}, nil
}

func (a *ArrivalCurvePrefix) maxJobsInHorizon() int {
	if len(a.steps) == 0 {
		return 0
	}
	return a.steps[len(a.steps)-1].Jobs
}

func (a *ArrivalCurvePrefix) lookup(delta Time) int {
	if delta <= 0 {
		return 0
	}
	jobs := 0
	for _, s := range a.steps {
		if s.Delta > delta {
			break
		}
		jobs = s.Jobs
	}
	return jobs
}

func (a *ArrivalCurvePrefix) MaxArrivals(delta Time) int {
	if delta <= 0 {
		return 0
	}
	fullHorizons := delta / a.horizon
	partial := delta % a.horizon
	return a.maxJobsInHorizon()*int(fullHorizons) + a.lookup(partial)
}

func (a *ArrivalCurvePrefix) Steps(limit Time) []Time {
	if len(a.steps) == 0 {
		return nil
	}
	var steps []Time
	for cycle := Time(0); ; cycle++ {
		for _, s := range a.steps {
			v := cycle*a.horizon + s.Delta
			if v > limit {
				return steps
			}
			steps = append(steps, v)
		}
	}
}

// ToCurve converts the prefix into a delta-min arrival curve, seeding the
// entry just past the horizon from the horizon itself so that subsequent
// extrapolation does not lose the exact prefix information.
func (a *ArrivalCurvePrefix) ToCurve() (*ArrivalCurve, error) {
	njobs := a.maxJobsInHorizon()
	curve, err := ArrivalCurveFromBound(a, njobs)
	if err != nil {
		return nil, err
	}
	curve.extrapolateWithBound(a.horizon+1, njobs+1)
	return curve, nil
}
