package rta

import "fmt"

// CostModel bounds the cumulative worst-case execution demand of consecutive
// jobs of a task.
type CostModel interface {
	// CostOfJobs returns the maximum cumulative demand of any n consecutive
	// jobs. Zero for n ≤ 0; monotonically non-decreasing in n.
	CostOfJobs(n int) Time

	// LeastCost returns the cost of the cheapest job among any n consecutive
	// jobs. Zero for n ≤ 0. Non-preemptive analyses use it to bound the
	// final segment of the job under analysis.
	LeastCost(n int) Time
}

// ScalarCost is the classic Liu & Layland characterization: every job runs
// for at most WCET time units.
type ScalarCost struct {
	WCET Time
}

// NewScalarCost validates wcet ≥ 0 and builds the model.
func NewScalarCost(wcet Time) (ScalarCost, error) {
	if wcet < 0 {
		return ScalarCost{}, fmt.Errorf("%w: WCET must not be negative (got %d)", ErrInvalidInput, wcet)
	}
	return ScalarCost{WCET: wcet}, nil
}

func (s ScalarCost) CostOfJobs(n int) Time {
	if n <= 0 {
		return 0
	}
	return s.WCET * Time(n)
}

func (s ScalarCost) LeastCost(n int) Time {
	if n <= 0 {
		return 0
	}
	return s.WCET
}

// MultiframeCost is the classic multi-frame model: consecutive jobs cycle
// through a fixed vector of per-job WCET bounds.
type MultiframeCost struct {
	Costs []Time
}

// NewMultiframeCost validates a non-empty vector of non-negative per-job
// costs and builds the model.
func NewMultiframeCost(costs []Time) (MultiframeCost, error) {
	if len(costs) == 0 {
		return MultiframeCost{}, fmt.Errorf("%w: multiframe cost vector must not be empty", ErrInvalidInput)
	}
	cp := make([]Time, len(costs))
	copy(cp, costs)
	for i, c := range cp {
		if c < 0 {
			return MultiframeCost{}, fmt.Errorf("%w: multiframe cost %d is negative (%d)", ErrInvalidInput, i, c)
		}
	}
	return MultiframeCost{Costs: cp}, nil
}

// CostOfJobs sums the n largest-demand alignment of the frame cycle. Since
// the worst case starts at the frame with the highest cumulative demand, the
// bound is the maximum over all cycle rotations.
func (m MultiframeCost) CostOfJobs(n int) Time {
	if n <= 0 || len(m.Costs) == 0 {
		return 0
	}
	best := Time(0)
	for start := range m.Costs {
		total := Time(0)
		for j := 0; j < n; j++ {
			total += m.Costs[(start+j)%len(m.Costs)]
		}
		if total > best {
			best = total
		}
	}
	return best
}

func (m MultiframeCost) LeastCost(n int) Time {
	if n <= 0 || len(m.Costs) == 0 {
		return 0
	}
	limit := n
	if limit > len(m.Costs) {
		limit = len(m.Costs)
	}
	least := m.Costs[0]
	for _, c := range m.Costs[1:limit] {
		if c < least {
			least = c
		}
	}
	return least
}

// CostCurve bounds cumulative demand by a finite prefix: entry i holds the
// maximum total cost of any i+1 consecutive jobs. Beyond the prefix the
// curve repeats its last entry subadditively, like the prefix repetition of
// ArrivalCurve but bounding from above instead of below.
type CostCurve struct {
	costOfNJobs []Time
}

// NewCostCurve builds a curve from a cumulative-cost prefix; non-monotonic
// prefixes are repaired by taking the running maximum.
func NewCostCurve(costOfNJobs []Time) (*CostCurve, error) {
	if len(costOfNJobs) == 0 {
		return nil, fmt.Errorf("%w: cost prefix must not be empty", ErrInvalidInput)
	}
	cp := make([]Time, len(costOfNJobs))
	copy(cp, costOfNJobs)
	for i, c := range cp {
		if c < 0 {
			return nil, fmt.Errorf("%w: cost prefix entry %d is negative (%d)", ErrInvalidInput, i, c)
		}
		if i > 0 && c < cp[i-1] {
			cp[i] = cp[i-1]
		}
	}
	return &CostCurve{costOfNJobs: cp}, nil
}

// CostCurveFromTrace infers a cumulative-cost prefix of up to maxJobs entries
// from a trace of observed per-job costs, using a sliding window that keeps
// the worst observed total for every window size.
func CostCurveFromTrace(jobCosts []Time, maxJobs int) (*CostCurve, error) {
	if maxJobs < 1 {
		return nil, fmt.Errorf("%w: prefix must cover at least one job (got %d)", ErrInvalidInput, maxJobs)
	}
	var costOf []Time
	var window []Time
	for _, c := range jobCosts {
		if c < 0 {
			return nil, fmt.Errorf("%w: observed job cost is negative (%d)", ErrInvalidInput, c)
		}
		window = append(window, c)
		if len(window) > maxJobs {
			window = window[1:]
		}
		total := Time(0)
		for i := len(window) - 1; i >= 0; i-- {
			total += window[i]
			size := len(window) - 1 - i
			if len(costOf) <= size {
				costOf = append(costOf, total)
			} else if total > costOf[size] {
				costOf[size] = total
			}
		}
	}
	return NewCostCurve(costOf)
}

func (c *CostCurve) CostOfJobs(n int) Time {
	if n <= 0 {
		return 0
	}
	x := n / len(c.costOfNJobs)
	y := n % len(c.costOfNJobs)
	var total Time
	if x > 0 {
		total = c.costOfNJobs[len(c.costOfNJobs)-1] * Time(x)
	}
	if y > 0 {
		total += c.costOfNJobs[y-1]
	}
	return total
}

func (c *CostCurve) LeastCost(n int) Time {
	if n <= 0 {
		return 0
	}
	least := c.costOfNJobs[0]
	limit := len(c.costOfNJobs)
	if n < limit {
		limit = n
	}
	for i := 1; i < limit; i++ {
		if d := c.costOfNJobs[i] - c.costOfNJobs[i-1]; d < least {
			least = d
		}
	}
	return least
}

// extrapolateNext tightens the next prefix entry by subadditivity: n jobs
// cost at most the cheapest split into k and n-k jobs.
func (c *CostCurve) extrapolateNext() Time {
	n := len(c.costOfNJobs)
	best := c.costOfNJobs[0] + c.costOfNJobs[n-1]
	for k := 1; k <= n/2; k++ {
		if v := c.costOfNJobs[k] + c.costOfNJobs[n-k-1]; v < best {
			best = v
		}
	}
	return best
}

// Extrapolate grows the prefix until it covers n jobs. Fewer than three
// samples carry too little shape to extrapolate, so short prefixes are left
// alone and served by plain repetition.
func (c *CostCurve) Extrapolate(n int) {
	if len(c.costOfNJobs) < 3 {
		return
	}
	for len(c.costOfNJobs) < n {
		c.costOfNJobs = append(c.costOfNJobs, c.extrapolateNext())
	}
}

// ExtrapolatingCostCurve wraps a CostCurve and grows its prefix on demand.
// The wrapped curve mutates on use; not safe for concurrent use.
type ExtrapolatingCostCurve struct {
	Curve *CostCurve
}

func (e ExtrapolatingCostCurve) CostOfJobs(n int) Time {
	e.Curve.Extrapolate(n + 1)
	return e.Curve.CostOfJobs(n)
}

func (e ExtrapolatingCostCurve) LeastCost(n int) Time {
	// The least per-job cost is determined by the initial prefix alone.
	return e.Curve.LeastCost(n)
}
