package rta

// WorkloadDemand bounds the cumulative processor demand of one or more tasks
// over an interval. It is the glue between arrival bounds and cost models on
// one side and the fixed-point searches on the other.
type WorkloadDemand interface {
	// Demand bounds the total service needed in any interval of length
	// delta. Zero for delta ≤ 0; monotonically non-decreasing.
	Demand(delta Time) Time

	// Steps returns, in increasing order, every interval length delta ≤
	// limit at which Demand(delta) > Demand(delta-1). Fixed-point searches
	// evaluate demand only at steps.
	Steps(limit Time) []Time
}

// RBF is the canonical request-bound function, connecting an arrival bound
// and a cost model: the demand in an interval is the cumulative cost of the
// most jobs that can arrive in it.
type RBF struct {
	Arrivals ArrivalBound
	Costs    CostModel
}

func (r RBF) Demand(delta Time) Time {
	return r.Costs.CostOfJobs(r.Arrivals.MaxArrivals(delta))
}

func (r RBF) Steps(limit Time) []Time {
	return r.Arrivals.Steps(limit)
}

// LeastCostIn bounds the cheapest job among those arriving in an interval of
// length delta. Non-preemptive analyses use it to bound final segments.
func (r RBF) LeastCostIn(delta Time) Time {
	return r.Costs.LeastCost(r.Arrivals.MaxArrivals(delta))
}

// AggregateDemand is the total demand of several sources, such as all
// higher-or-equal-priority tasks seen by the task under analysis.
type AggregateDemand []WorkloadDemand

func (a AggregateDemand) Demand(delta Time) Time {
	var total Time
	for _, d := range a {
		total += d.Demand(delta)
	}
	return total
}

func (a AggregateDemand) Steps(limit Time) []Time {
	seqs := make([][]Time, len(a))
	for i, d := range a {
		seqs[i] = d.Steps(limit)
	}
	return mergeSteps(seqs...)
}

// stepOffsets yields the offsets A < window at which the demand increases
// when the interval grows past A, i.e. Demand(A) < Demand(A+1). These are
// the only candidate job-arrival offsets a busy-window analysis must check.
func stepOffsets(w WorkloadDemand, window Time) []Time {
	steps := w.Steps(window)
	offsets := make([]Time, 0, len(steps))
	for _, s := range steps {
		if a := s - 1; a < window {
			offsets = append(offsets, a)
		}
	}
	return offsets
}

// TotalInterference adapts demand sources into the interference term of a
// response-time recurrence: the interference in a window is the sources'
// total demand over it.
func TotalInterference(sources ...WorkloadDemand) InterferenceFunc {
	return func(delta Time) Time {
		var total Time
		for _, s := range sources {
			total += s.Demand(delta)
		}
		return total
	}
}

// WithBlocking adds a constant blocking term, such as the longest
// non-preemptive section of any lower-priority task, to an interference
// bound.
func WithBlocking(f InterferenceFunc, blocking Time) InterferenceFunc {
	return func(delta Time) Time {
		return f(delta) + blocking
	}
}
