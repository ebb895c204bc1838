package rta

import "fmt"

// FIFO bounds the response time of any task in a task set scheduled in
// first-in first-out order on a dedicated uniprocessor, following the
// verified analysis of Bedarkar et al. (RTSS 2022).
//
// Under FIFO every job admitted to the queue must wait for all earlier
// demand, so all tasks share one response-time bound and total carries the
// combined demand of the whole task set. A job arriving at offset A within a
// busy window waits for everything that arrived up to and including A, minus
// the A time units already elapsed; the bound is the worst case over all
// offsets at which the total demand steps.
//
// Returns Unbounded when the busy window diverges past cfg.Ceiling, which
// under FIFO means total utilization is at or above the processor capacity.
func FIFO(total WorkloadDemand, cfg SolverConfig) (Bound, error) {
	if err := cfg.validate(); err != nil {
		return Bound{}, err
	}
	if total == nil {
		return Bound{}, fmt.Errorf("%w: nil demand model", ErrInvalidInput)
	}

	window, ok := fixedPointSearch(Dedicated{}, cfg.Ceiling, total.Demand)
	if !ok {
		return Unbounded(), nil
	}

	best := Time(0)
	for _, a := range stepOffsets(total, window) {
		if r := total.Demand(a+1) - a; r > best {
			best = r
		}
	}
	return Bounded(best), nil
}
