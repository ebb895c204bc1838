package rta

import "fmt"

// The fixed-priority analyses bound the response time of one task on a
// dedicated uniprocessor, given the demand of all higher-or-equal-priority
// tasks. They instantiate the offset-based abstract response-time analysis of
// Bozhko & Brandenburg (ECRTS 2020): first bound the longest busy window L,
// then take the worst response time over every job-arrival offset A < L at
// which the task's own demand steps.
//
// Outcome mapping shared by all policy analyses in this package:
//   - the busy-window bound diverging past cfg.Ceiling means demand outstrips
//     the processor, so the result is Unbounded;
//   - a per-offset search diverging past cfg.Ceiling means the search gave up
//     rather than the task being proven unschedulable, so the result is
//     Inconclusive(CeilingExceeded);
//   - otherwise the result is Bounded with the worst offset's response time.
//
// The Deadline field of cfg is ignored; callers compare the returned bound
// against their deadlines.

// maxOverOffsets runs the per-offset fixed-point search and keeps the worst
// response-time bound. An empty search space means the task has no demand at
// all, so the response time is trivially zero.
func maxOverOffsets(offsets []Time, ceiling Time, rhs func(a, af Time) Time, respBound func(a, af Time) Time) Bound {
	best := Time(0)
	for _, a := range offsets {
		a := a
		af, ok := fixedPointSearch(Dedicated{}, ceiling, func(x Time) Time { return rhs(a, x) })
		if !ok {
			return Inconclusive(CeilingExceeded)
		}
		if r := respBound(a, af); r > best {
			best = r
		}
	}
	return Bounded(best)
}

// FixedPriorityPreemptive bounds the response time of a task under fully
// preemptive fixed-priority scheduling. interference carries the demand of
// every higher-or-equal-priority task; lower-priority tasks cannot delay the
// task under analysis and are not represented.
func FixedPriorityPreemptive(task RBF, interference []WorkloadDemand, cfg SolverConfig) (Bound, error) {
	if err := validateTask(task, cfg); err != nil {
		return Bound{}, err
	}
	hep := AggregateDemand(interference)

	window, ok := fixedPointSearch(Dedicated{}, cfg.Ceiling, func(l Time) Time {
		return hep.Demand(l) + task.Demand(l)
	})
	if !ok {
		return Unbounded(), nil
	}

	return maxOverOffsets(stepOffsets(task, window), cfg.Ceiling,
		func(a, af Time) Time { return task.Demand(a+1) + hep.Demand(af) },
		func(a, af Time) Time { return af - a },
	), nil
}

// FixedPriorityFloatingNP bounds the response time of a task under
// fixed-priority scheduling with floating non-preemptive sections.
// blockingBound must bound the longest non-preemptive segment of any
// lower-priority task. Since nothing is known about where the sections fall
// within a job, a job remains preemptable up to its completion and the
// response-time bound carries no final-segment credit.
func FixedPriorityFloatingNP(task RBF, blockingBound Time, interference []WorkloadDemand, cfg SolverConfig) (Bound, error) {
	if err := validateTask(task, cfg); err != nil {
		return Bound{}, err
	}
	if blockingBound < 0 {
		return Bound{}, fmt.Errorf("%w: blocking bound must not be negative (got %d)", ErrInvalidInput, blockingBound)
	}
	hep := AggregateDemand(interference)

	window, ok := fixedPointSearch(Dedicated{}, cfg.Ceiling, func(l Time) Time {
		return blockingBound + hep.Demand(l) + task.Demand(l)
	})
	if !ok {
		return Unbounded(), nil
	}

	return maxOverOffsets(stepOffsets(task, window), cfg.Ceiling,
		func(a, af Time) Time { return blockingBound + task.Demand(a+1) + hep.Demand(af) },
		func(a, af Time) Time { return af - a },
	), nil
}

// LimitedPreemptiveTask describes the task under analysis for
// FixedPriorityLimitedPreemptive: jobs consist of non-preemptive segments
// with preemption possible only at segment boundaries.
type LimitedPreemptiveTask struct {
	WCET     Time
	Arrivals ArrivalBound

	// LastSegment is the longest final non-preemptive segment of any job.
	// Once a job enters its last segment it runs to completion.
	LastSegment Time

	// BlockingBound bounds the priority inversion from lower-priority tasks,
	// i.e. the longest non-preemptive segment of any lower-priority task.
	BlockingBound Time
}

// FixedPriorityLimitedPreemptive bounds the response time of a task under
// fixed-priority scheduling with limited-preemptive jobs.
func FixedPriorityLimitedPreemptive(task LimitedPreemptiveTask, interference []WorkloadDemand, cfg SolverConfig) (Bound, error) {
	if err := cfg.validate(); err != nil {
		return Bound{}, err
	}
	if task.Arrivals == nil {
		return Bound{}, fmt.Errorf("%w: nil arrival bound", ErrInvalidInput)
	}
	if task.WCET < 0 {
		return Bound{}, fmt.Errorf("%w: WCET must not be negative (got %d)", ErrInvalidInput, task.WCET)
	}
	if task.LastSegment < 1 || task.LastSegment > task.WCET {
		return Bound{}, fmt.Errorf("%w: last segment must satisfy 1 ≤ segment ≤ WCET (got segment=%d wcet=%d)", ErrInvalidInput, task.LastSegment, task.WCET)
	}
	if task.BlockingBound < 0 {
		return Bound{}, fmt.Errorf("%w: blocking bound must not be negative (got %d)", ErrInvalidInput, task.BlockingBound)
	}

	rbf := RBF{Arrivals: task.Arrivals, Costs: ScalarCost{WCET: task.WCET}}
	hep := AggregateDemand(interference)

	window, ok := fixedPointSearch(Dedicated{}, cfg.Ceiling, func(l Time) Time {
		return task.BlockingBound + hep.Demand(l) + rbf.Demand(l)
	})
	if !ok {
		return Unbounded(), nil
	}

	// Once a job reaches its last non-preemptive segment it can no longer be
	// delayed, so that remainder is excluded from the contended demand and
	// added back after the search.
	remCost := task.LastSegment - 1

	return maxOverOffsets(stepOffsets(rbf, window), cfg.Ceiling,
		func(a, af Time) Time { return task.BlockingBound + rbf.Demand(a+1) - remCost + hep.Demand(af) },
		func(a, af Time) Time { return af - a + remCost },
	), nil
}

// FixedPriorityNonPreemptive bounds the response time of a task under fully
// non-preemptive fixed-priority scheduling. A job runs to completion once
// started, which is the limited-preemptive model with the entire WCET as the
// final segment.
func FixedPriorityNonPreemptive(wcet Time, arrivals ArrivalBound, blockingBound Time, interference []WorkloadDemand, cfg SolverConfig) (Bound, error) {
	if wcet < 1 {
		return Bound{}, fmt.Errorf("%w: WCET must be positive (got %d)", ErrInvalidInput, wcet)
	}
	task := LimitedPreemptiveTask{
		WCET:          wcet,
		Arrivals:      arrivals,
		LastSegment:   wcet,
		BlockingBound: blockingBound,
	}
	return FixedPriorityLimitedPreemptive(task, interference, cfg)
}

func validateTask(task RBF, cfg SolverConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if task.Arrivals == nil {
		return fmt.Errorf("%w: nil arrival bound", ErrInvalidInput)
	}
	if task.Costs == nil {
		return fmt.Errorf("%w: nil cost model", ErrInvalidInput)
	}
	return nil
}
