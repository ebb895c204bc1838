package rta

import "fmt"

// EDFTask pairs a task's demand with its relative deadline for the
// earliest-deadline-first analyses. Under EDF only jobs with earlier or
// equal absolute deadlines can preempt, so deadlines shape both the
// interference bound and the offset search space.
type EDFTask struct {
	Demand   WorkloadDemand
	Deadline Time
}

// EDFPreemptive bounds the response time of a task under fully preemptive
// EDF scheduling on a dedicated uniprocessor, instantiating the abstract
// analysis of Bozhko & Brandenburg (ECRTS 2020) for EDF.
func EDFPreemptive(task EDFTask, others []EDFTask, cfg SolverConfig) (Bound, error) {
	if err := validateEDFInput(task.Demand != nil, task.Deadline, others, cfg); err != nil {
		return Bound{}, err
	}

	window, ok := fixedPointSearch(Dedicated{}, cfg.Ceiling, func(l Time) Time {
		total := task.Demand.Demand(l)
		for _, ot := range others {
			total += ot.Demand.Demand(l)
		}
		return total
	})
	if !ok {
		return Unbounded(), nil
	}

	rhs := func(a, af Time) Time {
		total := task.Demand.Demand(a + 1)
		for _, ot := range others {
			// A job of another task competes only if its absolute deadline is
			// no later than ours, which caps the window it can interfere in.
			horizon := minTime(af, saturatingSub(a+1+task.Deadline, ot.Deadline))
			total += ot.Demand.Demand(horizon)
		}
		return total
	}

	offsets := edfSearchSpace(task, others, window)
	return maxOverOffsets(offsets, cfg.Ceiling, rhs,
		func(a, af Time) Time { return saturatingSub(af, a) },
	), nil
}

// EDFNPTask describes one task for the fully non-preemptive EDF analysis,
// which needs scalar per-job costs to reason about run-to-completion and
// priority inversion.
type EDFNPTask struct {
	WCET     Time
	Arrivals ArrivalBound
	Deadline Time
}

func (t EDFNPTask) rbf() RBF {
	return RBF{Arrivals: t.Arrivals, Costs: ScalarCost{WCET: t.WCET}}
}

// EDFNonPreemptive bounds the response time of a task under fully
// non-preemptive EDF scheduling on a dedicated uniprocessor. Once a job
// starts it runs to completion, so only its first time unit is contended and
// a lower-priority job that already started can block it for up to its WCET
// minus one.
func EDFNonPreemptive(task EDFNPTask, others []EDFNPTask, cfg SolverConfig) (Bound, error) {
	if err := cfg.validate(); err != nil {
		return Bound{}, err
	}
	if task.Arrivals == nil {
		return Bound{}, fmt.Errorf("%w: nil arrival bound", ErrInvalidInput)
	}
	if task.WCET < 1 {
		return Bound{}, fmt.Errorf("%w: WCET must be positive (got %d)", ErrInvalidInput, task.WCET)
	}
	if task.Deadline < 0 {
		return Bound{}, fmt.Errorf("%w: deadline must not be negative (got %d)", ErrInvalidInput, task.Deadline)
	}
	for _, ot := range others {
		if ot.Arrivals == nil {
			return Bound{}, fmt.Errorf("%w: nil arrival bound in interfering task", ErrInvalidInput)
		}
		if ot.WCET < 0 || ot.Deadline < 0 {
			return Bound{}, fmt.Errorf("%w: WCET and deadline must not be negative (got wcet=%d deadline=%d)", ErrInvalidInput, ot.WCET, ot.Deadline)
		}
	}

	rbf := task.rbf()
	otherRBFs := make([]RBF, len(others))
	for i, ot := range others {
		otherRBFs[i] = ot.rbf()
	}

	window, ok := fixedPointSearch(Dedicated{}, cfg.Ceiling, func(l Time) Time {
		total := rbf.Demand(l)
		for _, o := range otherRBFs {
			total += o.Demand(l)
		}
		return total
	})
	if !ok {
		return Unbounded(), nil
	}

	// A job cannot be preempted once started, so everything past its first
	// time unit is excluded from the contended demand.
	remCost := saturatingSub(task.WCET, 1)

	edfOthers := make([]EDFTask, len(others))
	for i, ot := range others {
		edfOthers[i] = EDFTask{Demand: otherRBFs[i], Deadline: ot.Deadline}
	}
	offsets := edfSearchSpace(EDFTask{Demand: rbf, Deadline: task.Deadline}, edfOthers, window)

	rhs := func(a, af Time) Time {
		// Priority inversion: a job with a later absolute deadline may
		// already occupy the processor when ours arrives.
		blocking := Time(0)
		for _, ot := range others {
			if ot.Deadline > task.Deadline+a {
				blocking = maxTime(blocking, saturatingSub(ot.WCET, 1))
			}
		}
		total := blocking + rbf.Demand(a+1) - remCost
		for i, ot := range others {
			horizon := minTime(af, saturatingSub(a+1+task.Deadline, ot.Deadline))
			total += otherRBFs[i].Demand(horizon)
		}
		return total
	}

	return maxOverOffsets(offsets, cfg.Ceiling, rhs,
		func(a, af Time) Time { return saturatingSub(af, a) + remCost },
	), nil
}

// edfSearchSpace assembles the offsets the EDF analyses must examine: the
// steps of the task's own demand, plus the steps of every other task shifted
// by the deadline difference, where that task's interference horizon starts
// to grow.
func edfSearchSpace(task EDFTask, others []EDFTask, window Time) []Time {
	seqs := make([][]Time, 0, len(others)+1)
	seqs = append(seqs, stepOffsets(task.Demand, window))
	for _, ot := range others {
		var shifted []Time
		for _, off := range stepOffsets(ot.Demand, window+task.Deadline) {
			a := saturatingSub(off+ot.Deadline, task.Deadline)
			if a >= window {
				break
			}
			shifted = append(shifted, a)
		}
		seqs = append(seqs, shifted)
	}
	return mergeSteps(seqs...)
}

func validateEDFInput(haveDemand bool, deadline Time, others []EDFTask, cfg SolverConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if !haveDemand {
		return fmt.Errorf("%w: nil demand model", ErrInvalidInput)
	}
	if deadline < 0 {
		return fmt.Errorf("%w: deadline must not be negative (got %d)", ErrInvalidInput, deadline)
	}
	for _, ot := range others {
		if ot.Demand == nil {
			return fmt.Errorf("%w: nil demand model in interfering task", ErrInvalidInput)
		}
		if ot.Deadline < 0 {
			return fmt.Errorf("%w: deadline must not be negative (got %d)", ErrInvalidInput, ot.Deadline)
		}
	}
	return nil
}
