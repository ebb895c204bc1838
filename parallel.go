package rta

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Analysis is one self-contained response-time analysis, ready to run as
// part of a batch. Analyses scheduled together must not share mutable state
// such as an ExtrapolatingCurve.
type Analysis func() (Bound, error)

// SolveAll runs independent analyses concurrently, bounded by the number of
// processors, and collects their results in input order. The first analysis
// error cancels the ones not yet started and is returned; Unbounded or
// Inconclusive outcomes are results, not errors, and do not stop the batch.
func SolveAll(ctx context.Context, analyses []Analysis) ([]Bound, error) {
	// Validate the whole batch before the first launch, so a bad entry never
	// leaves goroutines behind writing into the result slice.
	for i, analyze := range analyses {
		if analyze == nil {
			return nil, fmt.Errorf("%w: nil analysis at index %d", ErrInvalidInput, i)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	bounds := make([]Bound, len(analyses))
	for i, analyze := range analyses {
		i, analyze := i, analyze
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := analyze()
			if err != nil {
				return fmt.Errorf("analysis %d: %w", i, err)
			}
			bounds[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bounds, nil
}

// SolveFixedPriorityTaskSet bounds the response time of every task in a
// fully preemptive fixed-priority task set, given in decreasing priority
// order (tasks[0] has the highest priority). The per-task analyses are
// independent and run in parallel.
func SolveFixedPriorityTaskSet(ctx context.Context, tasks []RBF, cfg SolverConfig) ([]Bound, error) {
	analyses := make([]Analysis, len(tasks))
	for i := range tasks {
		i := i
		interference := make([]WorkloadDemand, i)
		for j := 0; j < i; j++ {
			interference[j] = tasks[j]
		}
		analyses[i] = func() (Bound, error) {
			return FixedPriorityPreemptive(tasks[i], interference, cfg)
		}
	}
	return SolveAll(ctx, analyses)
}

// SolveEDFTaskSet bounds the response time of every task in a fully
// preemptive EDF task set. The per-task analyses are independent and run in
// parallel.
func SolveEDFTaskSet(ctx context.Context, tasks []EDFTask, cfg SolverConfig) ([]Bound, error) {
	analyses := make([]Analysis, len(tasks))
	for i := range tasks {
		i := i
		others := make([]EDFTask, 0, len(tasks)-1)
		others = append(others, tasks[:i]...)
		others = append(others, tasks[i+1:]...)
		analyses[i] = func() (Bound, error) {
			return EDFPreemptive(tasks[i], others, cfg)
		}
	}
	return SolveAll(ctx, analyses)
}
