package rta

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestSolveAll_CollectsInOrder(t *testing.T) {
	analyses := []Analysis{
		func() (Bound, error) { return Bounded(3), nil },
		func() (Bound, error) { return Unbounded(), nil },
		func() (Bound, error) { return Inconclusive(CeilingExceeded), nil },
	}

	bounds, err := SolveAll(context.Background(), analyses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bounds) != 3 {
		t.Fatalf("Expected 3 bounds, got %d", len(bounds))
	}
	if !bounds[0].IsBounded() || bounds[0].Value != 3 {
		t.Errorf("bounds[0] = %v, want Bounded(3)", bounds[0])
	}
	if !bounds[1].IsUnbounded() {
		t.Errorf("bounds[1] = %v, want Unbounded", bounds[1])
	}
	if !bounds[2].IsInconclusive() {
		t.Errorf("bounds[2] = %v, want Inconclusive", bounds[2])
	}
}

func TestSolveAll_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	analyses := []Analysis{
		func() (Bound, error) { return Bounded(1), nil },
		func() (Bound, error) { return Bound{}, boom },
	}

	if _, err := SolveAll(context.Background(), analyses); !errors.Is(err, boom) {
		t.Errorf("Expected the analysis error to propagate, got %v", err)
	}
}

func TestSolveAll_RejectsNilAnalysis(t *testing.T) {
	var started atomic.Int32
	record := func() (Bound, error) {
		started.Add(1)
		return Bounded(1), nil
	}
	analyses := []Analysis{record, record, record, nil}

	if _, err := SolveAll(context.Background(), analyses); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil analysis, got %v", err)
	}
	// Validation rejects the batch up front; nothing may have run.
	if n := started.Load(); n != 0 {
		t.Errorf("%d analyses ran despite a nil entry in the batch", n)
	}
}

func TestSolveAll_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyses := make([]Analysis, 64)
	for i := range analyses {
		analyses[i] = func() (Bound, error) { return Bounded(1), nil }
	}

	// With the context already cancelled at least one goroutine must
	// observe it before running its analysis.
	if _, err := SolveAll(ctx, analyses); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolveFixedPriorityTaskSet_MatchesSequential(t *testing.T) {
	cfg := SolverConfig{Ceiling: 200000}
	tasks := sporadicTasks(t, [][2]Time{
		{5995, 43000}, {2497, 44000}, {18376, 52000}, {7724, 55000},
	})

	bounds, err := SolveFixedPriorityTaskSet(context.Background(), tasks, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range tasks {
		want, err := FixedPriorityPreemptive(tasks[i], higherPriority(tasks, i), cfg)
		if err != nil {
			t.Fatalf("task %d: unexpected error: %v", i, err)
		}
		if bounds[i] != want {
			t.Errorf("task %d: batch returned %v, sequential returned %v", i, bounds[i], want)
		}
	}
	t.Logf("✓ Batch bounds match the per-task analyses for %d tasks", len(tasks))
}

func TestSolveEDFTaskSet_MatchesSequential(t *testing.T) {
	cfg := SolverConfig{Ceiling: 100000}
	tasks := edfTasks([][2]Time{{79, 120}, {11, 34}, {1, 190}}, []Time{50, 100, 120})

	bounds, err := SolveEDFTaskSet(context.Background(), tasks, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Time{79, 101, 121}
	for i, want := range expected {
		if !bounds[i].IsBounded() || bounds[i].Value != want {
			t.Errorf("task %d: expected Bounded(%d), got %v", i, want, bounds[i])
		}
	}
}

func TestSolveFixedPriorityTaskSet_EmptySet(t *testing.T) {
	bounds, err := SolveFixedPriorityTaskSet(context.Background(), nil, DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bounds) != 0 {
		t.Errorf("Expected no bounds for an empty task set, got %v", bounds)
	}
}
