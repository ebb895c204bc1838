package rta

import (
	"errors"
	"testing"
)

func TestFIFO_SharedBound(t *testing.T) {
	cfg := SolverConfig{Ceiling: 1000}
	tasks := sporadicTasks(t, [][2]Time{{79, 120}, {11, 34}, {1, 190}})

	total := make(AggregateDemand, len(tasks))
	for i := range tasks {
		total[i] = tasks[i]
	}

	b, err := FIFO(total, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsBounded() || b.Value != 91 {
		t.Errorf("Expected Bounded(91), got %v", b)
	}
}

func TestFIFO_Overload(t *testing.T) {
	cfg := SolverConfig{Ceiling: 1000}
	tasks := sporadicTasks(t, [][2]Time{{2, 4}, {2, 8}, {4, 12}})

	total := make(AggregateDemand, len(tasks))
	for i := range tasks {
		total[i] = tasks[i]
	}

	b, err := FIFO(total, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsUnbounded() {
		t.Errorf("Expected Unbounded for utilization above capacity, got %v", b)
	}
}

func TestFIFO_SingleTask(t *testing.T) {
	// Alone in the queue, a task waits only for its own job.
	w := RBF{Arrivals: SporadicArrivals{MinInterarrival: 100}, Costs: ScalarCost{WCET: 7}}
	b, err := FIFO(w, DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsBounded() || b.Value != 7 {
		t.Errorf("Expected Bounded(7), got %v", b)
	}
}

func TestFIFO_RejectsMalformedInput(t *testing.T) {
	if _, err := FIFO(nil, DefaultSolverConfig()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil demand, got %v", err)
	}
	w := RBF{Arrivals: PeriodicArrivals{Period: 10}, Costs: ScalarCost{WCET: 1}}
	if _, err := FIFO(w, SolverConfig{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero ceiling, got %v", err)
	}
}
