package rta

import (
	"errors"
	"testing"
)

func edfNPTasks(params [][2]Time, deadlines []Time) []EDFNPTask {
	tasks := make([]EDFNPTask, len(params))
	for i, p := range params {
		tasks[i] = EDFNPTask{
			WCET:     p[0],
			Arrivals: SporadicArrivals{MinInterarrival: p[1]},
			Deadline: deadlines[i],
		}
	}
	return tasks
}

func edfTasks(params [][2]Time, deadlines []Time) []EDFTask {
	tasks := make([]EDFTask, len(params))
	for i, p := range params {
		tasks[i] = EDFTask{
			Demand: RBF{
				Arrivals: SporadicArrivals{MinInterarrival: p[1]},
				Costs:    ScalarCost{WCET: p[0]},
			},
			Deadline: deadlines[i],
		}
	}
	return tasks
}

func othersNP(tasks []EDFNPTask, i int) []EDFNPTask {
	others := make([]EDFNPTask, 0, len(tasks)-1)
	others = append(others, tasks[:i]...)
	others = append(others, tasks[i+1:]...)
	return others
}

func othersEDF(tasks []EDFTask, i int) []EDFTask {
	others := make([]EDFTask, 0, len(tasks)-1)
	others = append(others, tasks[:i]...)
	others = append(others, tasks[i+1:]...)
	return others
}

func TestEDFNonPreemptive_SameDeadlines(t *testing.T) {
	cfg := SolverConfig{Ceiling: 1000}
	tasks := edfNPTasks([][2]Time{{79, 120}, {11, 34}, {1, 190}}, []Time{100, 100, 100})

	// With identical deadlines NP-EDF degenerates to FIFO, so every task
	// shares the same bound.
	expected := []Time{91, 91, 91}
	for i, want := range expected {
		b, err := EDFNonPreemptive(tasks[i], othersNP(tasks, i), cfg)
		if err != nil {
			t.Fatalf("task %d: unexpected error: %v", i, err)
		}
		if !b.IsBounded() || b.Value != want {
			t.Errorf("task %d: expected Bounded(%d), got %v", i, want, b)
		}
	}
}

func TestEDFNonPreemptive_DifferentDeadlines(t *testing.T) {
	cfg := SolverConfig{Ceiling: 1000}
	tasks := edfNPTasks([][2]Time{{79, 120}, {11, 34}, {1, 190}}, []Time{50, 100, 120})

	expected := []Time{89, 90, 121}
	for i, want := range expected {
		b, err := EDFNonPreemptive(tasks[i], othersNP(tasks, i), cfg)
		if err != nil {
			t.Fatalf("task %d: unexpected error: %v", i, err)
		}
		if !b.IsBounded() || b.Value != want {
			t.Errorf("task %d: expected Bounded(%d), got %v", i, want, b)
		}
	}
}

func TestEDFNonPreemptive_TightBlocking(t *testing.T) {
	cfg := SolverConfig{Ceiling: 1000}
	tasks := edfNPTasks([][2]Time{{5, 20}, {10, 20}}, []Time{29, 30})

	// Priority inversion only counts jobs whose absolute deadline is later,
	// which the offset-dependent blocking bound exploits.
	expected := []Time{14, 15}
	for i, want := range expected {
		b, err := EDFNonPreemptive(tasks[i], othersNP(tasks, i), cfg)
		if err != nil {
			t.Fatalf("task %d: unexpected error: %v", i, err)
		}
		if !b.IsBounded() || b.Value != want {
			t.Errorf("task %d: expected Bounded(%d), got %v", i, want, b)
		}
	}
}

func TestEDFPreemptive_DifferentDeadlines(t *testing.T) {
	cfg := SolverConfig{Ceiling: 100000}
	tasks := edfTasks([][2]Time{{79, 120}, {11, 34}, {1, 190}}, []Time{50, 100, 120})

	expected := []Time{79, 101, 121}
	for i, want := range expected {
		b, err := EDFPreemptive(tasks[i], othersEDF(tasks, i), cfg)
		if err != nil {
			t.Fatalf("task %d: unexpected error: %v", i, err)
		}
		if !b.IsBounded() || b.Value != want {
			t.Errorf("task %d: expected Bounded(%d), got %v", i, want, b)
		}
	}
}

func TestEDFPreemptive_FiveTasks(t *testing.T) {
	cfg := SolverConfig{Ceiling: 10000}
	tasks := edfTasks(
		[][2]Time{{1, 5}, {100, 1000}, {2, 10}, {5, 20}, {10, 50}},
		[]Time{5, 1000, 10, 45, 50},
	)

	expected := []Time{1, 694, 3, 22, 27}
	for i, want := range expected {
		b, err := EDFPreemptive(tasks[i], othersEDF(tasks, i), cfg)
		if err != nil {
			t.Fatalf("task %d: unexpected error: %v", i, err)
		}
		if !b.IsBounded() || b.Value != want {
			t.Errorf("task %d: expected Bounded(%d), got %v", i, want, b)
		}
	}
}

func TestEDFPreemptive_Overload(t *testing.T) {
	cfg := SolverConfig{Ceiling: 10000}
	tasks := edfTasks([][2]Time{{3, 4}, {3, 8}}, []Time{4, 8})

	for i := range tasks {
		b, err := EDFPreemptive(tasks[i], othersEDF(tasks, i), cfg)
		if err != nil {
			t.Fatalf("task %d: unexpected error: %v", i, err)
		}
		if !b.IsUnbounded() {
			t.Errorf("task %d: expected Unbounded for utilization above capacity, got %v", i, b)
		}
	}
}

func TestEDF_RejectsMalformedInput(t *testing.T) {
	cfg := DefaultSolverConfig()
	ok := edfTasks([][2]Time{{1, 10}}, []Time{10})[0]

	if _, err := EDFPreemptive(EDFTask{Deadline: 5}, nil, cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil demand, got %v", err)
	}
	if _, err := EDFPreemptive(EDFTask{Demand: ok.Demand, Deadline: -1}, nil, cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative deadline, got %v", err)
	}
	if _, err := EDFPreemptive(ok, []EDFTask{{Deadline: 3}}, cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil demand in interfering task, got %v", err)
	}
	if _, err := EDFNonPreemptive(EDFNPTask{WCET: 1, Deadline: 5}, nil, cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil arrival bound, got %v", err)
	}
	np := EDFNPTask{WCET: -1, Arrivals: PeriodicArrivals{Period: 10}, Deadline: 5}
	if _, err := EDFNonPreemptive(np, nil, cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative WCET, got %v", err)
	}
	// A task that demands nothing has no first time unit to contend for.
	np.WCET = 0
	if _, err := EDFNonPreemptive(np, nil, cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero WCET, got %v", err)
	}
}
