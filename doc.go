// Package rta provides worst-case response-time analysis for real-time
// workloads on uniprocessors and resource reservations.
//
// # Overview
//
// rta answers the question "how late can a job finish?" with a mathematically
// sound bound. Workloads are described by arrival bounds (how often jobs can
// be released) and cost models (how long jobs can run); processors are
// described by supply bounds (how much service is guaranteed). Fixed-point
// searches over these curves yield response-time bounds for concrete
// scheduling policies.
//
// All bound arithmetic is exact: curves map integer interval lengths to
// integer time, and no floating point enters any computed bound.
//
// # Architecture
//
// The package components:
//
//   - time.go, bound.go        - the discrete time model and the Bound result type
//   - arrival.go, arrivalcurve.go - arrival bounds: periodic, sporadic, curves, traces
//   - wcet.go                  - cost models: scalar, multiframe, cost curves
//   - demand.go                - request-bound functions combining the two
//   - supply.go                - supply bounds: dedicated, periodic, constrained reservations
//   - solver.go                - fixed-point and busy-window searches
//   - fixedpriority.go, fifo.go, edf.go - per-policy response-time analyses
//   - parallel.go              - concurrent batch analysis of task sets
//   - assertions.go            - test helpers for model correctness properties
//
// # Quick Start
//
// Bound the response time of a periodic task behind two higher-priority
// tasks under preemptive fixed-priority scheduling:
//
//	task := rta.RBF{
//	    Arrivals: rta.PeriodicArrivals{Period: 100},
//	    Costs:    rta.ScalarCost{WCET: 20},
//	}
//	hp1 := rta.RBF{Arrivals: rta.PeriodicArrivals{Period: 25}, Costs: rta.ScalarCost{WCET: 5}}
//	hp2 := rta.RBF{Arrivals: rta.PeriodicArrivals{Period: 50}, Costs: rta.ScalarCost{WCET: 10}}
//
//	bound, err := rta.FixedPriorityPreemptive(task,
//	    []rta.WorkloadDemand{hp1, hp2}, rta.DefaultSolverConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	switch bound.Kind {
//	case rta.KindBounded:
//	    fmt.Printf("worst-case response time: %d\n", bound.Value)
//	case rta.KindUnbounded:
//	    fmt.Println("task set overloads the processor")
//	case rta.KindInconclusive:
//	    fmt.Printf("analysis gave up: %s\n", bound.Reason)
//	}
//
// # The Bound Taxonomy
//
// Every analysis returns one of three outcomes:
//
//   - Bounded(R):    R is a proven worst-case response time.
//   - Unbounded:     the workload provably overloads the resource
//     (or a supplied deadline is provably missed).
//   - Inconclusive:  the search exceeded its ceiling without an answer;
//     the system may or may not be schedulable.
//
// Malformed inputs are a fourth, separate channel: they surface as an
// ErrInvalidInput error, never as an Inconclusive result.
//
// # Supply Models
//
// Analyses against a shared resource replace the dedicated processor with a
// reservation model:
//
//	res, err := rta.NewPeriodicSupply(5, 3) // 3 units of service every 5
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bound, err := rta.SolveResponseTimeUnder(res, cost, interference,
//	    rta.DefaultSolverConfig())
//
// Supply and ServiceTime are exact inverses: ServiceTime(x) is the least
// interval whose guaranteed supply reaches x.
//
// # Bursty Arrivals
//
// Arbitrary arrival processes are captured by delta-min curves, either given
// directly, inferred from another model, or mined from an observed trace:
//
//	curve, err := rta.ArrivalCurveFromTrace(arrivalTimes, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bursty := rta.ExtrapolatingCurve{Curve: curve}
//
//	task := rta.RBF{Arrivals: bursty, Costs: rta.ScalarCost{WCET: 7}}
//
// # Batch Analysis
//
// Whole task sets are analyzed concurrently; per-task analyses are
// independent and embarrassingly parallel:
//
//	bounds, err := rta.SolveFixedPriorityTaskSet(ctx, tasks, rta.DefaultSolverConfig())
//
// # Testing
//
// Use assertions to validate custom workload or supply models:
//
//	func TestMyModel(t *testing.T) {
//	    cfg := rta.DefaultAssertionConfig()
//
//	    // Demand vanishes at zero, grows monotonically, steps where it grows
//	    rta.AssertDemandModel(t, "MyModel", myModel, cfg)
//
//	    // ServiceTime exactly inverts Supply
//	    rta.AssertSupplyModel(t, "MyReservation", myReservation, cfg)
//	}
//
// # See Also
//
//   - examples/taskset - end-to-end task-set analysis with structured logging
package rta
