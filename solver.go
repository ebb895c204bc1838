package rta

import "fmt"

// DefaultCeiling is the iteration ceiling used by DefaultSolverConfig.
//
// The ceiling is a circuit breaker, not a tuning knob: it exists so that a
// misbehaving (non-monotonic) caller-supplied function turns into a
// detectable Inconclusive result instead of an infinite loop or a silently
// wrong bound. One million time units is far beyond any hyperperiod that
// published response-time analyses evaluate; callers analyzing longer
// horizons pass their own ceiling.
const DefaultCeiling Time = 1_000_000

// InterferenceFunc bounds the competing work that can delay the job of
// interest within a candidate window of the given length.
//
// Implementations must be monotonically non-decreasing in the window length;
// the fixed-point search relies on this precondition for convergence. A
// violation can never produce a false finite bound (the iterated candidate
// sequence cannot decrease below a true fixed point), but it may surface as a
// ceiling breach.
type InterferenceFunc func(delta Time) Time

// DemandFunc bounds the cumulative worst-case processing demand of a workload
// over an interval of the given length. Must satisfy demand(0) = 0 and be
// monotonically non-decreasing.
type DemandFunc func(delta Time) Time

// SupplyFunc bounds from below the processing capacity guaranteed over an
// interval of the given length. Must satisfy supply(0) = 0, be monotonically
// non-decreasing, and never exceed the interval length (a resource cannot
// provide more than one time unit of service per time unit).
type SupplyFunc func(delta Time) Time

// SolverConfig carries the per-call safety limits of a fixed-point search.
// All configuration is explicit and per call; the package holds no global
// state, so independent analyses can run fully in parallel.
type SolverConfig struct {
	// Deadline, when positive, lets the search prove unschedulability: the
	// moment a response-time candidate exceeds the deadline, the deadline is
	// provably missed and the search returns Unbounded. Zero (or negative)
	// means no deadline is supplied.
	Deadline Time

	// Ceiling caps the candidate values explored by the search. When the
	// search exceeds the ceiling with no deadline supplied, it returns
	// Inconclusive(CeilingExceeded) rather than looping forever.
	Ceiling Time
}

// DefaultSolverConfig returns a config with no deadline and the default
// iteration ceiling.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{Ceiling: DefaultCeiling}
}

func (cfg SolverConfig) validate() error {
	if cfg.Ceiling <= 0 {
		return fmt.Errorf("%w: ceiling must be positive (got %d)", ErrInvalidInput, cfg.Ceiling)
	}
	return nil
}

// SolveResponseTime finds the least response time R satisfying
//
//	R = cost + interference(R)
//
// by iterating R₀ = cost, Rₖ₊₁ = cost + interference(Rₖ) until a fixed point
// is reached. Because interference is monotonic and cost fixed, the candidate
// sequence is non-decreasing: it either converges to the least fixed point or
// exceeds any finite limit in finitely many steps.
//
// Outcomes:
//   - Bounded(R) once Rₖ₊₁ = Rₖ,
//   - Unbounded once a candidate exceeds a supplied positive deadline
//     (the deadline is provably missed),
//   - Inconclusive(CeilingExceeded) once a candidate exceeds cfg.Ceiling and
//     no deadline was supplied.
//
// Malformed inputs (negative cost, nil or negative-valued interference,
// non-positive ceiling) are rejected with ErrInvalidInput before iterating.
func SolveResponseTime(cost Time, interference InterferenceFunc, cfg SolverConfig) (Bound, error) {
	if err := cfg.validate(); err != nil {
		return Bound{}, err
	}
	if cost < 0 {
		return Bound{}, fmt.Errorf("%w: cost must be non-negative (got %d)", ErrInvalidInput, cost)
	}
	if interference == nil {
		return Bound{}, fmt.Errorf("%w: nil interference function", ErrInvalidInput)
	}

	assumed := cost
	for {
		contention := interference(assumed)
		if contention < 0 {
			return Bound{}, fmt.Errorf("%w: interference(%d) = %d is negative", ErrInvalidInput, assumed, contention)
		}
		next := cost + contention
		if next <= assumed {
			// Converged. Under the monotonicity precondition next == assumed;
			// the smaller value is kept if a misbehaving interference
			// function ever yields next < assumed.
			return Bounded(next), nil
		}
		if cfg.Deadline > 0 && next > cfg.Deadline {
			return Unbounded(), nil
		}
		if cfg.Deadline <= 0 && next > cfg.Ceiling {
			return Inconclusive(CeilingExceeded), nil
		}
		assumed = next
	}
}

// SolveResponseTimeUnder is SolveResponseTime generalized to a shared or
// reserved resource: instead of assuming a dedicated processor, each
// candidate is mapped through the supply model, so the result accounts for
// replenishment gaps and blackout intervals of the resource.
//
// With the Dedicated supply this degenerates to SolveResponseTime.
func SolveResponseTimeUnder(supply SupplyBound, cost Time, interference InterferenceFunc, cfg SolverConfig) (Bound, error) {
	if err := cfg.validate(); err != nil {
		return Bound{}, err
	}
	if supply == nil {
		return Bound{}, fmt.Errorf("%w: nil supply model", ErrInvalidInput)
	}
	if cost < 0 {
		return Bound{}, fmt.Errorf("%w: cost must be non-negative (got %d)", ErrInvalidInput, cost)
	}
	if interference == nil {
		return Bound{}, fmt.Errorf("%w: nil interference function", ErrInvalidInput)
	}

	assumed := cost
	for {
		contention := interference(assumed)
		if contention < 0 {
			return Bound{}, fmt.Errorf("%w: interference(%d) = %d is negative", ErrInvalidInput, assumed, contention)
		}
		next := supply.ServiceTime(cost + contention)
		if next <= assumed {
			return Bounded(next), nil
		}
		if cfg.Deadline > 0 && next > cfg.Deadline {
			return Unbounded(), nil
		}
		if cfg.Deadline <= 0 && next > cfg.Ceiling {
			return Inconclusive(CeilingExceeded), nil
		}
		assumed = next
	}
}

// SolveBusyWindow finds the least window length L at which the guaranteed
// supply covers the cumulative demand, i.e. supply(L) ≥ demand(L). The busy
// window bounds the interval during which the resource is continuously
// occupied and underlies the response-time analyses of policies, such as
// FIFO, for which priority ordering alone is insufficient.
//
// Returns Unbounded when the window exceeds cfg.Ceiling: long-run demand
// exceeds long-run supply (utilization ≥ 1 relative to the analyzed
// resource). The Deadline field of cfg is ignored; a busy window has no
// deadline to falsify against.
func SolveBusyWindow(demand DemandFunc, supply SupplyFunc, cfg SolverConfig) (Bound, error) {
	if err := cfg.validate(); err != nil {
		return Bound{}, err
	}
	if demand == nil {
		return Bound{}, fmt.Errorf("%w: nil demand function", ErrInvalidInput)
	}
	if supply == nil {
		return Bound{}, fmt.Errorf("%w: nil supply function", ErrInvalidInput)
	}

	first := demand(1)
	if first < 0 {
		return Bound{}, fmt.Errorf("%w: demand(1) = %d is negative", ErrInvalidInput, first)
	}
	if first == 0 {
		// No work pending at the start of the window: it closes immediately.
		return Bounded(0), nil
	}

	window := first
	for window <= cfg.Ceiling {
		need := demand(window)
		if need < 0 {
			return Bound{}, fmt.Errorf("%w: demand(%d) = %d is negative", ErrInvalidInput, window, need)
		}

		// Least candidate window whose guaranteed supply covers the demand,
		// found by jumping ahead by the amount of service still missing.
		candidate := need
		for {
			got := supply(candidate)
			if got < 0 {
				return Bound{}, fmt.Errorf("%w: supply(%d) = %d is negative", ErrInvalidInput, candidate, got)
			}
			if got >= need {
				break
			}
			if candidate > cfg.Ceiling {
				return Unbounded(), nil
			}
			candidate += need - got
		}

		if candidate <= window {
			return Bounded(window), nil
		}
		window = candidate
	}
	return Unbounded(), nil
}

// fixedPointSearch is the iterative least-fixed-point search shared by the
// policy analyses: it finds the least delta with
//
//	delta = serviceTime(rhs(delta))
//
// for a monotonic right-hand side. Reports !ok when no fixed point exists at
// or below the ceiling.
func fixedPointSearch(supply SupplyBound, ceiling Time, rhs func(Time) Time) (Time, bool) {
	assumed := Time(1)
	for assumed <= ceiling {
		bound := supply.ServiceTime(rhs(assumed))
		if bound <= assumed {
			return bound, true
		}
		assumed = bound
	}
	return 0, false
}
