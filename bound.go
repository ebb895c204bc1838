package rta

import (
	"errors"
	"fmt"
)

// BoundKind distinguishes the three possible outcomes of an analysis.
type BoundKind string

const (
	// KindBounded means a finite response-time bound was proven.
	KindBounded BoundKind = "BOUNDED"
	// KindUnbounded means the analysis proved divergence: demand exceeds
	// supply in the long run, or a supplied deadline is provably missed.
	// This is a valid, actionable outcome: the workload is unschedulable.
	KindUnbounded BoundKind = "UNBOUNDED"
	// KindInconclusive means the search hit its safety ceiling without a
	// deadline to falsify against. The true bound may be very large, or a
	// caller-supplied function violated its monotonicity precondition.
	KindInconclusive BoundKind = "INCONCLUSIVE"
)

// InconclusiveReason explains why an analysis gave up.
type InconclusiveReason string

// CeilingExceeded is reported when the iteration ceiling was reached with no
// deadline supplied. It must never be conflated with KindUnbounded: treating
// "not proven" as "proven unsafe" (or vice versa) would corrupt a
// schedulability decision.
const CeilingExceeded InconclusiveReason = "CEILING_EXCEEDED"

// Bound is the result of a single solver or analysis call.
//
// A Bound is immutable once produced and is comparable: two calls with
// identical inputs yield identical Bound values.
type Bound struct {
	Kind   BoundKind
	Value  Time               // proven bound; meaningful only when Kind == KindBounded
	Reason InconclusiveReason // set only when Kind == KindInconclusive
}

// Bounded wraps a proven finite response-time bound.
func Bounded(value Time) Bound {
	return Bound{Kind: KindBounded, Value: value}
}

// Unbounded reports proven unschedulability.
func Unbounded() Bound {
	return Bound{Kind: KindUnbounded}
}

// Inconclusive reports an analysis that hit a safety ceiling.
func Inconclusive(reason InconclusiveReason) Bound {
	return Bound{Kind: KindInconclusive, Reason: reason}
}

// IsBounded reports whether a finite bound was proven.
func (b Bound) IsBounded() bool { return b.Kind == KindBounded }

// IsUnbounded reports whether divergence was proven.
func (b Bound) IsUnbounded() bool { return b.Kind == KindUnbounded }

// IsInconclusive reports whether the analysis gave up at its ceiling.
func (b Bound) IsInconclusive() bool { return b.Kind == KindInconclusive }

func (b Bound) String() string {
	switch b.Kind {
	case KindBounded:
		return fmt.Sprintf("Bounded(%d)", b.Value)
	case KindUnbounded:
		return "Unbounded"
	case KindInconclusive:
		return fmt.Sprintf("Inconclusive(%s)", b.Reason)
	default:
		return fmt.Sprintf("Bound(%q)", string(b.Kind))
	}
}

// ErrInvalidInput is returned when a solver is invoked with malformed inputs:
// negative costs, negative time quantities, a non-positive ceiling, or a nil
// demand/supply/interference function. Invalid inputs are rejected before any
// iteration begins.
var ErrInvalidInput = errors.New("invalid analysis input")
