package rta

import (
	"testing"
)

// AssertionConfig contains probe ranges for model-correctness assertions.
type AssertionConfig struct {
	// Horizon bounds the interval lengths probed exhaustively
	Horizon Time

	// MaxDemand bounds the demand values probed for supply inversion
	MaxDemand Time
}

// DefaultAssertionConfig returns probe ranges that exercise several
// periods/frames of typical models while keeping tests fast.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Horizon:   1000,
		MaxDemand: 500,
	}
}

// AssertVanishesBeforeZero verifies a curve is zero for all delta ≤ 0.
//
// Every demand, supply, and arrival curve in this package measures a
// half-open interval, so an empty (or negative) interval must contain
// nothing.
func AssertVanishesBeforeZero(t *testing.T, name string, f func(Time) Time) {
	t.Helper()

	for _, delta := range []Time{-100, -1, 0} {
		if got := f(delta); got != 0 {
			t.Errorf("%s(%d) = %d, want 0\n"+
				"Curves must vanish for empty intervals.", name, delta, got)
		}
	}

	t.Logf("✓ %s vanishes for delta ≤ 0", name)
}

// AssertMonotone verifies a curve never decreases as the interval grows.
//
// Monotonicity is the precondition every fixed-point search in this package
// relies on; a violation here explains almost any downstream divergence.
func AssertMonotone(t *testing.T, name string, f func(Time) Time, cfg AssertionConfig) {
	t.Helper()

	prev := f(0)
	for delta := Time(1); delta <= cfg.Horizon; delta++ {
		cur := f(delta)
		if cur < prev {
			t.Errorf("%s decreases: f(%d)=%d but f(%d)=%d\n"+
				"Fixed-point searches require monotone curves.",
				name, delta-1, prev, delta, cur)
		}
		prev = cur
	}

	t.Logf("✓ %s is monotone on [0, %d]", name, cfg.Horizon)
}

// AssertStepsMatchDemand verifies that Steps reports exactly the interval
// lengths at which Demand grows, by brute force up to the horizon.
//
// The analyses only evaluate demand at steps, so a missing step silently
// weakens a response-time bound.
func AssertStepsMatchDemand(t *testing.T, w WorkloadDemand, cfg AssertionConfig) {
	t.Helper()

	reported := make(map[Time]bool)
	prev := Time(0)
	for _, s := range w.Steps(cfg.Horizon) {
		if s <= prev {
			t.Errorf("Steps not strictly increasing: %d after %d", s, prev)
		}
		if s > cfg.Horizon {
			t.Errorf("Steps(%d) yielded out-of-range step %d", cfg.Horizon, s)
		}
		reported[s] = true
		prev = s
	}

	missing := 0
	spurious := 0
	prevDemand := w.Demand(0)
	for delta := Time(1); delta <= cfg.Horizon; delta++ {
		cur := w.Demand(delta)
		grows := cur > prevDemand
		if grows && !reported[delta] {
			missing++
			if missing <= 3 {
				t.Errorf("Demand grows at delta=%d (%d → %d) but Steps misses it",
					delta, prevDemand, cur)
			}
		}
		if !grows && reported[delta] {
			spurious++
			if spurious <= 3 {
				t.Errorf("Steps reports delta=%d but Demand stays at %d", delta, cur)
			}
		}
		prevDemand = cur
	}
	if missing > 3 || spurious > 3 {
		t.Errorf("...and %d more missing / %d more spurious steps", missing-3, spurious-3)
	}

	t.Logf("✓ Steps match demand growth on [1, %d] (%d steps)", cfg.Horizon, len(reported))
}

// AssertSupplyInverts verifies that ServiceTime is the exact pseudo-inverse
// of Supply: the reported interval provides the demanded service, and no
// shorter interval does.
func AssertSupplyInverts(t *testing.T, s SupplyBound, cfg AssertionConfig) {
	t.Helper()

	for x := Time(1); x <= cfg.MaxDemand; x++ {
		st := s.ServiceTime(x)
		if got := s.Supply(st); got < x {
			t.Errorf("Supply(ServiceTime(%d)=%d) = %d, want ≥ %d\n"+
				"ServiceTime promises more than Supply delivers.", x, st, got, x)
		}
		if st > 0 {
			if got := s.Supply(st - 1); got >= x {
				t.Errorf("Supply(%d) = %d already covers demand %d, but ServiceTime(%d) = %d\n"+
					"ServiceTime is not the least such interval.", st-1, got, x, x, st)
			}
		}
	}

	for delta := Time(0); delta <= cfg.Horizon; delta++ {
		if got := s.Supply(delta); got > delta {
			t.Errorf("Supply(%d) = %d exceeds the interval length\n"+
				"A resource cannot serve more than one unit per time unit.", delta, got)
		}
	}

	t.Logf("✓ ServiceTime exactly inverts Supply for demand ≤ %d", cfg.MaxDemand)
}

// AssertSoundFixedPoint verifies that a Bounded result is a genuine fixed
// point of its recurrence: recomputing cost + interference at the reported
// value reproduces it.
func AssertSoundFixedPoint(t *testing.T, cost Time, interference InterferenceFunc, b Bound) {
	t.Helper()

	if !b.IsBounded() {
		t.Fatalf("expected a bounded result, got %v", b)
	}
	if rhs := cost + interference(b.Value); rhs != b.Value {
		t.Errorf("reported bound %d is not a fixed point: cost + interference(%d) = %d",
			b.Value, b.Value, rhs)
	}

	t.Logf("✓ Sound fixed point: %d = cost + interference(%d)", b.Value, b.Value)
}

// AssertDemandModel runs the full battery of demand-model checks.
func AssertDemandModel(t *testing.T, name string, w WorkloadDemand, cfg AssertionConfig) {
	t.Helper()

	t.Run(name+"/VanishesBeforeZero", func(t *testing.T) {
		AssertVanishesBeforeZero(t, name+".Demand", w.Demand)
	})

	t.Run(name+"/Monotone", func(t *testing.T) {
		AssertMonotone(t, name+".Demand", w.Demand, cfg)
	})

	t.Run(name+"/Steps", func(t *testing.T) {
		AssertStepsMatchDemand(t, w, cfg)
	})
}

// AssertSupplyModel runs the full battery of supply-model checks.
func AssertSupplyModel(t *testing.T, name string, s SupplyBound, cfg AssertionConfig) {
	t.Helper()

	t.Run(name+"/VanishesBeforeZero", func(t *testing.T) {
		AssertVanishesBeforeZero(t, name+".Supply", s.Supply)
	})

	t.Run(name+"/Monotone", func(t *testing.T) {
		AssertMonotone(t, name+".Supply", s.Supply, cfg)
	})

	t.Run(name+"/Inverts", func(t *testing.T) {
		AssertSupplyInverts(t, s, cfg)
	})
}
