package rta

import "fmt"

// SupplyBound is a lower bound on the processing capacity a resource
// guarantees to the analyzed workload.
//
// Supply reports the least service provided in any interval of the given
// length; ServiceTime is its pseudo-inverse, the least interval length whose
// guaranteed supply reaches the given demand. The two must be consistent:
// for every demand x, Supply(ServiceTime(x)) ≥ x and, for x > 0,
// Supply(ServiceTime(x)-1) < x.
type SupplyBound interface {
	// Supply returns a lower bound on service provided in any interval of
	// length delta. Zero for delta ≤ 0; monotonically non-decreasing; never
	// exceeds delta.
	Supply(delta Time) Time

	// ServiceTime returns the least interval length guaranteed to provide
	// the given amount of service. Zero for demand ≤ 0.
	ServiceTime(demand Time) Time
}

// Dedicated is the supply of an exclusively owned, unit-speed resource: every
// time unit of the interval is available for service.
type Dedicated struct{}

// Supply of a dedicated resource is the interval itself.
func (Dedicated) Supply(delta Time) Time {
	if delta <= 0 {
		return 0
	}
	return delta
}

// ServiceTime of a dedicated resource is the demand itself.
func (Dedicated) ServiceTime(demand Time) Time {
	if demand <= 0 {
		return 0
	}
	return demand
}

// PeriodicSupply models a periodic resource reservation that guarantees
// Budget units of service in every Period, with no constraint on where
// within the period the service is placed (Shin & Lee's periodic resource
// model). The bound therefore assumes the worst-case placement: service at
// the very start of one period, then at the very end of the next.
type PeriodicSupply struct {
	Period Time
	Budget Time
}

// NewPeriodicSupply validates 0 < budget ≤ period and builds the model.
func NewPeriodicSupply(period, budget Time) (PeriodicSupply, error) {
	if period <= 0 {
		return PeriodicSupply{}, fmt.Errorf("%w: reservation period must be positive (got %d)", ErrInvalidInput, period)
	}
	if budget <= 0 || budget > period {
		return PeriodicSupply{}, fmt.Errorf("%w: reservation budget must satisfy 0 < budget ≤ period (got budget=%d period=%d)", ErrInvalidInput, budget, period)
	}
	return PeriodicSupply{Period: period, Budget: budget}, nil
}

// Supply returns the least service guaranteed in any interval of length
// delta. The worst case starts right after a period's budget was exhausted
// as early as possible, so the first Period-Budget units of the interval may
// pass without any service at all.
func (s PeriodicSupply) Supply(delta Time) Time {
	slack := s.Period - s.Budget
	if slack >= delta {
		return 0
	}
	// Whole periods fully contained in the interval after the initial gap,
	// each contributing a full budget.
	full := (delta - slack) / s.Period
	// Service accrued in the final partial period. The earliest it can start
	// is after one more blackout of length slack.
	x := 2*slack + s.Period*full
	var frac Time
	if x < delta {
		frac = delta - x
	}
	return s.Budget*full + frac
}

// ServiceTime returns the least interval length guaranteed to provide the
// given demand, inverting Supply exactly.
func (s PeriodicSupply) ServiceTime(demand Time) Time {
	if demand <= 0 {
		return 0
	}
	slack := s.Period - s.Budget
	full := demand / s.Budget
	fullBudget := s.Budget * full
	var frac Time
	if fullBudget < demand {
		frac = slack + demand - fullBudget
	}
	return slack + s.Period*full + frac
}

// ConstrainedSupply refines PeriodicSupply with a relative deadline by which
// each period's budget must have been provided. The tighter placement
// constraint yields a strictly better supply bound whenever Deadline is less
// than Period.
type ConstrainedSupply struct {
	Period   Time
	Budget   Time
	Deadline Time
}

// NewConstrainedSupply validates 0 < budget ≤ deadline ≤ period and builds
// the model.
func NewConstrainedSupply(period, budget, deadline Time) (ConstrainedSupply, error) {
	if period <= 0 {
		return ConstrainedSupply{}, fmt.Errorf("%w: reservation period must be positive (got %d)", ErrInvalidInput, period)
	}
	if budget <= 0 || budget > deadline {
		return ConstrainedSupply{}, fmt.Errorf("%w: reservation budget must satisfy 0 < budget ≤ deadline (got budget=%d deadline=%d)", ErrInvalidInput, budget, deadline)
	}
	if deadline > period {
		return ConstrainedSupply{}, fmt.Errorf("%w: reservation deadline must not exceed the period (got deadline=%d period=%d)", ErrInvalidInput, deadline, period)
	}
	return ConstrainedSupply{Period: period, Budget: budget, Deadline: deadline}, nil
}

// Supply returns the least service guaranteed in any interval of length
// delta. The worst case places one period's budget as early as its deadline
// allows and every later period's budget as late as its deadline allows.
func (s ConstrainedSupply) Supply(delta Time) Time {
	shift := s.Period - s.Budget
	if shift >= delta {
		return 0
	}
	full := (delta - shift) / s.Period
	x := shift + full*s.Period + s.Deadline - s.Budget
	var frac Time
	if x < delta {
		frac = minTime(s.Budget, delta-x)
	}
	return s.Budget*full + frac
}

// ServiceTime returns the least interval length guaranteed to provide the
// given demand, inverting Supply exactly.
func (s ConstrainedSupply) ServiceTime(demand Time) Time {
	if demand <= 0 {
		return 0
	}
	full := demand / s.Budget
	fullBudget := full * s.Budget
	var frac Time
	if fullBudget < demand {
		frac = demand - fullBudget + s.Period - s.Budget
	}
	return s.Deadline - s.Budget + full*s.Period + frac
}
