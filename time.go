package rta

// Time is the discrete, exact time model used throughout the package.
//
// Every analysis quantity (job costs, cumulative demand, guaranteed supply,
// window lengths, offsets, and response-time bounds) is a Time value.
// Integer arithmetic keeps every bound exact: a response-time bound must
// never be weakened by rounding, so floating point is absent from all bound
// computations.
//
// Time values fed into the solvers must be non-negative; negative inputs are
// rejected with ErrInvalidInput before any iteration begins.
type Time int64

// divideCeil computes ⌈a/b⌉ for non-negative a and positive b.
func divideCeil(a, b Time) Time {
	return a/b + boolToTime(a%b > 0)
}

func boolToTime(b bool) Time {
	if b {
		return 1
	}
	return 0
}

func minTime(a, b Time) Time {
	if a < b {
		return a
	}
	return b
}

func maxTime(a, b Time) Time {
	if a > b {
		return a
	}
	return b
}

// saturatingSub returns a-b, clamped at zero.
func saturatingSub(a, b Time) Time {
	if a < b {
		return 0
	}
	return a - b
}
