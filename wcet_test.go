package rta

import (
	"errors"
	"testing"
)

func TestScalarCost(t *testing.T) {
	c := ScalarCost{WCET: 10}

	if got := c.CostOfJobs(0); got != 0 {
		t.Errorf("CostOfJobs(0) = %d, want 0", got)
	}
	if got := c.CostOfJobs(3); got != 30 {
		t.Errorf("CostOfJobs(3) = %d, want 30", got)
	}
	if got := c.CostOfJobs(10); got != 100 {
		t.Errorf("CostOfJobs(10) = %d, want 100", got)
	}
	if got := c.LeastCost(5); got != 10 {
		t.Errorf("LeastCost(5) = %d, want 10", got)
	}
	if got := c.LeastCost(0); got != 0 {
		t.Errorf("LeastCost(0) = %d, want 0", got)
	}
}

func TestMultiframeCost(t *testing.T) {
	c, err := NewMultiframeCost([]Time{3, 2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct {
		n    int
		want Time
	}{
		{0, 0}, {1, 3}, {2, 5}, {3, 6}, {4, 9}, {5, 11}, {6, 12},
	}
	for _, tc := range expected {
		if got := c.CostOfJobs(tc.n); got != tc.want {
			t.Errorf("CostOfJobs(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}

	if got := c.LeastCost(2); got != 2 {
		t.Errorf("LeastCost(2) = %d, want 2", got)
	}
	if got := c.LeastCost(3); got != 1 {
		t.Errorf("LeastCost(3) = %d, want 1", got)
	}
}

func TestMultiframeCost_WorstAlignment(t *testing.T) {
	// The worst-case sequence need not start at the first frame.
	c, err := NewMultiframeCost([]Time{1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.CostOfJobs(1); got != 3 {
		t.Errorf("CostOfJobs(1) = %d, want 3", got)
	}
	if got := c.CostOfJobs(2); got != 4 {
		t.Errorf("CostOfJobs(2) = %d, want 4", got)
	}
	if got := c.CostOfJobs(3); got != 7 {
		t.Errorf("CostOfJobs(3) = %d, want 7", got)
	}
}

func TestCostCurve_FromPrefix(t *testing.T) {
	c, err := NewCostCurve([]Time{15, 25, 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct {
		n    int
		want Time
	}{
		{0, 0}, {1, 15}, {2, 25}, {3, 30}, {4, 45}, {5, 55}, {6, 60},
	}
	for _, tc := range expected {
		if got := c.CostOfJobs(tc.n); got != tc.want {
			t.Errorf("CostOfJobs(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}

	// Marginal costs are 15, 10, 5 repeating, so the cheapest job is 5.
	if got := c.LeastCost(3); got != 5 {
		t.Errorf("LeastCost(3) = %d, want 5", got)
	}
	if got := c.LeastCost(2); got != 10 {
		t.Errorf("LeastCost(2) = %d, want 10", got)
	}
}

func TestCostCurveFromTrace(t *testing.T) {
	trace := []Time{1, 1, 3, 1, 2, 2, 1, 3, 1, 0, 0, 3, 2, 0, 1, 1}
	c, err := CostCurveFromTrace(trace, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct {
		n    int
		want Time
	}{
		{0, 0}, {1, 3}, {2, 5}, {3, 6}, {4, 9}, {5, 11}, {6, 12},
	}
	for _, tc := range expected {
		if got := c.CostOfJobs(tc.n); got != tc.want {
			t.Errorf("CostOfJobs(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestCostCurve_Extrapolation(t *testing.T) {
	c, err := NewCostCurve([]Time{100, 101, 102, 103, 104, 105, 205, 206})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raw prefix repetition is pessimistic for 9 jobs: 206 + 100.
	if got := c.CostOfJobs(9); got != 306 {
		t.Errorf("CostOfJobs(9) = %d, want 306", got)
	}

	// Subadditive extrapolation finds the cheaper split 102 + 105.
	c.Extrapolate(10)
	if got := c.CostOfJobs(9); got != 207 {
		t.Errorf("CostOfJobs(9) after extrapolation = %d, want 207", got)
	}
}

func TestExtrapolatingCostCurve(t *testing.T) {
	prefix, err := NewCostCurve([]Time{145, 149, 151, 153, 157, 160, 163, 166, 168, 171, 174})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := ExtrapolatingCostCurve{Curve: prefix}

	expected := []struct {
		n    int
		want Time
	}{
		{11, 174}, {12, 319}, {4, 153}, {9, 168}, {13, 153 + 168},
	}
	for _, tc := range expected {
		if got := c.CostOfJobs(tc.n); got != tc.want {
			t.Errorf("CostOfJobs(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestCostConstructors_RejectMalformedInput(t *testing.T) {
	if _, err := NewScalarCost(-1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative WCET, got %v", err)
	}
	if _, err := NewMultiframeCost(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty frame vector, got %v", err)
	}
	if _, err := NewMultiframeCost([]Time{2, -1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative frame cost, got %v", err)
	}
	if _, err := NewCostCurve(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty cost prefix, got %v", err)
	}
}
