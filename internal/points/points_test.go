package points

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func TestDistribute_RoundingLaw(t *testing.T) {
	got, err := Distribute(10.0, []float64{0, 0, 0})
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	want := []float64{3.33, 3.33, 3.34}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("item %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !almostEqual(sum(got), 10.0) {
		t.Errorf("sum = %v, want exactly 10.00", sum(got))
	}
}

func TestDistribute_MixedPinnedAndUnassigned(t *testing.T) {
	got, err := Distribute(100.0, []float64{40, 0, 0, 0})
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	if !almostEqual(got[0], 40) {
		t.Errorf("pinned item changed: got %v", got[0])
	}
	for i := 1; i < 4; i++ {
		if !almostEqual(got[i], 20) {
			t.Errorf("item %d = %v, want 20", i, got[i])
		}
	}
}

func TestDistribute_Idempotent(t *testing.T) {
	in := []float64{50, 30, 20}
	got, err := Distribute(100.0, in)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("item %d changed from %v to %v", i, in[i], got[i])
		}
	}
}

func TestDistribute_DoesNotMutateInput(t *testing.T) {
	in := []float64{0, 0}
	if _, err := Distribute(10.0, in); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if in[0] != 0 || in[1] != 0 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestDistribute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		budget  float64
		values  []float64
		wantErr error
	}{
		{name: "empty item set", budget: 100, values: nil, wantErr: ErrEmptyItems},
		{name: "pinned exceed budget", budget: 100, values: []float64{60, 50}, wantErr: ErrBudgetExceeded},
		{name: "fully pinned mismatch", budget: 100, values: []float64{60, 30}, wantErr: ErrBudgetMismatch},
		{name: "single item over budget", budget: 10, values: []float64{10.5}, wantErr: ErrBudgetExceeded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distribute(tc.budget, tc.values)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Distribute = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestDistribute_CentShares covers budgets whose equal share is an exact
// cent amount. The share must come out as that amount even though the binary
// quotient sits just below it (0.58/2 is stored as 0.2899999...); truncating
// the raw bits would shave a cent off every non-final item.
func TestDistribute_CentShares(t *testing.T) {
	tests := []struct {
		budget float64
		n      int
		want   []float64
	}{
		{budget: 0.58, n: 2, want: []float64{0.29, 0.29}},
		{budget: 0.87, n: 3, want: []float64{0.29, 0.29, 0.29}},
		{budget: 1.16, n: 4, want: []float64{0.29, 0.29, 0.29, 0.29}},
		{budget: 0.07, n: 7, want: []float64{0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01}},
	}

	for _, tc := range tests {
		got, err := Distribute(tc.budget, make([]float64, tc.n))
		if err != nil {
			t.Fatalf("Distribute(%v, n=%d): %v", tc.budget, tc.n, err)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("Distribute(%v, n=%d) item %d = %v, want %v", tc.budget, tc.n, i, got[i], tc.want[i])
			}
		}
	}
}

func TestTruncate2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.58 / 2, want: 0.29}, // binary value 0.2899999...
		{in: 10.0 / 3, want: 3.33},
		{in: 0.1 + 0.2, want: 0.3},
		{in: 20, want: 20},
		{in: 16.666666666666668, want: 16.66},
	}

	for _, tc := range tests {
		if got := truncate2(tc.in); got != tc.want {
			t.Errorf("truncate2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.125, want: 0.13},
		{in: 2.675, want: 2.68},
		{in: 3.334, want: 3.33},
		{in: 16.68, want: 16.68},
		{in: 50, want: 50},
	}

	for _, tc := range tests {
		if got := round2(tc.in); got != tc.want {
			t.Errorf("round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDistribute_SingleUnassignedTakesAll(t *testing.T) {
	got, err := Distribute(100.0, []float64{0})
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if !almostEqual(got[0], 100) {
		t.Errorf("got %v, want 100", got[0])
	}
}

// TestDistribute_BudgetInvariant exercises random pinned subsets across a
// range of item counts: the distributed sum must always land within
// Tolerance of the budget and pinned values must be untouched.
func TestDistribute_BudgetInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	budget := 100.0

	for _, n := range []int{1, 2, 3, 7, 10, 50, 100, 500, 1000} {
		values := make([]float64, n)
		pinned := make(map[int]float64)
		for i := 0; i < n-1; i++ {
			if rng.Intn(2) == 0 {
				// Each pinned value stays below budget/n so the pinned sum
				// cannot exceed the budget.
				v := math.Floor(rng.Float64()*budget/float64(n)*100) / 100
				if v <= 0 {
					continue
				}
				values[i] = v
				pinned[i] = v
			}
		}
		// The last item is always unassigned so distribution has work to do.

		got, err := Distribute(budget, values)
		if err != nil {
			t.Fatalf("n=%d: Distribute: %v", n, err)
		}
		if math.Abs(sum(got)-budget) > Tolerance {
			t.Errorf("n=%d: sum = %v, want %v within %v", n, sum(got), budget, Tolerance)
		}
		for i, v := range pinned {
			if got[i] != v {
				t.Errorf("n=%d: pinned item %d changed from %v to %v", n, i, v, got[i])
			}
		}
	}
}

func TestSumMatches(t *testing.T) {
	if !SumMatches(99.995, 100.0) {
		t.Error("99.995 should match 100.0 within tolerance")
	}
	if SumMatches(99.98, 100.0) {
		t.Error("99.98 should not match 100.0")
	}
}
