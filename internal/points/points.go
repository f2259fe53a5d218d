package points

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tolerance is the floating slack allowed when comparing a point sum to its
// expected budget.
const Tolerance = 0.01

// Distribution failure kinds. Messages wrapped around these carry the
// offending numeric values and are meant to be surfaced to the client as-is.
var (
	ErrEmptyItems            = errors.New("no items to distribute points over")
	ErrBudgetExceeded        = errors.New("assigned points exceed budget")
	ErrBudgetMismatch        = errors.New("assigned points do not sum to budget")
	ErrDistributionInvariant = errors.New("distributed points do not sum to budget")
)

// Distribute assigns a share of budget to every unassigned entry of values
// (an entry is unassigned when it is <= 0) and returns the completed slice.
// Pinned entries are never altered. The input slice is not mutated.
//
// Each unassigned entry except the last receives the equal share truncated to
// two decimals; the last absorbs the remainder, rounded half-up, so the total
// matches the budget exactly despite truncation drift.
func Distribute(budget float64, values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyItems
	}

	pinnedSum := 0.0
	unassigned := 0
	for _, v := range values {
		if v > 0 {
			pinnedSum += v
		} else {
			unassigned++
		}
	}

	if pinnedSum > budget {
		return nil, fmt.Errorf("%w: total assigned points (%.2f) exceed maximum allowed (%.2f)",
			ErrBudgetExceeded, pinnedSum, budget)
	}

	out := make([]float64, len(values))
	copy(out, values)

	if unassigned == 0 {
		if math.Abs(pinnedSum-budget) > Tolerance {
			return nil, fmt.Errorf("%w: all items have assigned points (%.2f) but don't sum to %.2f",
				ErrBudgetMismatch, pinnedSum, budget)
		}
		// Already balanced, nothing to assign.
		return out, nil
	}

	remaining := budget - pinnedSum
	share := truncate2(remaining / float64(unassigned))

	distributed := 0.0
	processed := 0
	for i, v := range out {
		if v > 0 {
			continue
		}
		processed++
		if processed == unassigned {
			// Last unassigned item absorbs the truncation remainder.
			out[i] = round2(remaining - distributed)
		} else {
			out[i] = share
			distributed += share
		}
	}

	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if math.Abs(sum-budget) > Tolerance {
		return nil, fmt.Errorf("%w: total points (%.2f) must equal %.2f",
			ErrDistributionInvariant, sum, budget)
	}

	return out, nil
}

// SumMatches reports whether sum equals expected within Tolerance.
func SumMatches(sum, expected float64) bool {
	return math.Abs(sum-expected) <= Tolerance
}

// truncate2 drops everything past the second decimal place. It operates on
// the value's shortest decimal representation, not the underlying binary
// float: a share of 0.29 is stored as 0.2899999..., and truncating the bits
// would turn it into 0.28.
func truncate2(v float64) float64 {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s) <= dot+3 {
		return v
	}
	f, _ := strconv.ParseFloat(s[:dot+3], 64)
	return f
}

// round2 rounds half-up (away from zero) to two decimal places, on the same
// shortest decimal representation as truncate2.
func round2(v float64) float64 {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s) <= dot+3 {
		return v
	}
	f, _ := strconv.ParseFloat(s[:dot+3], 64)
	if s[dot+3] < '5' {
		return f
	}
	if s[0] == '-' {
		f -= 0.01
	} else {
		f += 0.01
	}
	f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	return f
}
