package domain

import "github.com/shopspring/decimal"

// AllocateProportional splits total across the given ordered keys by
// weight. The final key (in iteration order of `order`) absorbs whatever
// rounding residue the earlier splits leave behind, so the returned
// amounts always sum to exactly `total` — the same safety guarantee the
// teacher's split-rule allocator gives for FIXED/PERCENT/REMAINDER
// allocation, generalized here to weighted proportional splits (bucket
// holding deposits, salary/RMD target shares, liquidation proceeds).
//
// Weights need not sum to 1; they are normalized against their own sum.
// order must list every key present in weights; passing a stable order
// is the caller's responsibility for deterministic residue assignment.
func AllocateProportional(total decimal.Decimal, weights map[string]decimal.Decimal, order []string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(order))
	if len(order) == 0 {
		return out
	}

	weightSum := decimal.Zero
	for _, k := range order {
		weightSum = weightSum.Add(weights[k])
	}
	if weightSum.IsZero() {
		return out
	}

	allocated := decimal.Zero
	for i, k := range order {
		if i == len(order)-1 {
			out[k] = total.Sub(allocated)
			continue
		}
		share := total.Mul(weights[k]).Div(weightSum)
		out[k] = share
		allocated = allocated.Add(share)
	}
	return out
}
