// Package tax implements spec.md §2's Tax Calculator subsystem:
// inflation-indexed progressive bracket evaluation across jurisdictions,
// Social Security taxability, stacked long-term capital gains, IRMAA,
// and marketplace premium gating.
package tax

import "github.com/shopspring/decimal"

// BracketTier is one (min_income, rate) pair of a progressive bracket
// table; the upper bound is implicit (the next tier's MinIncome, or +∞
// for the last tier). Adheres to spec.md §3's Tax Brackets (raw) data
// model, grounded on original_source/src/taxes.py's
// `{"min_salary": ..., "tax_rate": ...}` bracket rows.
type BracketTier struct {
	MinIncome decimal.Decimal
	Rate      decimal.Decimal
}

// Brackets is a sorted-ascending list of BracketTier.
type Brackets []BracketTier

// ScaleTo multiplies every MinIncome by modifier, producing the
// year-indexed version of a base-year bracket table (spec.md §3 "All
// dollar thresholds... are inflation-indexed by cumulative modifier from
// the simulation base year"). Rates are never scaled.
func (b Brackets) ScaleTo(modifier decimal.Decimal) Brackets {
	out := make(Brackets, len(b))
	for i, t := range b {
		out[i] = BracketTier{MinIncome: t.MinIncome.Mul(modifier).Round(0), Rate: t.Rate}
	}
	return out
}

// BracketProgressive computes piecewise-linear cumulative tax on income
// across brackets: each tier taxes the portion of income between its
// MinIncome and the next tier's MinIncome (or +∞ for the top tier) at
// its Rate. income <= 0 yields 0. Grounded on
// original_source/src/taxes.py's `_calculate_ordinary_tax` loop.
func BracketProgressive(income decimal.Decimal, brackets Brackets) decimal.Decimal {
	if income.Sign() <= 0 || len(brackets) == 0 {
		return decimal.Zero
	}
	tax := decimal.Zero
	for i, tier := range brackets {
		if income.LessThanOrEqual(tier.MinIncome) {
			break
		}
		upper := decimal.Decimal{}
		hasUpper := i+1 < len(brackets)
		if hasUpper {
			upper = brackets[i+1].MinIncome
		}
		ceiling := income
		if hasUpper && upper.LessThan(income) {
			ceiling = upper
		}
		chunk := ceiling.Sub(tier.MinIncome)
		if chunk.Sign() <= 0 {
			continue
		}
		tax = tax.Add(chunk.Mul(tier.Rate))
	}
	return tax
}

// StackedBracketProgressive taxes `amount` (e.g. long-term capital gains)
// as if it were stacked on top of `floor` (ordinary income) within the
// same bracket table: only the portion of each tier above max(floor,
// tier.MinIncome) and below floor+amount is taxed. Grounded on
// original_source/src/taxes.py's `_calculate_capital_gains_tax`, which
// layers gains brackets on top of ordinary income.
func StackedBracketProgressive(floor, amount decimal.Decimal, brackets Brackets) decimal.Decimal {
	if amount.Sign() <= 0 || len(brackets) == 0 {
		return decimal.Zero
	}
	total := floor.Add(amount)
	tax := decimal.Zero
	for i, tier := range brackets {
		if total.LessThanOrEqual(tier.MinIncome) {
			break
		}
		lower := tier.MinIncome
		if floor.GreaterThan(lower) {
			lower = floor
		}
		upper := decimal.Decimal{}
		hasUpper := i+1 < len(brackets)
		if hasUpper {
			upper = brackets[i+1].MinIncome
		}
		ceiling := total
		if hasUpper && upper.LessThan(total) {
			ceiling = upper
		}
		chunk := ceiling.Sub(lower)
		if chunk.Sign() <= 0 {
			continue
		}
		tax = tax.Add(chunk.Mul(tier.Rate))
	}
	return tax
}
