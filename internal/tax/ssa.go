package tax

import "github.com/shopspring/decimal"

// TaxableSocialSecurity computes the taxable portion of Social Security
// benefits via the provisional-income method: provisional = otherIncome +
// 0.5*ssBenefits; the inclusion amount is bracket_progressive(provisional,
// ssTaxabilityBrackets), capped at 0.85*ssBenefits. Grounded on spec.md
// §4.7 step 2 and verified against spec.md §8 scenario 3 ($30,000 SS,
// $50,000 other income, brackets [(0,0),(32000,0.5),(44000,0.85)] ->
// $23,850).
func TaxableSocialSecurity(ssBenefits, otherIncome decimal.Decimal, brackets Brackets) decimal.Decimal {
	if ssBenefits.Sign() <= 0 {
		return decimal.Zero
	}
	provisional := otherIncome.Add(ssBenefits.Mul(decimal.NewFromFloat(0.5)))
	inclusion := BracketProgressive(provisional, brackets)
	cap := ssBenefits.Mul(decimal.NewFromFloat(0.85))
	if inclusion.GreaterThan(cap) {
		return cap
	}
	return inclusion
}
