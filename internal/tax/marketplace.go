package tax

import "github.com/shopspring/decimal"

// MarketplacePremium resolves spec.md §9's Open Question #1: the
// stricter of the configured monthly premium and CapPct*priorYearMAGI.
// dependentAge < 25 selects the family plan rate per spec.md §4.8 step 2;
// a nil dependentAge (no dependent) always selects the couple rate.
func MarketplacePremium(cfg MarketplacePremiums, priorYearMAGI decimal.Decimal, dependentAge *int) decimal.Decimal {
	configured := cfg.CoupleMonthly
	if dependentAge != nil && *dependentAge < 25 {
		configured = cfg.FamilyMonthly
	}
	cap := priorYearMAGI.Mul(cfg.CapPct).Div(decimal.NewFromInt(12))
	if cap.LessThan(configured) {
		return cap
	}
	return configured
}
