package tax

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

// YearlyLog is the running cumulative total for the current calendar
// year, queried from every Transaction's tax-category contribution each
// tick (spec.md §3's Yearly Tax Log data model). The engine owns one Log
// per trial and resets it (by assigning a fresh zero value) at each
// calendar-year boundary.
type YearlyLog struct {
	Salary                    decimal.Decimal
	Unemployment              decimal.Decimal
	SocialSecurityBenefits    decimal.Decimal
	OrdinaryWithdrawals       decimal.Decimal // tax-deferred withdrawals, incl. RMD and SEPP
	RothConversions           decimal.Decimal
	RealizedGains             decimal.Decimal
	TaxableGains              decimal.Decimal
	FixedIncomeInterest       decimal.Decimal
	TaxFreeWithdrawals        decimal.Decimal
	PenaltyEligibleWithdrawal decimal.Decimal
	PaidYTD                   decimal.Decimal // tax already drip-transferred this year
}

// AddContribution folds a single Transaction's TaxContribution into the
// log. The engine calls it right after each Transaction's Apply within a
// tick (and after the refill and liquidation passes and Roth
// conversions), before the tax drip of spec.md §4.8 step 9 reads the log.
func (l *YearlyLog) AddContribution(c domain.TaxContribution) {
	l.Salary = l.Salary.Add(c.Salary)
	l.Unemployment = l.Unemployment.Add(c.Unemployment)
	l.SocialSecurityBenefits = l.SocialSecurityBenefits.Add(c.SocialSecurity)
	l.OrdinaryWithdrawals = l.OrdinaryWithdrawals.Add(c.TaxDeferredWithdrawal)
	l.RothConversions = l.RothConversions.Add(c.RothConversion)
	l.TaxableGains = l.TaxableGains.Add(c.TaxableGain)
	l.RealizedGains = l.RealizedGains.Add(c.TaxableGain)
	l.TaxFreeWithdrawals = l.TaxFreeWithdrawals.Add(c.TaxFreeWithdrawal)
	l.PenaltyEligibleWithdrawal = l.PenaltyEligibleWithdrawal.Add(c.PenaltyEligible)
}

// AddFixedIncomeInterest folds the per-tick Fixed-Income market-return
// contribution (spec.md §4.2 special case) into the log; unlike other
// contributions this comes from internal/econ's market-return step, not
// a Transaction.
func (l *YearlyLog) AddFixedIncomeInterest(amount decimal.Decimal) {
	l.FixedIncomeInterest = l.FixedIncomeInterest.Add(amount)
}

// Clone returns an independent value copy — used wherever a caller
// needs to try a hypothetical contribution (e.g. a candidate Roth
// conversion amount) without mutating the log still accruing for the
// live trial.
func (l YearlyLog) Clone() YearlyLog {
	return l
}
