package tax

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Calculator evaluates spec.md §4.7's annual tax algorithm against an
// indexed bracket set. Stateless and safe to share across trials; all
// per-trial state (the running YearlyLog) lives on the caller.
type Calculator struct {
	Config *Config
}

// NewCalculator constructs a Calculator over the shared, process-wide
// Config.
func NewCalculator(cfg *Config) *Calculator {
	return &Calculator{Config: cfg}
}

// Compute runs spec.md §4.7 steps 1-8 against the given year's cumulative
// YearlyLog (already including any YTD baseline folded in by the
// caller), producing the year's Record. portfolioValue is used only for
// WithdrawalRate.
func (c *Calculator) Compute(year int, log YearlyLog, modifier decimal.Decimal, portfolioValue decimal.Decimal) Record {
	idx := c.Config.IndexForYear(modifier)

	otherIncome := log.Salary.Add(log.Unemployment).Add(log.OrdinaryWithdrawals).Add(log.RothConversions).Add(log.FixedIncomeInterest).Add(log.TaxableGains)
	taxableSS := TaxableSocialSecurity(log.SocialSecurityBenefits, otherIncome, idx.SSTaxability)

	agi := otherIncome.Add(taxableSS)

	taxableIncome := agi.Sub(idx.StandardDeduction)
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	ordinaryTax := decimal.Zero
	for _, brackets := range idx.Ordinary {
		ordinaryTax = ordinaryTax.Add(BracketProgressive(taxableIncome, brackets))
	}

	payrollTax := BracketProgressive(log.Salary, idx.SocialSecurityWageBase).
		Add(BracketProgressive(log.Salary, idx.Medicare))

	gainsTax := StackedBracketProgressive(taxableIncome, log.TaxableGains, idx.LTCG)

	penaltyTax := log.PenaltyEligibleWithdrawal.Mul(c.Config.PenaltyRate)

	total := ordinaryTax.Add(payrollTax).Add(gainsTax).Add(penaltyTax)

	effectiveRate := decimal.Zero
	if agi.Sign() > 0 {
		effectiveRate = total.Div(agi)
	}

	withdrawalRate := decimal.Zero
	if portfolioValue.Sign() > 0 {
		withdrawn := log.OrdinaryWithdrawals.Add(log.TaxableGains)
		withdrawalRate = withdrawn.Div(portfolioValue)
	}

	return Record{
		ID:              uuid.New(),
		Year:            year,
		AGI:             agi,
		TaxableIncome:   taxableIncome,
		OrdinaryTax:     ordinaryTax.Round(0),
		PayrollTax:      payrollTax.Round(0),
		CapitalGainsTax: gainsTax.Round(0),
		PenaltyTax:      penaltyTax.Round(0),
		TotalTax:        total.Round(0),
		EffectiveRate:   effectiveRate,
		WithdrawalRate:  withdrawalRate,
		PortfolioValue:  portfolioValue,
	}
}

// MonthlyDrip computes spec.md §4.7's "Monthly marginal drip":
// (estimated_annual - paid_YTD) / remaining_months_in_year, using the
// year's fully-accrued-to-date log as the estimate of the annual figure.
// remainingMonths must be >= 1 (the engine skips the drip in December,
// when year-end reconciliation settles the year instead).
func (c *Calculator) MonthlyDrip(year int, log YearlyLog, modifier decimal.Decimal, portfolioValue decimal.Decimal, remainingMonths int) decimal.Decimal {
	if remainingMonths < 1 {
		remainingMonths = 1
	}
	estimate := c.Compute(year, log, modifier, portfolioValue)
	delta := estimate.TotalTax.Sub(log.PaidYTD)
	drip := delta.Div(decimal.NewFromInt(int64(remainingMonths)))
	if drip.IsNegative() {
		return decimal.Zero
	}
	return drip
}
