package engine

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

// withYTDBaseline folds cfg.YTDBaseline into log, field by field, for the
// simulation's first calendar year only (spec.md §4.8 year-end step 2).
func withYTDBaseline(log, baseline tax.YearlyLog) tax.YearlyLog {
	return tax.YearlyLog{
		Salary:                    log.Salary.Add(baseline.Salary),
		Unemployment:              log.Unemployment.Add(baseline.Unemployment),
		SocialSecurityBenefits:    log.SocialSecurityBenefits.Add(baseline.SocialSecurityBenefits),
		OrdinaryWithdrawals:       log.OrdinaryWithdrawals.Add(baseline.OrdinaryWithdrawals),
		RothConversions:           log.RothConversions.Add(baseline.RothConversions),
		RealizedGains:             log.RealizedGains.Add(baseline.RealizedGains),
		TaxableGains:              log.TaxableGains.Add(baseline.TaxableGains),
		FixedIncomeInterest:       log.FixedIncomeInterest.Add(baseline.FixedIncomeInterest),
		TaxFreeWithdrawals:        log.TaxFreeWithdrawals.Add(baseline.TaxFreeWithdrawals),
		PenaltyEligibleWithdrawal: log.PenaltyEligibleWithdrawal.Add(baseline.PenaltyEligibleWithdrawal),
		PaidYTD:                   log.PaidYTD.Add(baseline.PaidYTD),
	}
}

// yearEndReconciliation runs spec.md §4.8's December-only settlement:
// attempt Roth conversions, compute the year's final tax, pay it from
// Tax Collection then Cash (Cash may go negative — not a fatal
// condition, spec.md §7), refund any Tax Collection surplus to Cash, and
// record the year's Tax Record.
func (e *Engine) yearEndReconciliation(month domain.Month, modifier decimal.Decimal) error {
	ctx := e.contextFor(month)

	e.attemptRothConversions(ctx, modifier)

	log := e.yearlyLog
	if month.Year == e.baseYearIndex {
		log = withYTDBaseline(log, e.cfg.YTDBaseline)
	}

	record := e.calculator.Compute(month.Year, log, modifier, e.portfolioValue())

	// Steps 3-4: pay the final computed tax from Tax Collection first,
	// any remainder from Cash (Cash may go negative); then refund
	// whatever positive balance Tax Collection still carries.
	taxCollection := e.buckets[e.cfg.taxCollectionBucketName()]
	fromCollection := decimal.Zero
	if taxCollection != nil {
		fromCollection = taxCollection.Withdraw(e.ledger, e.logger, decimal.Min(record.TotalTax, taxCollection.Balance()), "Tax Settlement", month, domain.LedgerKindTax)
	}
	if remainder := record.TotalTax.Sub(fromCollection); remainder.Sign() > 0 {
		e.cash.Withdraw(e.ledger, e.logger, remainder, "Tax Settlement", month, domain.LedgerKindTax)
	}
	if taxCollection != nil && taxCollection.Balance().Sign() > 0 {
		refund := taxCollection.PartialWithdraw(taxCollection.Balance())
		if refund.Sign() > 0 {
			e.cash.Deposit(e.ledger, refund, "Tax Collection Refund", month, domain.LedgerKindDeposit)
		}
	}

	e.taxRecords = append(e.taxRecords, record)
	return nil
}
