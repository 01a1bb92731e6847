package engine

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

// Tick runs one calendar month through spec.md §4.8's strict pipeline
// order: SEPP withdrawal, marketplace premiums, IRMAA/Medicare premiums,
// scheduled flows, policy flows (except Roth/SEPP), market returns,
// refills, liquidations, tax accrual drip, snapshot, and — in December —
// year-end reconciliation.
func (e *Engine) Tick(month domain.Month) error {
	ctx := e.contextFor(month)
	modifier := e.inflation.Multiplier("", e.baseYearIndex, month.Year)

	for _, s := range e.sepps {
		e.yearlyLog.AddContribution(s.Apply(ctx))
	}

	e.applyMarketplacePremium(ctx)

	if err := e.applyIRMAAPremium(ctx, modifier); err != nil {
		return err
	}

	e.yearlyLog.AddContribution(e.fixedFlow.Apply(ctx))
	e.yearlyLog.AddContribution(e.recurringFlow.Apply(ctx))

	for _, p := range e.policies {
		e.yearlyLog.AddContribution(p.Apply(ctx))
	}

	ret := econ.ApplyMarketReturns(e.rng, e.buckets, e.ledger, e.cfg.GainTable, e.cfg.InflationThresholds, e.inflation.Baseline, month)
	e.monthlyReturns = append(e.monthlyReturns, ret)
	e.yearlyLog.AddFixedIncomeInterest(ret.FixedIncomeInterest)

	if e.cfg.Refill != nil {
		e.yearlyLog.AddContribution(e.cfg.Refill.GenerateRefills(ctx))
		e.yearlyLog.AddContribution(e.cfg.Refill.GenerateLiquidations(ctx))
	}

	e.accrueTaxDrip(ctx, modifier)

	e.snapshot(month)

	if month.IsDecember() {
		if err := e.yearEndReconciliation(month, modifier); err != nil {
			return err
		}
		e.yearlyLog = tax.YearlyLog{}
	}

	return nil
}

// Run executes every configured month in order and assembles the
// trial's complete output (spec.md §6).
func (e *Engine) Run() (TrialOutput, error) {
	for _, month := range e.cfg.Months {
		if err := e.Tick(month); err != nil {
			return TrialOutput{}, &domain.TrialError{TrialIndex: e.trialIndex, Err: err}
		}
	}
	return e.output(), nil
}

// portfolioValue sums every bucket's current balance.
func (e *Engine) portfolioValue() decimal.Decimal {
	total := decimal.Zero
	for _, b := range e.buckets {
		total = total.Add(b.Balance())
	}
	return total
}

// accrueTaxDrip runs spec.md §4.8 step 9: recompute the marginal drip
// against the year's log accrued so far (the delta against PaidYTD is
// handled inside tax.Calculator.MonthlyDrip, so no separate prior-month
// snapshot is needed — see DESIGN.md's calculator.go entry) and transfer it from Cash to
// the Tax Collection bucket. December's settlement happens in year-end
// reconciliation instead.
func (e *Engine) accrueTaxDrip(ctx *domain.ApplyContext, modifier decimal.Decimal) {
	if ctx.Month.IsDecember() {
		return
	}
	remaining := 12 - ctx.Month.Month + 1
	drip := e.calculator.MonthlyDrip(ctx.Month.Year, e.yearlyLog, modifier, e.portfolioValue(), remaining)
	if drip.Sign() <= 0 {
		return
	}
	taxCollection := e.buckets[e.cfg.taxCollectionBucketName()]
	if taxCollection == nil {
		e.warn(ctx.Month, "Tax Collection bucket not found; drip skipped")
		return
	}
	moved := e.cash.Transfer(e.ledger, drip, taxCollection, ctx.Month, domain.LedgerKindTax)
	e.yearlyLog.PaidYTD = e.yearlyLog.PaidYTD.Add(moved)
}

func (e *Engine) snapshot(month domain.Month) {
	balances := make(map[string]decimal.Decimal, len(e.buckets))
	for name, b := range e.buckets {
		balances[name] = b.Balance()
	}
	e.snapshots = append(e.snapshots, MonthlySnapshot{Month: month, Balances: balances})
}
