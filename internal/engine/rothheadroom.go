package engine

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

// headroomStep is the search granularity for the Roth conversion
// headroom scan — spec.md §9's design note calls for an iterative
// search rather than a closed-form solution.
var headroomStep = decimal.NewFromInt(1000)

// rothHeadroom runs spec.md §4.8 year-end step 1's headroom search: the
// largest conversion amount in [0, maxConversion], stepped by
// headroomStep, such that adding it as a Roth conversion on top of log
// keeps the resulting effective tax rate at or below maxTaxRate. A
// maxTaxRate of 0 always yields 0 without searching (spec.md §8's
// boundary behavior), even where a conversion covered by the standard
// deduction would leave the rate at 0.
func rothHeadroom(calc *tax.Calculator, year int, log tax.YearlyLog, modifier, portfolioValue, maxConversion, maxTaxRate decimal.Decimal) decimal.Decimal {
	if maxConversion.Sign() <= 0 || maxTaxRate.Sign() <= 0 {
		return decimal.Zero
	}

	best := decimal.Zero
	for amount := headroomStep; !amount.GreaterThan(maxConversion); amount = amount.Add(headroomStep) {
		trial := log.Clone()
		trial.RothConversions = trial.RothConversions.Add(amount)
		record := calc.Compute(year, trial, modifier, portfolioValue)
		if record.EffectiveRate.GreaterThan(maxTaxRate) {
			break
		}
		best = amount
	}
	return best
}

// attemptRothConversions runs spec.md §4.8 year-end step 1 for every
// configured phase whose age window contains the holder's age this
// December and whose source bucket clears its configured threshold,
// applying the largest conversion the headroom search allows.
func (e *Engine) attemptRothConversions(ctx *domain.ApplyContext, modifier decimal.Decimal) {
	age := ctx.AgeYears()
	for _, phase := range e.cfg.RothPhases {
		if !phase.AllowConversion || age < phase.MinAge || age > phase.MaxAge {
			continue
		}
		source := ctx.Bucket(phase.Source)
		target := ctx.Bucket(phase.Target)
		if source == nil || target == nil {
			e.warn(ctx.Month, "Roth phase %q source/target bucket missing", phase.Name)
			continue
		}
		if source.Balance().LessThan(phase.SourceThreshold) {
			continue
		}

		amount := rothHeadroom(e.calculator, ctx.Month.Year, e.yearlyLog, modifier, e.portfolioValue(), phase.MaxConversion, phase.MaxTaxRate)
		if amount.Sign() <= 0 {
			continue
		}

		moved := source.Transfer(e.ledger, amount, target, ctx.Month, domain.LedgerKindTransfer)
		if moved.Sign() <= 0 {
			continue
		}
		e.yearlyLog.AddContribution(domain.TaxContribution{RothConversion: moved})
	}
}
