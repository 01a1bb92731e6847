package policyflows

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

// seppLifeExpectancy is the IRS Single Life Expectancy Table (Table I)
// used for 72(t)/SEPP amortization, keyed by age at the start of the
// SEPP window. Sparse but covers the early-retirement ages SEPP is
// typically used for; ages outside the table clamp to the nearest entry.
var seppLifeExpectancy = map[int]float64{
	45: 38.8, 46: 37.9, 47: 37.0, 48: 36.0, 49: 35.1,
	50: 34.2, 51: 33.3, 52: 32.3, 53: 31.4, 54: 30.5,
	55: 29.6, 56: 28.7, 57: 27.9, 58: 27.0, 59: 26.1,
	60: 25.2, 61: 24.4, 62: 23.5, 63: 22.7, 64: 21.8,
}

// SEPPLifeExpectancy looks up the single life expectancy divisor for age,
// clamping to the table's bounds.
func SEPPLifeExpectancy(age int) float64 {
	if age < 45 {
		age = 45
	}
	if age > 64 {
		age = 64
	}
	return seppLifeExpectancy[age]
}

// SEPPPolicy is spec.md §4.5's 72(t) Substantially Equal Periodic
// Payments mechanism: an amortized payment computed once at the window's
// start month and cached for the rest of the window, per spec.md §3's
// Ownership note.
type SEPPPolicy struct {
	domain.BaseTransaction
	StartMonth domain.Month
	EndMonth   domain.Month
	Source     string
	Target     string
	Rate       decimal.Decimal

	cached         bool
	monthlyPayment decimal.Decimal
}

func NewSEPPPolicy(startMonth, endMonth domain.Month, source, target string, rate decimal.Decimal) *SEPPPolicy {
	return &SEPPPolicy{
		BaseTransaction: domain.BaseTransaction{Label: "SEPP"},
		StartMonth:      startMonth,
		EndMonth:        endMonth,
		Source:          source,
		Target:          target,
		Rate:            rate,
	}
}

// InWindow reports whether month falls within [StartMonth, EndMonth]
// inclusive — the engine uses it to set ApplyContext.SEPPActive, which
// the refill policy reads to freeze tax-deferred sources during the SEPP
// window (spec.md §4.6).
func (s *SEPPPolicy) InWindow(month domain.Month) bool {
	return !month.Before(s.StartMonth) && !month.After(s.EndMonth)
}

func (s *SEPPPolicy) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	if !s.InWindow(ctx.Month) {
		return domain.TaxContribution{}
	}

	if !s.cached {
		source := ctx.Bucket(s.Source)
		principal := decimal.Zero
		if source != nil {
			principal = source.Balance()
		}
		ageAtStart := ctx.AgeYears()
		divisor := SEPPLifeExpectancy(ageAtStart)

		rateF, _ := s.Rate.Float64()
		principalF, _ := principal.Float64()
		denom := 1 - math.Pow(1+rateF, -divisor)
		annual := decimal.NewFromFloat(0)
		if denom != 0 {
			annual = decimal.NewFromFloat(principalF * rateF / denom)
		}
		s.monthlyPayment = annual.Div(decimal.NewFromInt(12)).Round(0)
		s.cached = true
	}

	source := ctx.Bucket(s.Source)
	target := ctx.Bucket(s.Target)
	if source == nil || target == nil {
		if ctx.Logger != nil {
			ctx.Logger.Printf("%s — SEPP source/target bucket missing", ctx.Month)
		}
		return domain.TaxContribution{}
	}

	moved := source.Transfer(ctx.Ledger, s.monthlyPayment, target, ctx.Month, domain.LedgerKindTransfer)

	return domain.TaxContribution{TaxDeferredWithdrawal: moved}
}
