package policyflows

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

// lifeExpectancyDivisors is the IRS Uniform Lifetime Table used for RMD
// calculation, keyed by age. Ages beyond the table's range clamp to the
// nearest tabulated entry.
var lifeExpectancyDivisors = map[int]decimal.Decimal{
	72: decimal.NewFromFloat(27.4), 73: decimal.NewFromFloat(26.5), 74: decimal.NewFromFloat(25.5),
	75: decimal.NewFromFloat(24.6), 76: decimal.NewFromFloat(23.7), 77: decimal.NewFromFloat(22.9),
	78: decimal.NewFromFloat(22.0), 79: decimal.NewFromFloat(21.1), 80: decimal.NewFromFloat(20.2),
	81: decimal.NewFromFloat(19.4), 82: decimal.NewFromFloat(18.5), 83: decimal.NewFromFloat(17.7),
	84: decimal.NewFromFloat(16.8), 85: decimal.NewFromFloat(16.0), 86: decimal.NewFromFloat(15.2),
	87: decimal.NewFromFloat(14.4), 88: decimal.NewFromFloat(13.7), 89: decimal.NewFromFloat(12.9),
	90: decimal.NewFromFloat(12.2), 91: decimal.NewFromFloat(11.5), 92: decimal.NewFromFloat(10.8),
	93: decimal.NewFromFloat(10.1), 94: decimal.NewFromFloat(9.5), 95: decimal.NewFromFloat(8.9),
}

// LifeExpectancyDivisor looks up age in the IRS Uniform Lifetime Table,
// clamping to the table's bounds.
func LifeExpectancyDivisor(age int) decimal.Decimal {
	if age < 72 {
		age = 72
	}
	if age > 95 {
		age = 95
	}
	return lifeExpectancyDivisors[age]
}

// RMDPolicy is spec.md §4.5's Required Minimum Distribution flow: at
// Month each year once age >= StartAge (default 75), withdraw
// Σ(Sources balances)/divisor(age), pro-rata across Sources, and
// distribute across Targets by share.
type RMDPolicy struct {
	domain.BaseTransaction
	Month    int // calendar month RMD is taken each year
	StartAge int
	Sources  []string
	Targets  []BucketShare
}

func NewRMDPolicy(month, startAge int, sources []string, targets []BucketShare) *RMDPolicy {
	if startAge == 0 {
		startAge = 75
	}
	return &RMDPolicy{
		BaseTransaction: domain.BaseTransaction{Label: "Required Minimum Distribution"},
		Month:           month,
		StartAge:        startAge,
		Sources:         sources,
		Targets:         targets,
	}
}

func (r *RMDPolicy) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	if ctx.Month.Month != r.Month || ctx.AgeYears() < r.StartAge {
		return domain.TaxContribution{}
	}

	sourceWeights := make(map[string]decimal.Decimal, len(r.Sources))
	total := decimal.Zero
	for _, name := range r.Sources {
		b := ctx.Bucket(name)
		if b == nil {
			continue
		}
		bal := b.Balance()
		sourceWeights[name] = bal
		total = total.Add(bal)
	}
	if total.Sign() <= 0 {
		return domain.TaxContribution{}
	}

	divisor := LifeExpectancyDivisor(ctx.AgeYears())
	annual := total.Div(divisor).Round(0)

	split := domain.AllocateProportional(annual, sourceWeights, r.Sources)
	withdrawn := decimal.Zero
	for _, name := range r.Sources {
		amount := split[name]
		b := ctx.Bucket(name)
		if b == nil || amount.Sign() <= 0 {
			continue
		}
		got := b.Withdraw(ctx.Ledger, ctx.Logger, amount, "RMD Collection", ctx.Month, domain.LedgerKindWithdraw)
		withdrawn = withdrawn.Add(got)
	}

	distributeDeposit(ctx, withdrawn, r.Targets, "RMD", domain.LedgerKindDeposit)

	return domain.TaxContribution{TaxDeferredWithdrawal: withdrawn}
}
