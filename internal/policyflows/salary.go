package policyflows

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

// SalaryPolicy is spec.md §4.5's Salary policy flow. Pre-retirement, each
// tick deposits CurrentAnnualGross/12 across Targets by share; at
// MeritMonth the gross compounds by MeritRate; at BonusMonth the
// AnnualBonus is deposited by the same shares. Per spec.md §3's
// Ownership note, the compounded gross is mutable state carried across
// ticks, so SalaryPolicy must be used by pointer.
type SalaryPolicy struct {
	domain.BaseTransaction
	AnnualGross     decimal.Decimal
	AnnualBonus     decimal.Decimal
	BonusMonth      int
	MeritRate       decimal.Decimal
	MeritMonth      int
	Targets         []BucketShare
	RetirementMonth domain.Month

	currentAnnualGross decimal.Decimal
	meritAppliedYear   int
}

func NewSalaryPolicy(annualGross, annualBonus decimal.Decimal, bonusMonth int, meritRate decimal.Decimal, meritMonth int, targets []BucketShare, retirementMonth domain.Month) *SalaryPolicy {
	return &SalaryPolicy{
		BaseTransaction:    domain.BaseTransaction{Label: "Salary"},
		AnnualGross:        annualGross,
		AnnualBonus:        annualBonus,
		BonusMonth:         bonusMonth,
		MeritRate:          meritRate,
		MeritMonth:         meritMonth,
		Targets:            targets,
		RetirementMonth:    retirementMonth,
		currentAnnualGross: annualGross,
	}
}

func (s *SalaryPolicy) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	if !ctx.Month.Before(s.RetirementMonth) {
		return domain.TaxContribution{}
	}

	if ctx.Month.Month == s.MeritMonth && s.meritAppliedYear != ctx.Month.Year {
		s.currentAnnualGross = s.currentAnnualGross.Mul(decimal.NewFromInt(1).Add(s.MeritRate))
		s.meritAppliedYear = ctx.Month.Year
	}

	var total domain.TaxContribution

	monthly := s.currentAnnualGross.Div(decimal.NewFromInt(12)).Round(0)
	total = total.Add(s.depositAndClassify(ctx, monthly))

	if ctx.Month.Month == s.BonusMonth && s.AnnualBonus.Sign() > 0 {
		total = total.Add(s.depositAndClassify(ctx, s.AnnualBonus))
	}

	return total
}

// depositAndClassify deposits amount across Targets and reports the
// portion landing in non-tax-deferred buckets as taxable salary — the
// portion routed to tax-deferred targets reduces AGI at source and is
// excluded, per spec.md §4.5.
func (s *SalaryPolicy) depositAndClassify(ctx *domain.ApplyContext, amount decimal.Decimal) domain.TaxContribution {
	deposited := distributeDeposit(ctx, amount, s.Targets, "Salary", domain.LedgerKindDeposit)
	taxableSalary := decimal.Zero
	for name, portion := range deposited {
		bucket := ctx.Bucket(name)
		if bucket != nil && bucket.Type == domain.BucketTypeTaxDeferred {
			continue
		}
		taxableSalary = taxableSalary.Add(portion)
	}
	return domain.TaxContribution{Salary: taxableSalary}
}
