package policyflows

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
)

const (
	fullRetirementAgeMonthsDefault = 67 * 12
	maxClaimAgeMonths              = 70 * 12
)

// ClaimAdjustment implements the standard SSA early/delayed claiming
// rules of spec.md §4.5: claiming before full retirement age reduces the
// benefit by 5/9% per month for the first 36 early months and 5/12% per
// month beyond that; claiming after full retirement age (up to 70)
// increases it by 2/3% per month.
func ClaimAdjustment(fullAgeMonths, claimAgeMonths int) decimal.Decimal {
	switch {
	case claimAgeMonths < fullAgeMonths:
		early := fullAgeMonths - claimAgeMonths
		first36 := early
		if first36 > 36 {
			first36 = 36
		}
		beyond36 := early - 36
		if beyond36 < 0 {
			beyond36 = 0
		}
		reduction := decimal.NewFromInt(int64(first36)).Mul(decimal.NewFromFloat(5.0 / 9.0 / 100))
		reduction = reduction.Add(decimal.NewFromInt(int64(beyond36)).Mul(decimal.NewFromFloat(5.0 / 12.0 / 100)))
		return decimal.NewFromInt(1).Sub(reduction)
	case claimAgeMonths > fullAgeMonths:
		capped := claimAgeMonths
		if capped > maxClaimAgeMonths {
			capped = maxClaimAgeMonths
		}
		late := capped - fullAgeMonths
		increase := decimal.NewFromInt(int64(late)).Mul(decimal.NewFromFloat(2.0 / 3.0 / 100))
		return decimal.NewFromInt(1).Add(increase)
	default:
		return decimal.NewFromInt(1)
	}
}

// SocialSecurityPolicy is one beneficiary's claim, spec.md §4.5.
type SocialSecurityPolicy struct {
	domain.BaseTransaction
	BirthMonth          domain.Month
	FullRetirementAgeMo int // defaults to 67*12 if zero
	ClaimAgeMonths      int
	FullMonthlyBenefit  decimal.Decimal
	PayoutPct           decimal.Decimal // e.g. 0.5 for a spousal benefit
	Target              string
	Inflation           econ.InflationSeries

	adjustment       decimal.Decimal
	adjustmentCached bool
}

func NewSocialSecurityPolicy(birthMonth domain.Month, fullRetirementAgeMonths, claimAgeMonths int, fullMonthlyBenefit, payoutPct decimal.Decimal, target string, inflation econ.InflationSeries) *SocialSecurityPolicy {
	if fullRetirementAgeMonths == 0 {
		fullRetirementAgeMonths = fullRetirementAgeMonthsDefault
	}
	return &SocialSecurityPolicy{
		BaseTransaction:     domain.BaseTransaction{Label: "Social Security"},
		BirthMonth:          birthMonth,
		FullRetirementAgeMo: fullRetirementAgeMonths,
		ClaimAgeMonths:      claimAgeMonths,
		FullMonthlyBenefit:  fullMonthlyBenefit,
		PayoutPct:           payoutPct,
		Target:              target,
		Inflation:           inflation,
	}
}

func (s *SocialSecurityPolicy) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	ageMonths := s.BirthMonth.MonthsUntil(ctx.Month)
	if ageMonths < s.ClaimAgeMonths {
		return domain.TaxContribution{}
	}

	if !s.adjustmentCached {
		s.adjustment = ClaimAdjustment(s.FullRetirementAgeMo, s.ClaimAgeMonths)
		s.adjustmentCached = true
	}

	cumMod := decimal.NewFromInt(1)
	if yi, ok := s.Inflation[ctx.Month.Year]; ok {
		cumMod = yi.CumulativeModifier
	}

	monthly := s.FullMonthlyBenefit.Mul(s.adjustment).Mul(cumMod).Mul(s.PayoutPct).Round(0)
	if monthly.Sign() <= 0 {
		return domain.TaxContribution{}
	}

	target := ctx.Bucket(s.Target)
	if target == nil {
		if ctx.Logger != nil {
			ctx.Logger.Printf("%s — Social Security target bucket %q not found", ctx.Month, s.Target)
		}
		return domain.TaxContribution{}
	}
	target.Deposit(ctx.Ledger, monthly, "Social Security", ctx.Month, domain.LedgerKindDeposit)

	return domain.TaxContribution{SocialSecurity: monthly}
}
