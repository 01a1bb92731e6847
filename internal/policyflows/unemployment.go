package policyflows

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

// UnemploymentPolicy is spec.md §4.5's unemployment benefit flow: within
// [StartMonth, EndMonth] inclusive, deposit MonthlyAmount to Target each
// tick. Counts as ordinary unemployment income, distinct from payroll.
type UnemploymentPolicy struct {
	domain.BaseTransaction
	StartMonth    domain.Month
	EndMonth      domain.Month
	MonthlyAmount decimal.Decimal
	Target        string
}

func NewUnemploymentPolicy(startMonth, endMonth domain.Month, monthlyAmount decimal.Decimal, target string) *UnemploymentPolicy {
	return &UnemploymentPolicy{
		BaseTransaction: domain.BaseTransaction{Label: "Unemployment"},
		StartMonth:      startMonth,
		EndMonth:        endMonth,
		MonthlyAmount:   monthlyAmount,
		Target:          target,
	}
}

func (u *UnemploymentPolicy) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	if ctx.Month.Before(u.StartMonth) || ctx.Month.After(u.EndMonth) {
		return domain.TaxContribution{}
	}
	if u.MonthlyAmount.Sign() <= 0 {
		return domain.TaxContribution{}
	}

	target := ctx.Bucket(u.Target)
	if target == nil {
		if ctx.Logger != nil {
			ctx.Logger.Printf("%s — Unemployment target bucket %q not found", ctx.Month, u.Target)
		}
		return domain.TaxContribution{}
	}
	target.Deposit(ctx.Ledger, u.MonthlyAmount, "Unemployment", ctx.Month, domain.LedgerKindDeposit)

	return domain.TaxContribution{Unemployment: u.MonthlyAmount}
}
