package policyflows

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
)

// RentPolicy is spec.md §4.5's post-sale housing flow: once the Property
// bucket balance reaches zero (the home has been sold or liquidated),
// inflation-adjusted monthly rent is withdrawn from Cash instead.
type RentPolicy struct {
	domain.BaseTransaction
	PropertyBucket  string
	MonthlyRentBase decimal.Decimal
	Category        string
	Inflation       econ.CategoryInflationSeries
	StartYear       int
}

func NewRentPolicy(propertyBucket string, monthlyRentBase decimal.Decimal, category string, inflation econ.CategoryInflationSeries, startYear int) *RentPolicy {
	return &RentPolicy{
		BaseTransaction: domain.BaseTransaction{Label: "Rent"},
		PropertyBucket:  propertyBucket,
		MonthlyRentBase: monthlyRentBase,
		Category:        category,
		Inflation:       inflation,
		StartYear:       startYear,
	}
}

func (r *RentPolicy) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	if property := ctx.Bucket(r.PropertyBucket); property != nil && !property.Balance().IsZero() {
		return domain.TaxContribution{}
	}

	mult := r.Inflation.Multiplier(r.Category, r.StartYear, ctx.Month.Year)
	rent := r.MonthlyRentBase.Mul(mult).Round(0)
	if rent.Sign() <= 0 {
		return domain.TaxContribution{}
	}

	ctx.Cash.Withdraw(ctx.Ledger, ctx.Logger, rent, "Rent", ctx.Month, domain.LedgerKindWithdraw)
	return domain.TaxContribution{}
}
