package policyflows

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
)

// PropertyPolicy is spec.md §4.5's mortgage + escrow + maintenance flow.
// RemainingPrincipal is mutable state amortized tick by tick; once it
// reaches zero, principal & interest stop but escrow (taxes + insurance)
// and maintenance continue indefinitely.
type PropertyPolicy struct {
	domain.BaseTransaction
	PropertyBucket        string // bucket whose balance stands in for current market value
	RemainingPrincipal    decimal.Decimal
	APR                   decimal.Decimal
	MonthlyPI             decimal.Decimal
	MonthlyTaxesBase      decimal.Decimal
	MonthlyInsuranceBase  decimal.Decimal
	MaintenanceRateAnnual decimal.Decimal
	Inflation             econ.CategoryInflationSeries
	StartYear             int
}

func NewPropertyPolicy(propertyBucket string, remainingPrincipal, apr, monthlyPI, monthlyTaxes, monthlyInsurance, maintenanceRateAnnual decimal.Decimal, inflation econ.CategoryInflationSeries, startYear int) *PropertyPolicy {
	return &PropertyPolicy{
		BaseTransaction:       domain.BaseTransaction{Label: "Property"},
		PropertyBucket:        propertyBucket,
		RemainingPrincipal:    remainingPrincipal,
		APR:                   apr,
		MonthlyPI:             monthlyPI,
		MonthlyTaxesBase:      monthlyTaxes,
		MonthlyInsuranceBase:  monthlyInsurance,
		MaintenanceRateAnnual: maintenanceRateAnnual,
		Inflation:             inflation,
		StartYear:             startYear,
	}
}

func (p *PropertyPolicy) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	marketValue := decimal.Zero
	if property := ctx.Bucket(p.PropertyBucket); property != nil {
		marketValue = property.Balance()
	}

	maintMult := p.Inflation.Multiplier("Property Maintenance", p.StartYear, ctx.Month.Year)
	maintenance := marketValue.Mul(p.MaintenanceRateAnnual).Div(decimal.NewFromInt(12)).Mul(maintMult).Round(0)

	taxMult := p.Inflation.Multiplier("Property Taxes", p.StartYear, ctx.Month.Year)
	taxes := p.MonthlyTaxesBase.Mul(taxMult).Round(0)

	insMult := p.Inflation.Multiplier("Property Insurance", p.StartYear, ctx.Month.Year)
	insurance := p.MonthlyInsuranceBase.Mul(insMult).Round(0)

	pi := decimal.Zero
	if p.RemainingPrincipal.Sign() > 0 {
		interest := p.RemainingPrincipal.Mul(p.APR).Div(decimal.NewFromInt(12)).Round(0)
		principalPortion := p.MonthlyPI.Sub(interest)
		p.RemainingPrincipal = p.RemainingPrincipal.Sub(principalPortion)
		if p.RemainingPrincipal.IsNegative() {
			p.RemainingPrincipal = decimal.Zero
		}
		pi = p.MonthlyPI
	}

	total := pi.Add(taxes).Add(insurance).Add(maintenance)
	if total.Sign() > 0 {
		ctx.Cash.Withdraw(ctx.Ledger, ctx.Logger, total, "Property Expenses", ctx.Month, domain.LedgerKindWithdraw)
	}

	return domain.TaxContribution{}
}
