package tax

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is the per-calendar-year, per-trial tax outcome. Adheres to
// spec.md §3's Tax Record data model and §6's Tax record table output.
type Record struct {
	ID              uuid.UUID
	Year            int
	AGI             decimal.Decimal
	TaxableIncome   decimal.Decimal
	OrdinaryTax     decimal.Decimal
	PayrollTax      decimal.Decimal
	CapitalGainsTax decimal.Decimal
	PenaltyTax      decimal.Decimal
	TotalTax        decimal.Decimal
	EffectiveRate   decimal.Decimal
	WithdrawalRate  decimal.Decimal
	PortfolioValue  decimal.Decimal
}
