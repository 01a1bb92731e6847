// Package scheduled implements spec.md §2's Scheduled Flows subsystem:
// Fixed (one-shot) and Recurring (windowed) CSV-driven transactions with
// inflation multipliers, grounded on original_source/src/
// rules_transactions.py's FixedTransaction/RecurringTransaction.
package scheduled

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
)

// FixedRow is one row of a Fixed schedule: an amount that fires exactly
// once, at Month. Positive amounts deposit; negative amounts withdraw.
// Adheres to spec.md §6's "Fixed rows {month, bucket, amount, type,
// description}".
type FixedRow struct {
	Month       domain.Month
	Bucket      string
	Amount      decimal.Decimal
	Category    string // inflation category, spec.md §4.4 "multiplier[type, y]"
	Description string
}

// FixedFlow is a Transaction applying every FixedRow whose Month matches
// the current tick.
type FixedFlow struct {
	domain.BaseTransaction
	Rows      []FixedRow
	Inflation econ.CategoryInflationSeries
	StartYear int // simulation start year, the multiplier's reference point
}

func NewFixedFlow(rows []FixedRow, inflation econ.CategoryInflationSeries, startYear int) *FixedFlow {
	return &FixedFlow{
		BaseTransaction: domain.BaseTransaction{Label: "Fixed Flows"},
		Rows:            rows,
		Inflation:       inflation,
		StartYear:       startYear,
	}
}

// Apply fires every row whose Month equals ctx.Month, inflation-adjusted
// by the row's category multiplier relative to the simulation start
// year (spec.md §4.4).
func (f *FixedFlow) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	var total domain.TaxContribution
	for _, row := range f.Rows {
		if !row.Month.Equal(ctx.Month) {
			continue
		}
		total = total.Add(applyScheduledRow(ctx, row.Bucket, row.Amount, row.Category, row.Description, f.Inflation, f.StartYear, ctx.Month.Year))
	}
	return total
}

// applyScheduledRow is shared by Fixed and Recurring: inflate the
// amount, then deposit or withdraw (with pre-eligibility and
// cash-fallback routing) into the named bucket.
func applyScheduledRow(ctx *domain.ApplyContext, bucketName string, amount decimal.Decimal, category, description string, inflation econ.CategoryInflationSeries, baseYear, currentYear int) domain.TaxContribution {
	bucket := ctx.Bucket(bucketName)
	if bucket == nil {
		if ctx.Logger != nil {
			ctx.Logger.Printf("%s — bucket %q not found; scheduled row skipped", ctx.Month, bucketName)
		}
		return domain.TaxContribution{}
	}

	multiplier := inflation.Multiplier(category, baseYear, currentYear)
	inflated := amount.Mul(multiplier).Round(0)

	if inflated.Sign() >= 0 {
		bucket.Deposit(ctx.Ledger, inflated, description, ctx.Month, domain.LedgerKindDeposit)
		return domain.TaxContribution{}
	}

	needed := inflated.Neg()

	if bucket.Type.IsTaxAdvantaged() && ctx.PreEligible() {
		ctx.Cash.Withdraw(ctx.Ledger, ctx.Logger, needed, description, ctx.Month, domain.LedgerKindWithdraw)
		if ctx.Logger != nil {
			ctx.Logger.Printf("%s — pre-eligibility: routed withdrawal $%s from %q to Cash", ctx.Month, needed.StringFixed(2), bucketName)
		}
		return domain.TaxContribution{}
	}

	bucket.WithdrawWithCashFallback(ctx.Ledger, ctx.Logger, needed, description, ctx.Month, domain.LedgerKindWithdraw, ctx.Cash)
	return domain.TaxContribution{}
}
