package scheduled

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
)

// RecurringRow is one row of a Recurring schedule: an amount active for
// every month in [StartMonth, EndMonth] (EndMonth applies only when
// HasEnd is set; otherwise the row is open-ended). Adheres to spec.md
// §6's "Recurring rows {start_month,
// end_month?, bucket, amount, type, description}".
type RecurringRow struct {
	StartMonth  domain.Month
	EndMonth    domain.Month
	HasEnd      bool
	Bucket      string
	Amount      decimal.Decimal
	Category    string
	Description string
}

func (r RecurringRow) active(m domain.Month) bool {
	if m.Before(r.StartMonth) {
		return false
	}
	if r.HasEnd && m.After(r.EndMonth) {
		return false
	}
	return true
}

// RecurringFlow is a Transaction applying every RecurringRow active in
// the current tick. The inflation multiplier for each row is taken
// relative to that row's own start year, per
// original_source/src/rules_transactions.py's
// `base_year = row["Start Month"].year`.
type RecurringFlow struct {
	domain.BaseTransaction
	Rows      []RecurringRow
	Inflation econ.CategoryInflationSeries
}

func NewRecurringFlow(rows []RecurringRow, inflation econ.CategoryInflationSeries) *RecurringFlow {
	return &RecurringFlow{
		BaseTransaction: domain.BaseTransaction{Label: "Recurring Flows"},
		Rows:            rows,
		Inflation:       inflation,
	}
}

func (f *RecurringFlow) Apply(ctx *domain.ApplyContext) domain.TaxContribution {
	var total domain.TaxContribution
	for _, row := range f.Rows {
		if !row.active(ctx.Month) {
			continue
		}
		total = total.Add(applyScheduledRow(ctx, row.Bucket, row.Amount, row.Category, row.Description, f.Inflation, row.StartMonth.Year, ctx.Month.Year))
	}
	return total
}
