package scheduled

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
)

func newTestContext(month domain.Month, taxableEligibility domain.Month, buckets ...*domain.Bucket) *domain.ApplyContext {
	m := make(map[string]*domain.Bucket, len(buckets))
	var cash *domain.Bucket
	for _, b := range buckets {
		m[b.Name] = b
		if b.Name == domain.CashBucketName {
			cash = b
		}
	}
	return &domain.ApplyContext{
		Buckets:            m,
		Cash:               cash,
		Ledger:             &domain.Ledger{},
		Month:              month,
		TaxableEligibility: taxableEligibility,
	}
}

func cashBucket(amount decimal.Decimal) *domain.Bucket {
	return &domain.Bucket{
		Name: domain.CashBucketName, Type: domain.BucketTypeCash, MayGoNegative: true,
		Holdings: []domain.Holding{{AssetClass: "Cash", TargetWeight: decimal.NewFromInt(1), Amount: amount}},
	}
}

func TestFixedFlowFiresExactlyOnMatchingMonth(t *testing.T) {
	brokerage := &domain.Bucket{
		Name: "Brokerage", Type: domain.BucketTypeTaxable,
		Holdings: []domain.Holding{{AssetClass: "Stocks", TargetWeight: decimal.NewFromInt(1), Amount: decimal.Zero}},
	}
	flow := NewFixedFlow([]FixedRow{
		{Month: domain.NewMonth(2030, 6), Bucket: "Brokerage", Amount: decimal.NewFromInt(5000), Description: "Gift"},
	}, econ.CategoryInflationSeries{}, 2030)

	ctx := newTestContext(domain.NewMonth(2030, 5), domain.NewMonth(2030, 1), brokerage, cashBucket(decimal.Zero))
	flow.Apply(ctx)
	assert.True(t, brokerage.Balance().IsZero())

	ctx = newTestContext(domain.NewMonth(2030, 6), domain.NewMonth(2030, 1), brokerage, cashBucket(decimal.Zero))
	flow.Apply(ctx)
	assert.True(t, brokerage.Balance().Equal(decimal.NewFromInt(5000)))
}

func TestFixedFlowRoutesPreEligibleWithdrawalToCash(t *testing.T) {
	rothIRA := &domain.Bucket{
		Name: "Roth IRA", Type: domain.BucketTypeTaxFree,
		Holdings: []domain.Holding{{AssetClass: "Stocks", TargetWeight: decimal.NewFromInt(1), Amount: decimal.NewFromInt(10000)}},
	}
	cash := cashBucket(decimal.NewFromInt(1000))
	flow := NewFixedFlow([]FixedRow{
		{Month: domain.NewMonth(2030, 1), Bucket: "Roth IRA", Amount: decimal.NewFromInt(-500), Description: "Early withdrawal"},
	}, econ.CategoryInflationSeries{}, 2030)

	ctx := newTestContext(domain.NewMonth(2030, 1), domain.NewMonth(2040, 1), rothIRA, cash)
	flow.Apply(ctx)

	assert.True(t, rothIRA.Balance().Equal(decimal.NewFromInt(10000)), "pre-eligibility bucket must be untouched")
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(500)))
}

func TestRecurringFlowActiveWithinWindowOnly(t *testing.T) {
	cash := cashBucket(decimal.NewFromInt(10000))
	flow := NewRecurringFlow([]RecurringRow{
		{StartMonth: domain.NewMonth(2030, 3), EndMonth: domain.NewMonth(2030, 5), HasEnd: true, Bucket: "Cash", Amount: decimal.NewFromInt(-100), Description: "Subscription"},
	}, econ.CategoryInflationSeries{})

	before := newTestContext(domain.NewMonth(2030, 2), domain.Month{}, cash)
	flow.Apply(before)
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(10000)))

	inWindow := newTestContext(domain.NewMonth(2030, 4), domain.Month{}, cash)
	flow.Apply(inWindow)
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(9900)))

	after := newTestContext(domain.NewMonth(2030, 6), domain.Month{}, cash)
	flow.Apply(after)
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(9900)))
}

func TestScheduledRowWarnsAndSkipsWhenBucketMissing(t *testing.T) {
	cash := cashBucket(decimal.Zero)
	flow := NewFixedFlow([]FixedRow{
		{Month: domain.NewMonth(2030, 1), Bucket: "Unknown", Amount: decimal.NewFromInt(100)},
	}, econ.CategoryInflationSeries{}, 2030)

	ctx := newTestContext(domain.NewMonth(2030, 1), domain.Month{}, cash)
	got := flow.Apply(ctx)

	require.True(t, got.Salary.IsZero())
	assert.Empty(t, ctx.Ledger.Entries())
}
