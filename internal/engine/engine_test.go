package engine

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

func flatTaxConfig(rate float64) *tax.Config {
	return &tax.Config{
		OrdinaryBrackets: map[string]tax.Brackets{
			"federal": {{MinIncome: decimal.Zero, Rate: decimal.NewFromFloat(rate)}},
		},
		PenaltyRate: decimal.NewFromFloat(0.10),
	}
}

func cashBucket(amount decimal.Decimal) BucketConfig {
	return BucketConfig{
		Name: domain.CashBucketName, Type: domain.BucketTypeCash, MayGoNegative: true,
		Holdings: []domain.Holding{{AssetClass: "Cash", TargetWeight: decimal.NewFromInt(1), Amount: amount}},
	}
}

func iraBucket(amount decimal.Decimal) BucketConfig {
	return BucketConfig{
		Name: "IRA", Type: domain.BucketTypeTaxDeferred,
		Holdings: []domain.Holding{{AssetClass: "Stocks", TargetWeight: decimal.NewFromInt(1), Amount: amount}},
	}
}

// TestSEPPWindowProducesExactlyExpectedDeposits mirrors spec.md §8
// scenario 1: a $500,000 principal amortized at 5% for a 55-year-old
// (divisor 29.6) over a 60-month (5-year) window deposits the same
// amortized monthly payment every tick.
func TestSEPPWindowProducesExactlyExpectedDeposits(t *testing.T) {
	start := domain.NewMonth(2030, 1)
	end := domain.NewMonth(2034, 12)
	months := domain.MonthRange(start, end)
	if !assert.Len(t, months, 60) {
		t.FailNow()
	}

	principal := decimal.NewFromInt(500000)
	rate := decimal.NewFromFloat(0.05)
	divisor := 29.6
	denom := 1 - math.Pow(1.05, -divisor)
	wantMonthly := decimal.NewFromFloat(500000 * 0.05 / denom).Div(decimal.NewFromInt(12)).Round(0)

	cfg := &Config{
		Months:  months,
		Buckets: []BucketConfig{cashBucket(decimal.Zero), iraBucket(principal)},
		SEPP: []SEPPParams{{
			StartMonth: start, EndMonth: end, Source: "IRA", Target: domain.CashBucketName, Rate: rate,
		}},
		TaxConfig: flatTaxConfig(0),
		Profile: Profile{
			BirthMonth:      domain.NewMonth(1975, 1), // age 55 at window start
			RetirementMonth: start,                    // already retired: skip marketplace premium
			EndMonth:        end,
		},
	}

	e := NewEngine(cfg, 1, nil)
	out, err := e.Run()
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	var seppDeposits int
	var total decimal.Decimal
	for _, row := range out.Ledger {
		if row.Target == domain.CashBucketName && row.Source == "IRA" {
			seppDeposits++
			total = total.Add(row.Amount)
		}
	}
	assert.Equal(t, 60, seppDeposits, "one SEPP deposit per month in the window")
	assert.True(t, total.Equal(wantMonthly.Mul(decimal.NewFromInt(60))), "total transferred should be 60 * the cached monthly payment")

	last := out.Snapshots[len(out.Snapshots)-1]
	assert.True(t, last.Balances[domain.CashBucketName].Equal(wantMonthly.Mul(decimal.NewFromInt(60))))
}

// TestYearEndReconciliationPaysShortfallFromCash mirrors spec.md §8
// scenario 6's first case: Tax Collection holds $15,000 against a
// computed $18,000 total tax, so $15,000 comes from Tax Collection and
// the $3,000 remainder comes from Cash.
func TestYearEndReconciliationPaysShortfallFromCash(t *testing.T) {
	month := domain.NewMonth(2030, 12)
	cfg := &Config{
		Months:    []domain.Month{month},
		Buckets:   []BucketConfig{cashBucket(decimal.NewFromInt(50000))},
		TaxConfig: flatTaxConfig(0.18),
		Profile:   Profile{BirthMonth: domain.NewMonth(1960, 1), RetirementMonth: month},
	}
	e := NewEngine(cfg, 1, nil)
	e.buckets["Tax Collection"] = &domain.Bucket{
		Name: "Tax Collection", Type: domain.BucketTypeCash,
		Holdings: []domain.Holding{{AssetClass: "Cash", TargetWeight: decimal.NewFromInt(1), Amount: decimal.NewFromInt(15000)}},
	}
	e.yearlyLog.Salary = decimal.NewFromInt(100000) // taxableIncome 100000 * 18% = 18000

	err := e.yearEndReconciliation(month, decimal.NewFromInt(1))
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	assert.True(t, e.buckets["Tax Collection"].Balance().IsZero())
	assert.True(t, e.cash.Balance().Equal(decimal.NewFromInt(50000-3000)))
	if assert.Len(t, e.taxRecords, 1) {
		assert.True(t, e.taxRecords[0].TotalTax.Equal(decimal.NewFromInt(18000)))
	}
}

// TestYearEndReconciliationRefundsSurplusToCash mirrors spec.md §8
// scenario 6's second case: Tax Collection holds $15,000 against a
// computed $12,000 total tax, so $12,000 pays the tax and the remaining
// $3,000 refunds to Cash.
func TestYearEndReconciliationRefundsSurplusToCash(t *testing.T) {
	month := domain.NewMonth(2030, 12)
	cfg := &Config{
		Months:    []domain.Month{month},
		Buckets:   []BucketConfig{cashBucket(decimal.NewFromInt(50000))},
		TaxConfig: flatTaxConfig(0.12),
		Profile:   Profile{BirthMonth: domain.NewMonth(1960, 1), RetirementMonth: month},
	}
	e := NewEngine(cfg, 1, nil)
	e.buckets["Tax Collection"] = &domain.Bucket{
		Name: "Tax Collection", Type: domain.BucketTypeCash,
		Holdings: []domain.Holding{{AssetClass: "Cash", TargetWeight: decimal.NewFromInt(1), Amount: decimal.NewFromInt(15000)}},
	}
	e.yearlyLog.Salary = decimal.NewFromInt(100000) // 100000 * 12% = 12000

	err := e.yearEndReconciliation(month, decimal.NewFromInt(1))
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	assert.True(t, e.buckets["Tax Collection"].Balance().IsZero())
	assert.True(t, e.cash.Balance().Equal(decimal.NewFromInt(50000+3000)), "surplus $3,000 refunds to Cash")
	if assert.Len(t, e.taxRecords, 1) {
		assert.True(t, e.taxRecords[0].TotalTax.Equal(decimal.NewFromInt(12000)))
	}
}

// TestRothHeadroomZeroMaxRateYieldsZeroConversion mirrors spec.md §8's
// boundary behavior: max_tax_rate = 0 always yields conversion = 0.
func TestRothHeadroomZeroMaxRateYieldsZeroConversion(t *testing.T) {
	calc := tax.NewCalculator(flatTaxConfig(0.10))
	amount := rothHeadroom(calc, 2030, tax.YearlyLog{}, decimal.NewFromInt(1), decimal.NewFromInt(1000000), decimal.NewFromInt(50000), decimal.Zero)
	assert.True(t, amount.IsZero())
}

// TestRothHeadroomFindsLargestConversionUnderRateCap verifies the search
// picks the largest $1,000-stepped conversion that keeps the effective
// rate at or under the configured cap.
func TestRothHeadroomFindsLargestConversionUnderRateCap(t *testing.T) {
	calc := tax.NewCalculator(flatTaxConfig(0.20))
	amount := rothHeadroom(calc, 2030, tax.YearlyLog{}, decimal.NewFromInt(1), decimal.NewFromInt(1000000), decimal.NewFromInt(50000), decimal.NewFromFloat(0.20))
	// flat 20% rate means every positive conversion keeps effective rate
	// at exactly 0.20, so the full max_conversion should be reached.
	assert.True(t, amount.Equal(decimal.NewFromInt(50000)))
}

// TestBitIdenticalReproducibility verifies spec.md §5's determinism
// guarantee: two engines built from the same Config and trial index
// produce identical snapshots, tax records, and ledgers.
func TestBitIdenticalReproducibility(t *testing.T) {
	months := domain.MonthRange(domain.NewMonth(2030, 1), domain.NewMonth(2031, 12))
	cfg := &Config{
		Months: months,
		Buckets: []BucketConfig{
			cashBucket(decimal.NewFromInt(10000)),
			{
				Name: "Brokerage", Type: domain.BucketTypeTaxable,
				Holdings: []domain.Holding{{AssetClass: "Stocks", TargetWeight: decimal.NewFromInt(1), Amount: decimal.NewFromInt(200000)}},
			},
		},
		GainTable: econ.GainTable{
			"Stocks": {econ.RegimeAverage: econ.RegimeParams{Mean: 0.005, Stddev: 0.02}},
		},
		InflationBaseline: CategoryInflationParams{Mean: 0.02, Stddev: 0.01},
		TaxConfig: flatTaxConfig(0.15),
		Profile:   Profile{BirthMonth: domain.NewMonth(1970, 1), RetirementMonth: domain.NewMonth(2030, 1)},
	}

	e1 := NewEngine(cfg, 7, nil)
	out1, err1 := e1.Run()
	assert.NoError(t, err1)

	e2 := NewEngine(cfg, 7, nil)
	out2, err2 := e2.Run()
	assert.NoError(t, err2)

	assert.Equal(t, len(out1.Snapshots), len(out2.Snapshots))
	for i := range out1.Snapshots {
		for name, bal := range out1.Snapshots[i].Balances {
			assert.True(t, bal.Equal(out2.Snapshots[i].Balances[name]), "snapshot %d bucket %q diverged", i, name)
		}
	}
	assert.Equal(t, len(out1.Ledger), len(out2.Ledger))
	for i := range out1.Ledger {
		assert.True(t, out1.Ledger[i].Amount.Equal(out2.Ledger[i].Amount))
		assert.Equal(t, out1.Ledger[i].Source, out2.Ledger[i].Source)
		assert.Equal(t, out1.Ledger[i].Target, out2.Ledger[i].Target)
	}
}
