package refill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

func bucket(name string, bt domain.BucketType, amount decimal.Decimal, mayGoNegative bool) *domain.Bucket {
	return &domain.Bucket{
		Name: name, Type: bt, MayGoNegative: mayGoNegative,
		Holdings: []domain.Holding{{AssetClass: "Cash", TargetWeight: decimal.NewFromInt(1), Amount: amount}},
	}
}

func ctxWith(month domain.Month, ageMonths int, taxableEligibility domain.Month, buckets ...*domain.Bucket) *domain.ApplyContext {
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
		AgeMonths:          ageMonths,
		TaxableEligibility: taxableEligibility,
	}
}

// TestRefillCascadeSkipsTaxDeferredBeforeEligibility mirrors spec.md §8 scenario 4: Cash = $10,000 below a
// $30,000 threshold with a $20,000 refill amount, sourced first from a
// taxable Brokerage ($8,000) then a Tax-Deferred bucket ($50,000), with
// the holder still before taxable_eligibility so the tax-deferred source
// is skipped and only the $8,000 brokerage transfer lands.
func TestRefillCascadeSkipsTaxDeferredBeforeEligibility(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(10000), true)
	brokerage := bucket("Brokerage", domain.BucketTypeTaxable, decimal.NewFromInt(8000), false)
	ira := bucket("IRA", domain.BucketTypeTaxDeferred, decimal.NewFromInt(50000), false)

	policy := NewThresholdRefillPolicy(
		[]RefillTarget{{
			Bucket: domain.CashBucketName, Threshold: decimal.NewFromInt(30000),
			RefillAmount: decimal.NewFromInt(20000), Sources: []string{"Brokerage", "IRA"},
		}},
		decimal.NewFromInt(15000), nil, nil,
		domain.NewMonth(2040, 1),
	)

	ctx := ctxWith(domain.NewMonth(2030, 6), 50*12, domain.NewMonth(2040, 1), cash, brokerage, ira)
	contrib := policy.GenerateRefills(ctx)

	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(18000)), "only the $8,000 brokerage transfer should land")
	assert.True(t, brokerage.Balance().IsZero())
	assert.True(t, ira.Balance().Equal(decimal.NewFromInt(50000)), "tax-deferred source frozen before taxable_eligibility")
	assert.True(t, contrib.TaxableGain.Equal(decimal.NewFromInt(4000)), "50% gain heuristic on the $8,000 brokerage draw")

	liqContrib := policy.GenerateLiquidations(ctx)
	assert.True(t, liqContrib.Salary.IsZero()) // nothing liquidated; Cash ($18,000) already >= $15,000
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(18000)))
}

func TestRefillCascadeDrawsFromSecondSourceOnceEligible(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(10000), true)
	brokerage := bucket("Brokerage", domain.BucketTypeTaxable, decimal.NewFromInt(8000), false)
	ira := bucket("IRA", domain.BucketTypeTaxDeferred, decimal.NewFromInt(50000), false)

	policy := NewThresholdRefillPolicy(
		[]RefillTarget{{
			Bucket: domain.CashBucketName, Threshold: decimal.NewFromInt(30000),
			RefillAmount: decimal.NewFromInt(20000), Sources: []string{"Brokerage", "IRA"},
		}},
		decimal.NewFromInt(15000), nil, nil,
		domain.NewMonth(2020, 1),
	)

	ctx := ctxWith(domain.NewMonth(2030, 6), 50*12, domain.NewMonth(2020, 1), cash, brokerage, ira)
	contrib := policy.GenerateRefills(ctx)

	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(30000)))
	assert.True(t, brokerage.Balance().IsZero())
	assert.True(t, ira.Balance().Equal(decimal.NewFromInt(38000)), "the remaining $12,000 need comes from the IRA")
	assert.True(t, contrib.TaxDeferredWithdrawal.Equal(decimal.NewFromInt(12000)))
	assert.True(t, contrib.TaxableGain.Equal(decimal.NewFromInt(4000)))
}

func TestRefillFreezesTaxDeferredDuringSEPPWindow(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(5000), true)
	ira := bucket("IRA", domain.BucketTypeTaxDeferred, decimal.NewFromInt(50000), false)
	policy := NewThresholdRefillPolicy(
		[]RefillTarget{{Bucket: domain.CashBucketName, Threshold: decimal.NewFromInt(10000), RefillAmount: decimal.NewFromInt(5000), Sources: []string{"IRA"}}},
		decimal.Zero, nil, nil, domain.NewMonth(2020, 1),
	).WithSEPPWindow(domain.NewMonth(2030, 1), domain.NewMonth(2035, 1))

	ctx := ctxWith(domain.NewMonth(2031, 1), 55*12, domain.NewMonth(2020, 1), cash, ira)
	contrib := policy.GenerateRefills(ctx)

	assert.True(t, contrib.TaxDeferredWithdrawal.IsZero())
	assert.True(t, ira.Balance().Equal(decimal.NewFromInt(50000)))
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(5000)))
}

func TestLiquidationSellsPropertyInFullAndSplitsProceeds(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(5000), true)
	property := bucket("Property", domain.BucketTypeProperty, decimal.NewFromInt(200000), false)
	brokerage := bucket("Brokerage", domain.BucketTypeTaxable, decimal.Zero, false)

	policy := NewThresholdRefillPolicy(
		nil, decimal.NewFromInt(15000), []string{"Property"},
		[]LiquidationTarget{
			{Bucket: domain.CashBucketName, Share: decimal.NewFromFloat(0.2)},
			{Bucket: "Brokerage", Share: decimal.NewFromFloat(0.8)},
		},
		domain.NewMonth(2020, 1),
	)

	ctx := ctxWith(domain.NewMonth(2030, 1), 60*12, domain.NewMonth(2020, 1), cash, property, brokerage)
	policy.GenerateLiquidations(ctx)

	assert.True(t, property.Balance().IsZero())
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(5000+40000)))
	assert.True(t, brokerage.Balance().Equal(decimal.NewFromInt(160000)))
}

func TestLiquidationFlagsPenaltyEligibleBeforeFiftyNineAndAHalf(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(5000), true)
	ira := bucket("IRA", domain.BucketTypeTaxDeferred, decimal.NewFromInt(50000), false)

	policy := NewThresholdRefillPolicy(
		nil, decimal.NewFromInt(15000), []string{"IRA"}, nil, domain.NewMonth(2020, 1),
	)

	ctx := ctxWith(domain.NewMonth(2030, 1), 50*12, domain.NewMonth(2020, 1), cash, ira)
	contrib := policy.GenerateLiquidations(ctx)

	assert.True(t, contrib.TaxDeferredWithdrawal.Equal(decimal.NewFromInt(10000)))
	assert.True(t, contrib.PenaltyEligible.Equal(decimal.NewFromInt(10000)))
	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(15000)))
}

func TestLiquidationNotPenaltyEligibleAfterFiftyNineAndAHalf(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(5000), true)
	ira := bucket("IRA", domain.BucketTypeTaxDeferred, decimal.NewFromInt(50000), false)

	policy := NewThresholdRefillPolicy(
		nil, decimal.NewFromInt(15000), []string{"IRA"}, nil, domain.NewMonth(2020, 1),
	)

	ctx := ctxWith(domain.NewMonth(2030, 1), 60*12, domain.NewMonth(2020, 1), cash, ira)
	contrib := policy.GenerateLiquidations(ctx)

	assert.True(t, contrib.TaxDeferredWithdrawal.Equal(decimal.NewFromInt(10000)))
	assert.True(t, contrib.PenaltyEligible.IsZero())
}

func TestLiquidationStopsOnceShortfallSatisfied(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(14000), true)
	ira := bucket("IRA", domain.BucketTypeTaxDeferred, decimal.NewFromInt(50000), false)

	policy := NewThresholdRefillPolicy(nil, decimal.NewFromInt(15000), []string{"IRA"}, nil, domain.NewMonth(2020, 1))

	ctx := ctxWith(domain.NewMonth(2030, 1), 60*12, domain.NewMonth(2020, 1), cash, ira)
	policy.GenerateLiquidations(ctx)

	assert.True(t, cash.Balance().Equal(decimal.NewFromInt(15000)))
	assert.True(t, ira.Balance().Equal(decimal.NewFromInt(49000)))
}

func TestLiquidationNoOpWhenCashAlreadyAboveThreshold(t *testing.T) {
	cash := bucket(domain.CashBucketName, domain.BucketTypeCash, decimal.NewFromInt(20000), true)
	ira := bucket("IRA", domain.BucketTypeTaxDeferred, decimal.NewFromInt(50000), false)

	policy := NewThresholdRefillPolicy(nil, decimal.NewFromInt(15000), []string{"IRA"}, nil, domain.NewMonth(2020, 1))
	ctx := ctxWith(domain.NewMonth(2030, 1), 60*12, domain.NewMonth(2020, 1), cash, ira)
	contrib := policy.GenerateLiquidations(ctx)

	assert.True(t, contrib.TaxDeferredWithdrawal.IsZero())
	assert.True(t, ira.Balance().Equal(decimal.NewFromInt(50000)))
}
