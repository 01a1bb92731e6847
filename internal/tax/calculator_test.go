package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		BaseYear:          2030,
		StandardDeduction: d(30000),
		OrdinaryBrackets: map[string]Brackets{
			"federal": {
				{MinIncome: d(0), Rate: d(0.10)},
				{MinIncome: d(22000), Rate: d(0.12)},
				{MinIncome: d(89450), Rate: d(0.22)},
			},
		},
		SocialSecurityWageBase: Brackets{{MinIncome: d(0), Rate: d(0.062)}},
		MedicareBrackets:       Brackets{{MinIncome: d(0), Rate: d(0.0145)}},
		LTCGBrackets: Brackets{
			{MinIncome: d(0), Rate: d(0)},
			{MinIncome: d(89250), Rate: d(0.15)},
		},
		SSTaxabilityBrackets: Brackets{
			{MinIncome: d(0), Rate: d(0)},
			{MinIncome: d(32000), Rate: d(0.5)},
			{MinIncome: d(44000), Rate: d(0.85)},
		},
		IRMAATiers: []IRMAATier{
			{MAGICap: d(194000), PartBSurcharge: d(0), PartDSurcharge: d(0)},
			{MAGICap: d(246000), PartBSurcharge: d(70), PartDSurcharge: d(13)},
		},
		MedicareBase: MedicarePremiums{PartB: d(175), PartD: d(35)},
		Marketplace:  MarketplacePremiums{FamilyMonthly: d(1800), CoupleMonthly: d(1200), CapPct: d(0.085)},
		PenaltyRate:  d(0.10),
	}
}

func TestCalculatorComputeAGIAndInvariants(t *testing.T) {
	calc := NewCalculator(testConfig())
	log := YearlyLog{
		Salary:                 d(120000),
		SocialSecurityBenefits: d(20000),
	}

	rec := calc.Compute(2030, log, decimal.NewFromInt(1), d(500000))

	require.True(t, rec.AGI.GreaterThan(decimal.Zero))
	assert.True(t, rec.TaxableIncome.LessThanOrEqual(rec.AGI))
	assert.True(t, rec.TotalTax.LessThanOrEqual(rec.AGI))
	assert.True(t, rec.EffectiveRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, rec.EffectiveRate.LessThanOrEqual(decimal.NewFromInt(1)))
}

func TestCalculatorComputeZeroAGIGivesZeroEffectiveRate(t *testing.T) {
	calc := NewCalculator(testConfig())

	rec := calc.Compute(2030, YearlyLog{}, decimal.NewFromInt(1), d(100000))

	assert.True(t, rec.EffectiveRate.IsZero())
}

func TestCalculatorMonthlyDripNeverNegative(t *testing.T) {
	calc := NewCalculator(testConfig())
	log := YearlyLog{Salary: d(50000), PaidYTD: d(999999)}

	drip := calc.MonthlyDrip(2030, log, decimal.NewFromInt(1), d(500000), 6)

	assert.True(t, drip.GreaterThanOrEqual(decimal.Zero))
}
