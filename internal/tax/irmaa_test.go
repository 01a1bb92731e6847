package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIRMAAPremiumSelectsTierAndDoublesForMFJ(t *testing.T) {
	tiers := []IRMAATier{
		{MAGICap: d(194000), PartBSurcharge: d(0), PartDSurcharge: d(0)},
		{MAGICap: d(246000), PartBSurcharge: d(70), PartDSurcharge: d(13)},
	}
	base := MedicarePremiums{PartB: d(175), PartD: d(35)}

	low := IRMAAPremium(d(100000), tiers, base, false)
	assert.True(t, low.Equal(d(210)))

	high := IRMAAPremium(d(250000), tiers, base, false)
	assert.True(t, high.Equal(d(293)))

	mfj := IRMAAPremium(d(100000), tiers, base, true)
	assert.True(t, mfj.Equal(d(420)))
}

func TestMarketplacePremiumStricterOfCapAndConfigured(t *testing.T) {
	cfg := MarketplacePremiums{FamilyMonthly: d(1800), CoupleMonthly: d(1200), CapPct: d(0.085)}

	// cap = 0.085*100000/12 ≈ 708.33, stricter than the 1200 couple rate.
	capped := MarketplacePremium(cfg, d(100000), nil)
	assert.True(t, capped.LessThan(d(1200)))

	age := 10
	family := MarketplacePremium(cfg, d(10000000), &age)
	assert.True(t, family.Equal(d(1800)))
}
