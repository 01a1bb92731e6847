package tax

import "github.com/shopspring/decimal"

// IRMAAPremium finds the tier containing magi (tiers must be sorted
// ascending by MAGICap; the last tier's cap is treated as +∞) and returns
// the combined Part B + Part D monthly premium including surcharge,
// doubled for MFJ filers. Grounded on spec.md §4.8 step 3 and §3's IRMAA
// tiers data model.
func IRMAAPremium(magi decimal.Decimal, tiers []IRMAATier, base MedicarePremiums, mfj bool) decimal.Decimal {
	tier := selectIRMAATier(magi, tiers)
	monthly := base.PartB.Add(base.PartD)
	if tier != nil {
		monthly = monthly.Add(tier.PartBSurcharge).Add(tier.PartDSurcharge)
	}
	if mfj {
		monthly = monthly.Mul(decimal.NewFromInt(2))
	}
	return monthly
}

func selectIRMAATier(magi decimal.Decimal, tiers []IRMAATier) *IRMAATier {
	for i, tier := range tiers {
		isLast := i == len(tiers)-1
		if magi.LessThanOrEqual(tier.MAGICap) || isLast {
			return &tiers[i]
		}
	}
	return nil
}
