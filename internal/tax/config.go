package tax

import "github.com/shopspring/decimal"

// IRMAATier is one {MAGI cap, Part B surcharge, Part D surcharge} row.
// The last tier's cap is treated as +∞. Adheres to spec.md §3's IRMAA
// tiers data model.
type IRMAATier struct {
	MAGICap        decimal.Decimal
	PartBSurcharge decimal.Decimal
	PartDSurcharge decimal.Decimal
}

// MedicarePremiums is the base monthly Part B / Part D premium before
// any IRMAA surcharge.
type MedicarePremiums struct {
	PartB decimal.Decimal
	PartD decimal.Decimal
}

// MarketplacePremiums is the configured monthly premium for the two plan
// shapes spec.md §4.8 step 2 distinguishes by dependent age.
type MarketplacePremiums struct {
	FamilyMonthly decimal.Decimal
	CoupleMonthly decimal.Decimal
	CapPct        decimal.Decimal // e.g. 0.085 for the 8.5%-of-MAGI cap
}

// Config is the process-wide, read-only set of base-year (un-indexed)
// tax inputs: standard deduction, ordinary brackets by jurisdiction,
// payroll brackets, LTCG brackets, SS-taxability brackets, IRMAA tiers,
// and Medicare/marketplace premiums. Built once and shared across every
// trial per SPEC_FULL.md §10's immutable-configuration guidance; never
// mutated after construction.
type Config struct {
	BaseYear               int
	StandardDeduction      decimal.Decimal
	OrdinaryBrackets       map[string]Brackets // jurisdiction label -> brackets
	SocialSecurityWageBase Brackets
	MedicareBrackets       Brackets
	LTCGBrackets           Brackets
	SSTaxabilityBrackets   Brackets // provisional income -> inclusion rate
	IRMAATiers             []IRMAATier
	MedicareBase           MedicarePremiums
	Marketplace            MarketplacePremiums
	PenaltyRate            decimal.Decimal // 0.10, spec.md §4.7 step 7
}

// IndexedBrackets returns cfg's dollar-denominated bracket tables scaled
// by the given cumulative inflation modifier (spec.md §3 "All dollar
// thresholds and deductions are inflation-indexed by cumulative modifier
// from the simulation base year").
type IndexedBrackets struct {
	StandardDeduction      decimal.Decimal
	Ordinary               map[string]Brackets
	SocialSecurityWageBase Brackets
	Medicare               Brackets
	LTCG                   Brackets
	SSTaxability           Brackets
	IRMAATiers             []IRMAATier
}

// IndexForYear scales every dollar threshold in cfg by modifier.
func (cfg *Config) IndexForYear(modifier decimal.Decimal) IndexedBrackets {
	ordinary := make(map[string]Brackets, len(cfg.OrdinaryBrackets))
	for jurisdiction, brackets := range cfg.OrdinaryBrackets {
		ordinary[jurisdiction] = brackets.ScaleTo(modifier)
	}
	irmaa := make([]IRMAATier, len(cfg.IRMAATiers))
	for i, tier := range cfg.IRMAATiers {
		irmaa[i] = IRMAATier{
			MAGICap:        tier.MAGICap.Mul(modifier).Round(0),
			PartBSurcharge: tier.PartBSurcharge,
			PartDSurcharge: tier.PartDSurcharge,
		}
	}
	return IndexedBrackets{
		StandardDeduction:      cfg.StandardDeduction.Mul(modifier).Round(0),
		Ordinary:               ordinary,
		SocialSecurityWageBase: cfg.SocialSecurityWageBase.ScaleTo(modifier),
		Medicare:               cfg.MedicareBrackets.ScaleTo(modifier),
		LTCG:                   cfg.LTCGBrackets.ScaleTo(modifier),
		SSTaxability:           cfg.SSTaxabilityBrackets.ScaleTo(modifier),
		IRMAATiers:             irmaa,
	}
}
