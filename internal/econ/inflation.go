package econ

import "github.com/shopspring/decimal"

// YearInflation is one year's realized inflation draw and the cumulative
// modifier carried from the simulation's base year. Adheres to spec.md
// §3's Inflation Series data model.
type YearInflation struct {
	RealizedRate       decimal.Decimal
	CumulativeModifier decimal.Decimal
}

// InflationSeries maps simulation year to its YearInflation, grounded on
// original_source/src/economic_factors.py's InflationGenerator.generate.
type InflationSeries map[int]YearInflation

// GenerateInflation draws realized_rate[y] ~ Normal(mean, stddev), floored
// at 0 (a negative draw is treated as 0% inflation, per the Python
// prototype's `max(0.0, rng.normal(...))`), for each year in years (which
// must be given in ascending order so the cumulative product is
// well-defined), and accumulates cumulative_modifier[y] = ∏(1+rate[k])
// from the first year through y.
func GenerateInflation(rng *RNG, years []int, mean, stddev float64) InflationSeries {
	out := make(InflationSeries, len(years))
	modifier := decimal.NewFromInt(1)
	one := decimal.NewFromInt(1)
	for _, y := range years {
		rate := rng.Normal(mean, stddev)
		if rate < 0 {
			rate = 0
		}
		rateDec := decimal.NewFromFloat(rate)
		modifier = modifier.Mul(one.Add(rateDec))
		out[y] = YearInflation{RealizedRate: rateDec, CumulativeModifier: modifier}
	}
	return out
}

// CategoryInflationSeries holds one InflationSeries per scheduled-flow
// category (spec.md §4.4's "category rates are drawn independently per
// trial using the profile for T"), keyed by category label, plus a
// baseline series used when a category has no dedicated profile.
type CategoryInflationSeries struct {
	Baseline   InflationSeries
	ByCategory map[string]InflationSeries
}

// Multiplier returns the inflation multiplier for category at year y
// relative to startYear: ∏_{k=startYear..y} (1+rate[k]), using the
// category's own series when present, the baseline series otherwise.
func (c CategoryInflationSeries) Multiplier(category string, startYear, y int) decimal.Decimal {
	series, ok := c.ByCategory[category]
	if !ok {
		series = c.Baseline
	}
	if y < startYear {
		return decimal.NewFromInt(1)
	}
	startMod := decimal.NewFromInt(1)
	if startYear > 0 {
		if prev, ok := series[startYear-1]; ok {
			startMod = prev.CumulativeModifier
		}
	}
	endMod, ok := series[y]
	if !ok {
		return decimal.NewFromInt(1)
	}
	if startMod.IsZero() {
		return endMod.CumulativeModifier
	}
	return endMod.CumulativeModifier.Div(startMod)
}
