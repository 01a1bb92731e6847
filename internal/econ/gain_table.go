package econ

import "github.com/shopspring/decimal"

// Regime is the return-distribution regime selected for an asset class
// in a given year, driven by that year's realized inflation versus the
// asset's configured thresholds. Adheres to spec.md's GLOSSARY entry.
type Regime string

const (
	RegimeLow     Regime = "Low"
	RegimeAverage Regime = "Average"
	RegimeHigh    Regime = "High"
)

// RegimeParams is a {mean, stddev} pair describing one asset class's
// monthly return distribution under a given Regime.
type RegimeParams struct {
	Mean   float64
	Stddev float64
}

// GainTable maps asset class -> regime -> RegimeParams, per spec.md §3's
// Gain Table data model, grounded on original_source/src/
// economic_factors.py's MarketGains.gain_table.
type GainTable map[string]map[Regime]RegimeParams

// InflationThreshold is one asset class's {low_cut, high_cut} pair used
// for regime selection.
type InflationThreshold struct {
	LowCut  decimal.Decimal
	HighCut decimal.Decimal
}

// InflationThresholds maps asset class -> InflationThreshold.
type InflationThresholds map[string]InflationThreshold

// SelectRegime chooses Low if rate < low_cut, High if rate > high_cut,
// Average otherwise. An asset class absent from thresholds defaults to
// {0, 0}, matching the Python prototype's
// `thresholds.get(cls_name, {"low": 0.0, "high": 0.0})`.
func (t InflationThresholds) SelectRegime(assetClass string, rate decimal.Decimal) Regime {
	th, ok := t[assetClass]
	if !ok {
		th = InflationThreshold{}
	}
	switch {
	case rate.LessThan(th.LowCut):
		return RegimeLow
	case rate.GreaterThan(th.HighCut):
		return RegimeHigh
	default:
		return RegimeAverage
	}
}
