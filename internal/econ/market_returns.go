package econ

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

const fixedIncomeAssetClass = "Fixed-Income"

// MonthlyReturn is the metadata record produced once per tick by
// ApplyMarketReturns: the year's realized inflation rate and the sampled
// monthly return drawn for each asset class in the gain table, whether
// or not any bucket holds it. Adheres to spec.md §6's Monthly
// returns table output.
type MonthlyReturn struct {
	Month               domain.Month
	InflationRate       decimal.Decimal
	SampledReturn       map[string]decimal.Decimal
	FixedIncomeInterest decimal.Decimal // ordinary-income contribution this tick
}

// ApplyMarketReturns samples one Gaussian monthly return per asset class
// present across buckets (shared across every holding of that class, per
// original_source/src/economic_factors.py's MarketGains.apply), applies
// new_amount = old_amount*(1+delta) to every matching holding, and
// records a ledger entry per nonzero delta. Holdings in the
// "Fixed-Income" asset class inside taxable-type buckets are labeled
// "Fixed Income Interest" rather than "Market Gains/Losses" and their
// total is surfaced separately for the tax log (spec.md §4.2 special
// case). Must run after scheduled and policy flows have already mutated
// balances for the tick (spec.md §4.2 Ordering).
func ApplyMarketReturns(rng *RNG, buckets map[string]*domain.Bucket, ledger *domain.Ledger, gainTable GainTable, thresholds InflationThresholds, inflation InflationSeries, month domain.Month) MonthlyReturn {
	rate := decimal.Zero
	if yi, ok := inflation[month.Year]; ok {
		rate = yi.RealizedRate
	}

	classes := make([]string, 0, len(gainTable))
	for assetClass := range gainTable {
		classes = append(classes, assetClass)
	}
	sort.Strings(classes)

	sampled := make(map[string]decimal.Decimal, len(gainTable))
	for _, assetClass := range classes {
		regimes := gainTable[assetClass]
		regime := thresholds.SelectRegime(assetClass, rate)
		params, ok := regimes[regime]
		if !ok {
			sampled[assetClass] = decimal.Zero
			continue
		}
		sampled[assetClass] = decimal.NewFromFloat(rng.Normal(params.Mean, params.Stddev))
	}

	fixedIncomeInterest := decimal.Zero

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		bucket := buckets[name]
		for i := range bucket.Holdings {
			h := &bucket.Holdings[i]
			delta, ok := sampled[string(h.AssetClass)]
			if !ok {
				continue
			}
			change := h.Amount.Mul(delta).Round(0)
			if change.IsZero() {
				continue
			}
			h.Amount = h.Amount.Add(change)

			label := "Market Gains " + string(h.AssetClass)
			kind := domain.LedgerKindGain
			if change.Sign() < 0 {
				label = "Market Losses " + string(h.AssetClass)
				kind = domain.LedgerKindLoss
			}
			if h.AssetClass == fixedIncomeAssetClass && bucket.Type == domain.BucketTypeTaxable {
				label = "Fixed Income Interest"
				if change.Sign() > 0 {
					fixedIncomeInterest = fixedIncomeInterest.Add(change)
				}
			}
			amount := change.Abs()
			if change.Sign() > 0 {
				ledger.Add(month, label, bucket.Name, amount, kind)
			} else {
				ledger.Add(month, bucket.Name, label, amount, kind)
			}
		}
	}

	return MonthlyReturn{
		Month:               month,
		InflationRate:       rate,
		SampledReturn:       sampled,
		FixedIncomeInterest: fixedIncomeInterest,
	}
}
