// Command forecastsim is a demonstration driver for the forecast
// engine: it assembles one hardcoded retirement scenario, runs it
// across a batch of parallel trials, and logs a summary. Percentile
// aggregation, chart rendering, and CSV/JSON export are explicitly out
// of scope (spec.md §1) and are not implemented here — this command
// exists only to exercise internal/runner and internal/engine
// end-to-end.
package main

import (
	"log"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
	"github.com/brightlineplan/forecastcore/internal/engine"
	"github.com/brightlineplan/forecastcore/internal/refill"
	"github.com/brightlineplan/forecastcore/internal/runner"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

const numTrials = 500

func main() {
	cfg := buildScenario()

	log.Printf("running %d trials over %d months...", numTrials, len(cfg.Months))
	results := runner.RunTrials(cfg, numTrials, log.Default())

	fatal := runner.FatalTrialErrors(results)
	if len(fatal) > 0 {
		log.Printf("%d/%d trials failed; first failure: %v", len(fatal), numTrials, fatal[0])
	}

	summarizeEndingCash(results)
}

// buildScenario assembles a single retiree's Config: a 65-year-old
// retiring immediately, drawing Social Security, subject to IRMAA, with
// a refill policy keeping Cash topped up from a brokerage account.
func buildScenario() *engine.Config {
	retirementMonth := domain.NewMonth(2030, 1)
	birthMonth := domain.NewMonth(1965, 1)
	horizonEnd := domain.NewMonth(2055, 12)
	months := domain.MonthRange(retirementMonth, horizonEnd)

	buckets := []engine.BucketConfig{
		{
			Name: domain.CashBucketName, Type: domain.BucketTypeCash, MayGoNegative: true,
			Holdings: []domain.Holding{{AssetClass: "Cash", TargetWeight: decimal.NewFromInt(1), Amount: decimal.NewFromInt(30000)}},
		},
		{
			Name: "Brokerage", Type: domain.BucketTypeTaxable,
			Holdings: []domain.Holding{
				{AssetClass: "Stocks", TargetWeight: decimal.NewFromFloat(0.7), Amount: decimal.NewFromInt(700000)},
				{AssetClass: "Fixed-Income", TargetWeight: decimal.NewFromFloat(0.3), Amount: decimal.NewFromInt(300000)},
			},
		},
		{
			Name: "IRA", Type: domain.BucketTypeTaxDeferred,
			Holdings: []domain.Holding{{AssetClass: "Stocks", TargetWeight: decimal.NewFromInt(1), Amount: decimal.NewFromInt(500000)}},
		},
	}

	gainTable := econ.GainTable{
		"Stocks":       {econ.RegimeAverage: econ.RegimeParams{Mean: 0.006, Stddev: 0.035}},
		"Fixed-Income": {econ.RegimeAverage: econ.RegimeParams{Mean: 0.003, Stddev: 0.01}},
	}

	taxConfig := &tax.Config{
		BaseYear:          2030,
		StandardDeduction: decimal.NewFromInt(29200),
		OrdinaryBrackets: map[string]tax.Brackets{
			"federal": {
				{MinIncome: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
				{MinIncome: decimal.NewFromInt(94300), Rate: decimal.NewFromFloat(0.22)},
				{MinIncome: decimal.NewFromInt(201050), Rate: decimal.NewFromFloat(0.24)},
			},
		},
		LTCGBrackets: tax.Brackets{
			{MinIncome: decimal.Zero, Rate: decimal.NewFromFloat(0.0)},
			{MinIncome: decimal.NewFromInt(94050), Rate: decimal.NewFromFloat(0.15)},
		},
		SSTaxabilityBrackets: tax.Brackets{
			{MinIncome: decimal.Zero, Rate: decimal.NewFromFloat(0.0)},
			{MinIncome: decimal.NewFromInt(32000), Rate: decimal.NewFromFloat(0.50)},
			{MinIncome: decimal.NewFromInt(44000), Rate: decimal.NewFromFloat(0.85)},
		},
		IRMAATiers: []tax.IRMAATier{
			{MAGICap: decimal.NewFromInt(103000), PartBSurcharge: decimal.Zero, PartDSurcharge: decimal.Zero},
			{MAGICap: decimal.NewFromInt(129000), PartBSurcharge: decimal.NewFromInt(70), PartDSurcharge: decimal.NewFromInt(13)},
			{MAGICap: decimal.NewFromInt(161000), PartBSurcharge: decimal.NewFromInt(175), PartDSurcharge: decimal.NewFromInt(34)},
		},
		MedicareBase: tax.MedicarePremiums{PartB: decimal.NewFromInt(175), PartD: decimal.NewFromInt(35)},
		PenaltyRate:  decimal.NewFromFloat(0.10),
	}

	refillPolicy := refill.NewThresholdRefillPolicy(
		[]refill.RefillTarget{{Bucket: domain.CashBucketName, Threshold: decimal.NewFromInt(15000), RefillAmount: decimal.NewFromInt(25000), Sources: []string{"Brokerage", "IRA"}}},
		decimal.NewFromInt(5000),
		[]string{"Brokerage", "IRA"},
		nil,
		retirementMonth,
	)

	cfg := &engine.Config{
		Months:            months,
		Buckets:           buckets,
		GainTable:         gainTable,
		InflationBaseline: engine.CategoryInflationParams{Mean: 0.025, Stddev: 0.012},
		SocialSecurity: []engine.SocialSecurityParams{{
			BirthMonth: birthMonth, FullRetirementAgeMonths: 67 * 12, ClaimAgeMonths: 67 * 12,
			FullMonthlyBenefit: decimal.NewFromInt(2800), PayoutPct: decimal.NewFromInt(1), Target: domain.CashBucketName,
		}},
		RothPhases: []engine.RothPhase{{
			Name: "early-retirement-bracket-fill", MinAge: 65, MaxAge: 72,
			Source: "IRA", Target: "Roth", SourceThreshold: decimal.NewFromInt(10000),
			MaxConversion: decimal.NewFromInt(40000), MaxTaxRate: decimal.NewFromFloat(0.22), AllowConversion: true,
		}},
		Refill:             refillPolicy,
		TaxConfig:          taxConfig,
		TaxableEligibility: domain.NewMonth(2000, 1),
		Profile: engine.Profile{
			BirthMonth: birthMonth, RetirementMonth: retirementMonth, EndMonth: horizonEnd,
			MAGI: map[int]decimal.Decimal{2028: decimal.NewFromInt(90000), 2029: decimal.NewFromInt(92000)},
		},
	}
	return cfg
}

// summarizeEndingCash logs the median and P10/P90 ending Cash balance
// across all successful trials.
func summarizeEndingCash(results []runner.TrialResult) {
	var endings []decimal.Decimal
	for _, r := range results {
		if r.Err != nil || len(r.Output.Snapshots) == 0 {
			continue
		}
		last := r.Output.Snapshots[len(r.Output.Snapshots)-1]
		endings = append(endings, last.Balances[domain.CashBucketName])
	}
	if len(endings) == 0 {
		log.Printf("no successful trials to summarize")
		return
	}
	sort.Slice(endings, func(i, j int) bool { return endings[i].LessThan(endings[j]) })

	p := func(pct float64) decimal.Decimal {
		idx := int(float64(len(endings)-1) * pct)
		return endings[idx]
	}
	log.Printf("ending Cash across %d trials — p10=$%s median=$%s p90=$%s",
		len(endings), p(0.10).StringFixed(0), p(0.50).StringFixed(0), p(0.90).StringFixed(0))
}
