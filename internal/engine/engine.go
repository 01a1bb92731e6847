package engine

import (
	"fmt"
	"log"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
	"github.com/brightlineplan/forecastcore/internal/policyflows"
	"github.com/brightlineplan/forecastcore/internal/scheduled"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

// MonthlySnapshot is one tick's per-bucket balance record — spec.md §6's
// "Monthly snapshot table" output row.
type MonthlySnapshot struct {
	Month    domain.Month
	Balances map[string]decimal.Decimal
}

// Engine owns one trial's complete mutable state: its buckets, ledger,
// RNG, inflation draws, tax log, and the policy/scheduled-flow instances
// built fresh from the shared Config. Per spec.md §5, an Engine is used
// by exactly one goroutine for its entire lifetime and shares nothing
// mutable with any other trial's Engine.
type Engine struct {
	cfg        *Config
	trialIndex int
	logger     *log.Logger

	rng     *econ.RNG
	buckets map[string]*domain.Bucket
	cash    *domain.Bucket
	ledger  *domain.Ledger

	inflation     econ.CategoryInflationSeries
	fixedFlow     *scheduled.FixedFlow
	recurringFlow *scheduled.RecurringFlow
	policies      []domain.Transaction
	sepps         []*policyflows.SEPPPolicy

	calculator    *tax.Calculator
	yearlyLog     tax.YearlyLog
	baseYearIndex int // first simulation year, for the YTD-baseline-only-on-year-1 rule

	taxRecords     []tax.Record
	snapshots      []MonthlySnapshot
	monthlyReturns []econ.MonthlyReturn
	warnings       []domain.Warning
}

// NewEngine builds a fresh, independent trial from cfg, seeded
// deterministically by trialIndex (spec.md §5 "Determinism"). logger
// defaults to log.Default() when nil.
func NewEngine(cfg *Config, trialIndex int, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}

	e := &Engine{
		cfg:        cfg,
		trialIndex: trialIndex,
		logger:     logger,
		rng:        econ.NewRNG(trialIndex),
		ledger:     &domain.Ledger{},
		calculator: tax.NewCalculator(cfg.TaxConfig),
	}

	e.buckets = make(map[string]*domain.Bucket, len(cfg.Buckets))
	for _, bc := range cfg.Buckets {
		holdings := make([]domain.Holding, len(bc.Holdings))
		copy(holdings, bc.Holdings)
		e.buckets[bc.Name] = &domain.Bucket{
			Name: bc.Name, Type: bc.Type, Holdings: holdings,
			MayGoNegative: bc.MayGoNegative, CashFallback: bc.CashFallback,
		}
	}
	e.cash = e.buckets[domain.CashBucketName]

	taxCollectionName := cfg.taxCollectionBucketName()
	if _, ok := e.buckets[taxCollectionName]; !ok {
		e.buckets[taxCollectionName] = &domain.Bucket{
			Name: taxCollectionName, Type: domain.BucketTypeCash,
			Holdings: []domain.Holding{{AssetClass: "Cash", TargetWeight: decimal.NewFromInt(1), Amount: decimal.Zero}},
		}
	}

	years := make([]int, 0, len(cfg.Months))
	seen := make(map[int]bool)
	for _, m := range cfg.Months {
		if !seen[m.Year] {
			seen[m.Year] = true
			years = append(years, m.Year)
		}
	}
	if len(years) > 0 {
		e.baseYearIndex = years[0]
	}

	e.inflation = e.buildInflation(years)
	e.fixedFlow = scheduled.NewFixedFlow(cfg.FixedRows, e.inflation, e.baseYearIndex)
	e.recurringFlow = scheduled.NewRecurringFlow(cfg.RecurringRows, e.inflation)
	e.policies = e.buildPolicies()

	return e
}

func (e *Engine) buildInflation(years []int) econ.CategoryInflationSeries {
	baseline := econ.GenerateInflation(e.rng, years, e.cfg.InflationBaseline.Mean, e.cfg.InflationBaseline.Stddev)
	byCategory := make(map[string]econ.InflationSeries, len(e.cfg.InflationCategories))
	categories := make([]string, 0, len(e.cfg.InflationCategories))
	for category := range e.cfg.InflationCategories {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		params := e.cfg.InflationCategories[category]
		byCategory[category] = econ.GenerateInflation(e.rng, years, params.Mean, params.Stddev)
	}
	return econ.CategoryInflationSeries{Baseline: baseline, ByCategory: byCategory}
}

// buildPolicies rebuilds every non-SEPP policy flow (spec.md §4.8 step 5)
// from cfg's parameter structs, fresh for this trial, and returns them;
// the SEPP policies are built into e.sepps as a side effect — salary and
// social-security carry mutable per-trial state, so they must never be
// shared across trials.
func (e *Engine) buildPolicies() []domain.Transaction {
	var out []domain.Transaction

	if e.cfg.Salary != nil {
		s := e.cfg.Salary
		out = append(out, policyflows.NewSalaryPolicy(s.AnnualGross, s.AnnualBonus, s.BonusMonth, s.MeritRate, s.MeritMonth, s.Targets, s.RetirementMonth))
	}
	for _, s := range e.cfg.SocialSecurity {
		series := e.inflation.Baseline
		if s.InflationCategory != "" {
			if cat, ok := e.inflation.ByCategory[s.InflationCategory]; ok {
				series = cat
			}
		}
		out = append(out, policyflows.NewSocialSecurityPolicy(s.BirthMonth, s.FullRetirementAgeMonths, s.ClaimAgeMonths, s.FullMonthlyBenefit, s.PayoutPct, s.Target, series))
	}
	for _, r := range e.cfg.RMD {
		out = append(out, policyflows.NewRMDPolicy(r.Month, r.StartAge, r.Sources, r.Targets))
	}
	for _, p := range e.cfg.Property {
		out = append(out, policyflows.NewPropertyPolicy(p.Bucket, p.RemainingPrincipal, p.APR, p.MonthlyPI, p.MonthlyTaxes, p.MonthlyInsurance, p.MaintenanceRateAnnual, e.inflation, p.StartYear))
	}
	for _, r := range e.cfg.Rent {
		out = append(out, policyflows.NewRentPolicy(r.PropertyBucket, r.MonthlyRentBase, r.Category, e.inflation, r.StartYear))
	}
	for _, u := range e.cfg.Unemployment {
		out = append(out, policyflows.NewUnemploymentPolicy(u.StartMonth, u.EndMonth, u.MonthlyAmount, u.Target))
	}

	for _, s := range e.cfg.SEPP {
		e.sepps = append(e.sepps, policyflows.NewSEPPPolicy(s.StartMonth, s.EndMonth, s.Source, s.Target, s.Rate))
	}

	return out
}

// ageMonths returns the holder's age in whole months as of month.
func (e *Engine) ageMonths(month domain.Month) int {
	return e.cfg.Profile.BirthMonth.MonthsUntil(month)
}

// anySEPPActive reports whether any configured SEPP window covers month.
func (e *Engine) anySEPPActive(month domain.Month) bool {
	for _, s := range e.sepps {
		if s.InWindow(month) {
			return true
		}
	}
	return false
}

func (e *Engine) contextFor(month domain.Month) *domain.ApplyContext {
	return &domain.ApplyContext{
		Buckets:            e.buckets,
		Cash:               e.cash,
		Ledger:             e.ledger,
		Logger:             e.logger,
		Month:              month,
		AgeMonths:          e.ageMonths(month),
		TaxableEligibility: e.cfg.TaxableEligibility,
		SEPPActive:         e.anySEPPActive(month),
	}
}

func (e *Engine) warn(month domain.Month, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	e.warnings = append(e.warnings, domain.Warning{Month: month, Message: msg})
	if e.logger != nil {
		e.logger.Printf("%s — %s", month, msg)
	}
}
