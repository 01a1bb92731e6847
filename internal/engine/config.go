// Package engine implements spec.md §4.8's Forecast Engine: the
// per-trial monthly pipeline driver that ties the bucket model, economic
// sampling, scheduled/policy cash flows, refill/liquidation policy, and
// tax calculator together into one deterministic, reproducible trial.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
	"github.com/brightlineplan/forecastcore/internal/policyflows"
	"github.com/brightlineplan/forecastcore/internal/refill"
	"github.com/brightlineplan/forecastcore/internal/scheduled"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

// BucketConfig is the seed configuration for one bucket — spec.md §6's
// "Buckets config" input, plus its starting balances already folded into
// Holdings (the "Seed balances" input).
type BucketConfig struct {
	Name          string
	Type          domain.BucketType
	Holdings      []domain.Holding
	MayGoNegative bool
	CashFallback  bool
}

// CategoryInflationParams is one category's inflation draw distribution.
type CategoryInflationParams struct {
	Mean, Stddev float64
}

// SalaryParams configures spec.md §4.5's Salary policy. Rebuilt into a
// fresh *policyflows.SalaryPolicy per trial since the policy carries
// mutable compounding state.
type SalaryParams struct {
	AnnualGross, AnnualBonus decimal.Decimal
	BonusMonth               int
	MeritRate                decimal.Decimal
	MeritMonth               int
	Targets                  []policyflows.BucketShare
	RetirementMonth          domain.Month
}

// SocialSecurityParams configures one claimant's benefit.
type SocialSecurityParams struct {
	BirthMonth              domain.Month
	FullRetirementAgeMonths int
	ClaimAgeMonths          int
	FullMonthlyBenefit      decimal.Decimal
	PayoutPct               decimal.Decimal
	Target                  string
	InflationCategory       string
}

// RMDParams configures one Required Minimum Distribution rule.
type RMDParams struct {
	Month    int
	StartAge int
	Sources  []string
	Targets  []policyflows.BucketShare
}

// SEPPParams configures one 72(t) amortization window.
type SEPPParams struct {
	StartMonth, EndMonth domain.Month
	Source, Target       string
	Rate                 decimal.Decimal
}

// PropertyParams configures one mortgaged property.
type PropertyParams struct {
	Bucket                string
	RemainingPrincipal    decimal.Decimal
	APR                   decimal.Decimal
	MonthlyPI             decimal.Decimal
	MonthlyTaxes          decimal.Decimal
	MonthlyInsurance      decimal.Decimal
	MaintenanceRateAnnual decimal.Decimal
	MaintenanceCategory   string
	TaxesCategory         string
	InsuranceCategory     string
	StartYear             int
}

// RentParams configures the post-sale rent fallback for one property.
type RentParams struct {
	PropertyBucket  string
	MonthlyRentBase decimal.Decimal
	Category        string
	StartYear       int
}

// UnemploymentParams configures one unemployment benefit window.
type UnemploymentParams struct {
	StartMonth, EndMonth domain.Month
	MonthlyAmount        decimal.Decimal
	Target               string
}

// RothPhase is one age-windowed Roth conversion policy consulted at
// year-end reconciliation (spec.md §4.8 year-end step 1, §9's Roth phase
// state machine).
type RothPhase struct {
	Name            string
	MinAge, MaxAge  int
	Source, Target  string
	SourceThreshold decimal.Decimal
	MaxConversion   decimal.Decimal
	MaxTaxRate      decimal.Decimal
	AllowConversion bool
}

// Profile is the forecast holder's identity and externally supplied
// inputs — spec.md §6's Profile input.
type Profile struct {
	BirthMonth          domain.Month
	DependentBirthMonth *domain.Month
	EndMonth            domain.Month
	MAGI                map[int]decimal.Decimal
	MFJ                 bool
	RetirementMonth     domain.Month
	Medicare65Month     domain.Month
}

// DependentAge returns the dependent's age in whole years as of month, or
// nil if there is no configured dependent — used to select the
// marketplace family/couple rate (spec.md §4.8 step 2).
func (p Profile) DependentAge(month domain.Month) *int {
	if p.DependentBirthMonth == nil {
		return nil
	}
	age := p.DependentBirthMonth.MonthsUntil(month) / 12
	return &age
}

// Config is the process-wide, read-only configuration shared across
// every trial, built once and passed by pointer into each trial's
// Engine — per spec.md §9's "Global state... re-architect as a
// process-wide immutable configuration value" design note.
type Config struct {
	Months []domain.Month

	Buckets []BucketConfig

	FixedRows     []scheduled.FixedRow
	RecurringRows []scheduled.RecurringRow

	InflationYears      []int
	InflationBaseline   CategoryInflationParams
	InflationCategories map[string]CategoryInflationParams

	GainTable           econ.GainTable
	InflationThresholds econ.InflationThresholds

	Salary         *SalaryParams
	SocialSecurity []SocialSecurityParams
	RMD            []RMDParams
	SEPP           []SEPPParams
	Property       []PropertyParams
	Rent           []RentParams
	Unemployment   []UnemploymentParams
	RothPhases     []RothPhase

	Refill *refill.ThresholdRefillPolicy

	TaxConfig          *tax.Config
	TaxableEligibility domain.Month

	Profile     Profile
	YTDBaseline tax.YearlyLog

	TaxCollectionBucket string // defaults to "Tax Collection" if empty
}

func (cfg *Config) taxCollectionBucketName() string {
	if cfg.TaxCollectionBucket == "" {
		return "Tax Collection"
	}
	return cfg.TaxCollectionBucket
}
