package domain

import (
	"log"

	"github.com/shopspring/decimal"
)

// TaxContribution aggregates the categorized amounts a single Transaction
// contributes to the current year's tax log for the month it was applied.
// Mirrors the zero-default getters of original_source/src/transactions.py's
// Transaction base class (get_salary, get_social_security, get_withdrawal,
// get_taxable_gain), folded into one value type rather than four methods.
type TaxContribution struct {
	Salary                decimal.Decimal
	Unemployment          decimal.Decimal
	SocialSecurity        decimal.Decimal
	TaxDeferredWithdrawal decimal.Decimal // ordinary income; includes RMD, SEPP
	RothConversion        decimal.Decimal
	TaxableGain           decimal.Decimal
	TaxFreeWithdrawal     decimal.Decimal
	PenaltyEligible       decimal.Decimal
}

// Add returns the element-wise sum of c and o.
func (c TaxContribution) Add(o TaxContribution) TaxContribution {
	return TaxContribution{
		Salary:                c.Salary.Add(o.Salary),
		Unemployment:          c.Unemployment.Add(o.Unemployment),
		SocialSecurity:        c.SocialSecurity.Add(o.SocialSecurity),
		TaxDeferredWithdrawal: c.TaxDeferredWithdrawal.Add(o.TaxDeferredWithdrawal),
		RothConversion:        c.RothConversion.Add(o.RothConversion),
		TaxableGain:           c.TaxableGain.Add(o.TaxableGain),
		TaxFreeWithdrawal:     c.TaxFreeWithdrawal.Add(o.TaxFreeWithdrawal),
		PenaltyEligible:       c.PenaltyEligible.Add(o.PenaltyEligible),
	}
}

// ApplyContext carries everything a Transaction needs to execute itself for
// one calendar month: the bucket set, the audit ledger, a logger for
// operational warnings (pre-eligibility routing, cash fallback, penalty),
// and the holder's current eligibility state. Built fresh each month by
// internal/engine and passed by pointer — transactions never hold engine
// state between months.
type ApplyContext struct {
	Buckets            map[string]*Bucket
	Cash               *Bucket
	Ledger             *Ledger
	Logger             *log.Logger
	Month              Month
	AgeMonths          int // holder's age in whole months as of Month
	TaxableEligibility Month
	SEPPActive         bool
}

// Bucket looks up a named bucket, or nil if absent.
func (c *ApplyContext) Bucket(name string) *Bucket {
	if c.Buckets == nil {
		return nil
	}
	return c.Buckets[name]
}

// PreEligible reports whether Month precedes the configured
// taxable-eligibility month — the gate scheduled flows and refill
// sources check before drawing from a tax-advantaged bucket (spec.md
// §4.4, §4.6).
func (c *ApplyContext) PreEligible() bool {
	return c.Month.Before(c.TaxableEligibility)
}

// AgeYears is the holder's age in whole years as of Month.
func (c *ApplyContext) AgeYears() int {
	return c.AgeMonths / 12
}

// Transaction is the protocol every scheduled and policy cash flow
// implements: one Apply call per month, returning what it contributed to
// this year's tax log. Adheres to spec.md §2's Transaction Protocol
// module. Go has no tagged-union/sum-type construct, so design note §9's
// sum-type guidance is realized as an interface plus an embeddable
// zero-default base (BaseTransaction) rather than literal inheritance.
type Transaction interface {
	Name() string
	Apply(ctx *ApplyContext) TaxContribution
}

// BaseTransaction is embedded by every concrete Transaction. Its Apply is
// a zero-value no-op, matching the Python base class's zero-default
// getters; concrete types override Apply and inherit Name() for free.
type BaseTransaction struct {
	Label string
}

func (b BaseTransaction) Name() string { return b.Label }

func (b BaseTransaction) Apply(ctx *ApplyContext) TaxContribution {
	return TaxContribution{}
}
