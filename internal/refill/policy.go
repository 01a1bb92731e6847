// Package refill implements spec.md §4.6's Refill / Liquidation Policy:
// topping up cash-adjacent buckets from ordered sources when they fall
// below a threshold, and an emergency liquidation pass when Cash itself
// runs dry.
package refill

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

// penaltyAgeMonths is 59 years 6 months expressed in whole months — the
// early-withdrawal penalty boundary for tax-deferred distributions.
const penaltyAgeMonths = 59*12 + 6

// RefillTarget configures one bucket's refill behavior: once Bucket's
// balance falls below Threshold, draw up to RefillAmount from Sources in
// order until satisfied.
type RefillTarget struct {
	Bucket       string
	Threshold    decimal.Decimal
	RefillAmount decimal.Decimal
	Sources      []string
}

// LiquidationTarget is one (bucket, share) pair a Property sale's
// proceeds are split across.
type LiquidationTarget struct {
	Bucket string
	Share  decimal.Decimal
}

// ThresholdRefillPolicy is spec.md §4.6's State block: refill targets,
// the emergency liquidation floor and its ordered sources/targets, and
// the gating state (taxable_eligibility, sepp_window) that freezes
// tax-advantaged sources.
type ThresholdRefillPolicy struct {
	Targets              []RefillTarget
	LiquidationThreshold decimal.Decimal
	LiquidationSources   []string
	LiquidationTargets   []LiquidationTarget
	TaxableEligibility   domain.Month

	HasSEPPWindow bool
	SEPPStart     domain.Month
	SEPPEnd       domain.Month
}

func NewThresholdRefillPolicy(targets []RefillTarget, liquidationThreshold decimal.Decimal, liquidationSources []string, liquidationTargets []LiquidationTarget, taxableEligibility domain.Month) *ThresholdRefillPolicy {
	return &ThresholdRefillPolicy{
		Targets:              targets,
		LiquidationThreshold: liquidationThreshold,
		LiquidationSources:   liquidationSources,
		LiquidationTargets:   liquidationTargets,
		TaxableEligibility:   taxableEligibility,
	}
}

// WithSEPPWindow records the live SEPP window so refills never draw from
// a tax-deferred source while 72(t) payments are in progress (spec.md
// §8's universal invariant).
func (p *ThresholdRefillPolicy) WithSEPPWindow(start, end domain.Month) *ThresholdRefillPolicy {
	p.HasSEPPWindow = true
	p.SEPPStart = start
	p.SEPPEnd = end
	return p
}

func (p *ThresholdRefillPolicy) inSEPPWindow(m domain.Month) bool {
	return p.HasSEPPWindow && !m.Before(p.SEPPStart) && !m.After(p.SEPPEnd)
}

// GenerateRefills runs spec.md §4.6's refill generation pass: for every
// target below its threshold, draw from its ordered sources (skipping
// missing/empty sources, tax-advantaged sources before taxable
// eligibility, and tax-deferred sources during the SEPP window) until the
// configured refill amount is satisfied or sources are exhausted.
func (p *ThresholdRefillPolicy) GenerateRefills(ctx *domain.ApplyContext) domain.TaxContribution {
	var total domain.TaxContribution
	for _, t := range p.Targets {
		target := ctx.Bucket(t.Bucket)
		if target == nil {
			continue
		}
		if target.Balance().GreaterThanOrEqual(t.Threshold) {
			continue
		}
		need := t.RefillAmount
		if need.Sign() <= 0 {
			if ctx.Logger != nil {
				ctx.Logger.Printf("%s — refill amount for %q is 0; skipped", ctx.Month, t.Bucket)
			}
			continue
		}

		for _, srcName := range t.Sources {
			if need.Sign() <= 0 {
				break
			}
			source := ctx.Bucket(srcName)
			if source == nil || source.Balance().Sign() <= 0 {
				continue
			}
			if source.Type.IsTaxAdvantaged() && ctx.Month.Before(p.TaxableEligibility) {
				if ctx.Logger != nil {
					ctx.Logger.Printf("%s — pre-eligibility: refill source %q skipped", ctx.Month, srcName)
				}
				continue
			}
			if source.Type == domain.BucketTypeTaxDeferred && (ctx.SEPPActive || p.inSEPPWindow(ctx.Month)) {
				continue
			}

			transfer := decimal.Min(need, source.Balance())
			if transfer.Sign() <= 0 {
				continue
			}
			snap := snapshotBasis(source)
			moved := source.Transfer(ctx.Ledger, transfer, target, ctx.Month, domain.LedgerKindTransfer)
			if moved.Sign() <= 0 {
				continue
			}
			need = need.Sub(moved)
			total = total.Add(classifyWithdrawal(source.Type, moved, snap, false))
		}
	}
	return total
}

// GenerateLiquidations runs spec.md §4.6's liquidation pass: if Cash is
// still below liquidation_threshold after refills, draw from
// liquidation_sources in order. A Property source is sold in full and
// its proceeds split across liquidation_targets by share; any other
// source contributes min(balance, shortfall) straight to Cash, flagged
// for the 10% early-withdrawal penalty when it is tax-deferred and the
// holder is under 59 years 6 months old.
func (p *ThresholdRefillPolicy) GenerateLiquidations(ctx *domain.ApplyContext) domain.TaxContribution {
	var total domain.TaxContribution
	if ctx.Cash == nil {
		return total
	}
	shortfall := p.LiquidationThreshold.Sub(ctx.Cash.Balance())
	if shortfall.Sign() <= 0 {
		return total
	}

	for _, srcName := range p.LiquidationSources {
		if shortfall.Sign() <= 0 {
			break
		}
		if srcName == domain.CashBucketName {
			continue
		}
		source := ctx.Bucket(srcName)
		if source == nil {
			continue
		}

		if source.Type == domain.BucketTypeProperty {
			proceeds := source.PartialWithdraw(source.Balance())
			if proceeds.Sign() <= 0 {
				continue
			}
			distributed := p.distributeLiquidationProceeds(ctx, proceeds)
			shortfall = shortfall.Sub(distributed)
			continue
		}

		take := decimal.Min(shortfall, source.Balance())
		if take.Sign() <= 0 {
			continue
		}
		penaltyEligible := source.Type == domain.BucketTypeTaxDeferred && ctx.AgeMonths < penaltyAgeMonths
		snap := snapshotBasis(source)
		moved := source.Transfer(ctx.Ledger, take, ctx.Cash, ctx.Month, domain.LedgerKindTransfer)
		if moved.Sign() <= 0 {
			continue
		}
		total = total.Add(classifyWithdrawal(source.Type, moved, snap, penaltyEligible))
		shortfall = shortfall.Sub(moved)
	}
	return total
}

// distributeLiquidationProceeds splits proceeds across LiquidationTargets
// by share, depositing one ledger entry per target — spec.md §4.6's
// "Emit one transaction per target" for a Property sale.
func (p *ThresholdRefillPolicy) distributeLiquidationProceeds(ctx *domain.ApplyContext, proceeds decimal.Decimal) decimal.Decimal {
	names := make([]string, len(p.LiquidationTargets))
	weights := make(map[string]decimal.Decimal, len(p.LiquidationTargets))
	for i, t := range p.LiquidationTargets {
		names[i] = t.Bucket
		weights[t.Bucket] = t.Share
	}
	split := domain.AllocateProportional(proceeds, weights, names)

	distributed := decimal.Zero
	for _, name := range names {
		amount := split[name]
		bucket := ctx.Bucket(name)
		if bucket == nil || amount.Sign() <= 0 {
			if ctx.Logger != nil && bucket == nil {
				ctx.Logger.Printf("%s — liquidation target %q not found; share skipped", ctx.Month, name)
			}
			continue
		}
		bucket.Deposit(ctx.Ledger, amount, "Property Liquidation", ctx.Month, domain.LedgerKindDeposit)
		distributed = distributed.Add(amount)
	}
	return distributed
}
