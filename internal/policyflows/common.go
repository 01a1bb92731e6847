// Package policyflows implements spec.md §2's Policy Flows subsystem:
// salary, Social Security, RMD, SEPP, property, rent, and unemployment.
// Roth conversion is handled by internal/engine directly (spec.md §4.5
// "Roth Conversion. Handled by Engine").
package policyflows

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

// BucketShare is one (bucket name, share) pair in an ordered distribution
// list. Order is significant: it is the deterministic iteration order
// used both for ledger-entry emission order and for
// domain.AllocateProportional's rounding-residue assignment, preserving
// spec.md §5's bit-identical-given-same-seed reproducibility guarantee.
type BucketShare struct {
	Bucket string
	Share  decimal.Decimal
}

// names returns the ordered bucket names of shares.
func names(shares []BucketShare) []string {
	out := make([]string, len(shares))
	for i, s := range shares {
		out[i] = s.Bucket
	}
	return out
}

// weights returns the share map keyed by bucket name.
func weights(shares []BucketShare) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(shares))
	for _, s := range shares {
		out[s.Bucket] = s.Share
	}
	return out
}

// distributeDeposit splits total across shares (in declared order) and
// deposits each portion into its target bucket, skipping buckets that
// are not configured on ctx (warning, not fatal — spec.md §7's
// config-error vs. operational-warning taxonomy treats a missing target
// bucket inside an otherwise-valid policy as a warning). Returns the
// per-bucket amount actually deposited, for callers that need to inspect
// where money landed (e.g. salary's tax-deferred exclusion).
func distributeDeposit(ctx *domain.ApplyContext, total decimal.Decimal, shares []BucketShare, source string, kind domain.LedgerKind) map[string]decimal.Decimal {
	split := domain.AllocateProportional(total, weights(shares), names(shares))
	deposited := make(map[string]decimal.Decimal, len(shares))
	for _, name := range names(shares) {
		amount := split[name]
		bucket := ctx.Bucket(name)
		if bucket == nil {
			if ctx.Logger != nil {
				ctx.Logger.Printf("%s — bucket %q not found; share skipped", ctx.Month, name)
			}
			continue
		}
		bucket.Deposit(ctx.Ledger, amount, source, ctx.Month, kind)
		deposited[name] = amount
	}
	return deposited
}
