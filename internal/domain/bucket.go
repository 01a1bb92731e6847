package domain

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
)

// BucketType classifies a Bucket for tax-treatment and eligibility gating
// purposes. Adheres to the data model defined in spec.md §3.
type BucketType string

const (
	BucketTypeCash        BucketType = "cash"
	BucketTypeTaxable     BucketType = "taxable"
	BucketTypeTaxDeferred BucketType = "tax-deferred"
	BucketTypeTaxFree     BucketType = "tax-free"
	BucketTypeProperty    BucketType = "property"
	BucketTypeOther       BucketType = "other"
)

// CashBucketName is the distinguished name used throughout the pipeline
// for liquidity: the cash-fallback target, the liquidation floor, and the
// bucket allowed to carry a negative balance after a tax shortfall.
const CashBucketName = "Cash"

// IsTaxAdvantaged reports whether withdrawals from a bucket of this type
// are subject to pre-eligibility and SEPP-window gating.
func (bt BucketType) IsTaxAdvantaged() bool {
	return bt == BucketTypeTaxDeferred || bt == BucketTypeTaxFree
}

// Bucket is a named balance container holding one or more weighted
// Holdings. Adheres to the data model defined in spec.md §3.
type Bucket struct {
	Name          string
	Type          BucketType
	Holdings      []Holding
	MayGoNegative bool
	CashFallback  bool
}

// Validate checks the structural invariants of a Bucket: non-empty name
// and holding weights summing to ~1.0 (tolerance 1e-6).
func (b *Bucket) Validate() error {
	if b.Name == "" {
		return errors.New("bucket name cannot be empty")
	}
	if len(b.Holdings) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, h := range b.Holdings {
		sum = sum.Add(h.TargetWeight)
	}
	tolerance := decimal.NewFromFloat(1e-6)
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(tolerance) {
		return errors.New("bucket holding weights must sum to ~1.0")
	}
	return nil
}

// Balance is the sum of all holdings' amounts.
func (b *Bucket) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, h := range b.Holdings {
		total = total.Add(h.Amount)
	}
	return total
}

func holdingKey(i int) string {
	// Stable synthetic key for AllocateProportional; not user-visible.
	return string(rune('a' + i%26))
}

// distribute allocates delta (positive for a deposit, negative for a
// withdrawal) across holdings by TargetWeight, with the last holding in
// declared order absorbing rounding residue so the bucket's balance moves
// by exactly delta.
func (b *Bucket) distribute(delta decimal.Decimal) {
	if len(b.Holdings) == 0 {
		return
	}
	weights := make(map[string]decimal.Decimal, len(b.Holdings))
	order := make([]string, len(b.Holdings))
	for i, h := range b.Holdings {
		key := holdingKey(i)
		order[i] = key
		weights[key] = h.TargetWeight
	}
	split := AllocateProportional(delta, weights, order)
	for i := range b.Holdings {
		b.Holdings[i].Amount = b.Holdings[i].Amount.Add(split[holdingKey(i)])
	}
}

// Deposit distributes amount across holdings proportionally by current
// weight; the final holding absorbs any rounding residue so the bucket's
// total grows by exactly amount. One ledger entry is recorded with the
// total amount.
func (b *Bucket) Deposit(ledger *Ledger, amount decimal.Decimal, source string, month Month, kind LedgerKind) {
	if amount.Sign() <= 0 {
		return
	}
	b.distribute(amount)
	if ledger != nil {
		ledger.Add(month, source, b.Name, amount, kind)
	}
}

// PartialWithdraw takes min(amount, balance) from the bucket's holdings,
// proportionally, never going negative. Returns the amount actually
// drawn. Does not record a ledger entry; callers that want an audit trail
// entry do so themselves (Withdraw, WithdrawWithCashFallback).
func (b *Bucket) PartialWithdraw(amount decimal.Decimal) decimal.Decimal {
	if amount.Sign() <= 0 {
		return decimal.Zero
	}
	draw := decimal.Min(amount, b.Balance())
	if draw.Sign() <= 0 {
		return decimal.Zero
	}
	b.distribute(draw.Neg())
	return draw
}

// Withdraw draws amount proportionally across holdings. If the bucket
// cannot go negative and the balance is insufficient, the withdrawal
// fails: it returns 0, logs a warning, and leaves the bucket untouched.
// If the bucket may go negative (the Cash bucket, typically), the full
// amount is taken and the bucket is allowed to go negative. Records one
// ledger entry with the amount actually moved.
func (b *Bucket) Withdraw(ledger *Ledger, logger *log.Logger, amount decimal.Decimal, target string, month Month, kind LedgerKind) decimal.Decimal {
	if amount.Sign() <= 0 {
		return decimal.Zero
	}
	bal := b.Balance()
	if bal.LessThan(amount) && !b.MayGoNegative {
		if logger != nil {
			logger.Printf("%s — insufficient balance in %q: have %s, need %s; withdrawal skipped", month, b.Name, bal.StringFixed(2), amount.StringFixed(2))
		}
		return decimal.Zero
	}
	b.distribute(amount.Neg())
	if ledger != nil {
		ledger.Add(month, b.Name, target, amount, kind)
	}
	return amount
}

// WithdrawWithCashFallback attempts a PartialWithdraw on the bucket
// itself; any shortfall is drawn from cash (which may overdraw if it
// allows it). Returns the total amount obtained across both buckets and
// records up to two ledger entries — grounded on the original Python
// prototype's FixedTransaction/RecurringTransaction cash-fallback routing
// (see SPEC_FULL.md §12).
func (b *Bucket) WithdrawWithCashFallback(ledger *Ledger, logger *log.Logger, amount decimal.Decimal, target string, month Month, kind LedgerKind, cash *Bucket) decimal.Decimal {
	if amount.Sign() <= 0 {
		return decimal.Zero
	}
	fromSelf := b.PartialWithdraw(amount)
	if fromSelf.Sign() > 0 && ledger != nil {
		ledger.Add(month, b.Name, target, fromSelf, kind)
	}
	shortfall := amount.Sub(fromSelf)
	if shortfall.Sign() <= 0 {
		return fromSelf
	}
	if cash == nil {
		return fromSelf
	}
	fromCash := cash.Withdraw(ledger, logger, shortfall, target, month, kind)
	if logger != nil && fromCash.Sign() > 0 {
		logger.Printf("%s — fallback: $%s pulled from Cash for %q", month, fromCash.StringFixed(2), b.Name)
	}
	return fromSelf.Add(fromCash)
}

// Transfer moves amount from b to target as a single ledger entry,
// internally performed as a withdraw+deposit pair. Used by refill and
// liquidation policy and by Roth conversion. Returns the amount actually
// transferred (may be less than requested if b cannot go negative and is
// underfunded).
func (b *Bucket) Transfer(ledger *Ledger, amount decimal.Decimal, target *Bucket, month Month, kind LedgerKind) decimal.Decimal {
	if amount.Sign() <= 0 || target == nil {
		return decimal.Zero
	}
	draw := amount
	if !b.MayGoNegative {
		draw = decimal.Min(amount, b.Balance())
	}
	if draw.Sign() <= 0 {
		return decimal.Zero
	}
	b.distribute(draw.Neg())
	target.distribute(draw)
	if ledger != nil {
		ledger.Add(month, b.Name, target.Name, draw, kind)
	}
	return draw
}
