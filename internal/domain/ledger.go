package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerKind classifies a LedgerEntry for downstream audit filtering.
// Adheres to spec.md §2's Audit Ledger module.
type LedgerKind string

const (
	LedgerKindDeposit  LedgerKind = "deposit"
	LedgerKindWithdraw LedgerKind = "withdraw"
	LedgerKindTransfer LedgerKind = "transfer"
	LedgerKindGain     LedgerKind = "gain"
	LedgerKindLoss     LedgerKind = "loss"
	LedgerKindTax      LedgerKind = "tax"
)

// LedgerEntry is one append-only audit record of money moving between a
// named source and a named target bucket (or an external label, e.g.
// "Salary" or "IRS"). Mirrors the teacher's double-entry
// domain.TransactionEntry, generalized to the single-layer bucket model
// this spec uses, and grounded on original_source/src/audit.py's
// FlowTracker record shape.
type LedgerEntry struct {
	ID     uuid.UUID
	Month  Month
	Source string
	Target string
	Amount decimal.Decimal
	Kind   LedgerKind
}

// Ledger is the append-only audit trail for a single trial. Never
// mutated in place; entries are added only via Add.
type Ledger struct {
	entries []LedgerEntry
}

// Add appends one LedgerEntry and returns it.
func (l *Ledger) Add(month Month, source, target string, amount decimal.Decimal, kind LedgerKind) LedgerEntry {
	e := LedgerEntry{
		ID:     uuid.New(),
		Month:  month,
		Source: source,
		Target: target,
		Amount: amount,
		Kind:   kind,
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns the full append-only record, in insertion order.
func (l *Ledger) Entries() []LedgerEntry {
	return l.entries
}

// NetFlow sums signed flow for a given bucket name across all entries:
// positive for every entry where the bucket is the target, negative
// where it is the source. Used by the ledger-symmetry property test in
// spec.md §8 (every dollar that leaves a bucket lands somewhere, and vice
// versa, so net flow across all buckets in a closed system is zero).
func (l *Ledger) NetFlow(bucketName string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		if e.Target == bucketName {
			total = total.Add(e.Amount)
		}
		if e.Source == bucketName {
			total = total.Sub(e.Amount)
		}
	}
	return total
}

// ForMonth returns every entry recorded in the given month, in insertion
// order.
func (l *Ledger) ForMonth(month Month) []LedgerEntry {
	var out []LedgerEntry
	for _, e := range l.entries {
		if e.Month.Equal(month) {
			out = append(out, e)
		}
	}
	return out
}
