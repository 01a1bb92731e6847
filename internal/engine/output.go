package engine

import (
	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/econ"
	"github.com/brightlineplan/forecastcore/internal/tax"
)

// LedgerRow is one audit-ledger entry tagged with the trial it belongs
// to — spec.md §6's Ledger table output row.
type LedgerRow struct {
	domain.LedgerEntry
	TrialIndex int
}

// MonthlyReturnRow is one tick's sampled market-return record tagged
// with its trial — spec.md §6's Monthly returns table output row.
type MonthlyReturnRow struct {
	econ.MonthlyReturn
	TrialIndex int
}

// TrialOutput is one complete trial's result set: spec.md §6's four
// output tables plus any operational warnings raised along the way.
type TrialOutput struct {
	TrialIndex     int
	Snapshots      []MonthlySnapshot
	TaxRecords     []tax.Record
	MonthlyReturns []MonthlyReturnRow
	Ledger         []LedgerRow
	Warnings       []domain.Warning
}

// output assembles the trial's TrialOutput from accumulated state,
// attaching TrialIndex to every ledger and monthly-return row.
func (e *Engine) output() TrialOutput {
	entries := e.ledger.Entries()
	ledgerRows := make([]LedgerRow, len(entries))
	for i, entry := range entries {
		ledgerRows[i] = LedgerRow{LedgerEntry: entry, TrialIndex: e.trialIndex}
	}

	returnRows := make([]MonthlyReturnRow, len(e.monthlyReturns))
	for i, r := range e.monthlyReturns {
		returnRows[i] = MonthlyReturnRow{MonthlyReturn: r, TrialIndex: e.trialIndex}
	}

	return TrialOutput{
		TrialIndex:     e.trialIndex,
		Snapshots:      e.snapshots,
		TaxRecords:     e.taxRecords,
		MonthlyReturns: returnRows,
		Ledger:         ledgerRows,
		Warnings:       e.warnings,
	}
}
