package refill

import (
	"github.com/shopspring/decimal"

	"github.com/brightlineplan/forecastcore/internal/domain"
)

var halfGainEstimate = decimal.NewFromFloat(0.5)

// basisSnapshot captures a bucket's total value and total known cost
// basis immediately before a withdrawal, so the withdrawn portion's
// embedded gain can be estimated proportionally afterward.
type basisSnapshot struct {
	totalValue decimal.Decimal
	totalBasis decimal.Decimal
	haveBasis  bool
}

func snapshotBasis(b *domain.Bucket) basisSnapshot {
	s := basisSnapshot{totalValue: decimal.Zero, totalBasis: decimal.Zero}
	for _, h := range b.Holdings {
		s.totalValue = s.totalValue.Add(h.Amount)
		if h.CostBasis != nil {
			s.haveBasis = true
			s.totalBasis = s.totalBasis.Add(*h.CostBasis)
		}
	}
	return s
}

// estimateGain returns the portion of amount that represents realized
// gain, using the bucket's pre-withdrawal value/basis ratio when known,
// falling back to spec.md §4.6's 50% heuristic when no holding in the
// bucket has a cost basis.
func (s basisSnapshot) estimateGain(amount decimal.Decimal) decimal.Decimal {
	if !s.haveBasis || s.totalValue.Sign() <= 0 {
		return amount.Mul(halfGainEstimate).Round(0)
	}
	gainRatio := decimal.NewFromInt(1).Sub(s.totalBasis.Div(s.totalValue))
	if gainRatio.IsNegative() {
		gainRatio = decimal.Zero
	}
	return amount.Mul(gainRatio).Round(0)
}

// classifyWithdrawal implements spec.md §4.6's RefillTransaction
// classification: ordinary_withdrawal for tax-deferred sources,
// taxable_gain (estimated) for taxable sources, tax_free_withdrawal for
// tax-free sources. penaltyEligible additionally marks the amount for
// the 10% early-withdrawal penalty at year-end (liquidation only).
func classifyWithdrawal(bt domain.BucketType, amount decimal.Decimal, snap basisSnapshot, penaltyEligible bool) domain.TaxContribution {
	if amount.Sign() <= 0 {
		return domain.TaxContribution{}
	}
	switch bt {
	case domain.BucketTypeTaxDeferred:
		c := domain.TaxContribution{TaxDeferredWithdrawal: amount}
		if penaltyEligible {
			c.PenaltyEligible = amount
		}
		return c
	case domain.BucketTypeTaxable:
		return domain.TaxContribution{TaxableGain: snap.estimateGain(amount)}
	case domain.BucketTypeTaxFree:
		return domain.TaxContribution{TaxFreeWithdrawal: amount}
	default:
		return domain.TaxContribution{}
	}
}
