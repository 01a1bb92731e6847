package domain

import "github.com/shopspring/decimal"

// AssetClass names a return distribution family (Stocks, Fixed-Income,
// Property, Cash, Vehicles, ...). Declared as a distinct type rather than
// a bare string so asset-class lookups read clearly at call sites.
type AssetClass string

// Holding is a weighted slice of a Bucket tied to an asset class.
// Adheres to the data model defined in spec.md §3.
type Holding struct {
	AssetClass   AssetClass
	TargetWeight decimal.Decimal // within-bucket weight; invariant: siblings sum to ~1.0
	Amount       decimal.Decimal
	CostBasis    *decimal.Decimal // optional; nil means "unknown basis"
}
