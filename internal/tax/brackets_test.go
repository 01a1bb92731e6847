package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestBracketProgressiveOrdinaryTaxExample(t *testing.T) {
	// spec.md §8 scenario 2.
	brackets := Brackets{
		{MinIncome: d(0), Rate: d(0.10)},
		{MinIncome: d(22000), Rate: d(0.12)},
		{MinIncome: d(89450), Rate: d(0.22)},
	}

	got := BracketProgressive(d(100000), brackets)

	assert.True(t, got.Equal(d(12615)), "got %s", got)
}

func TestBracketProgressiveZeroOrNegativeIncomeIsZero(t *testing.T) {
	brackets := Brackets{{MinIncome: d(0), Rate: d(0.1)}}

	assert.True(t, BracketProgressive(d(0), brackets).IsZero())
	assert.True(t, BracketProgressive(d(-500), brackets).IsZero())
}

func TestBracketProgressiveTopBracketExtendsToInfinity(t *testing.T) {
	brackets := Brackets{
		{MinIncome: d(0), Rate: d(0.1)},
		{MinIncome: d(100), Rate: d(0.5)},
	}

	got := BracketProgressive(d(1_000_000), brackets)

	want := d(100).Mul(d(0.1)).Add(d(999900).Mul(d(0.5)))
	assert.True(t, got.Equal(want))
}

func TestBracketsScaleTo(t *testing.T) {
	brackets := Brackets{{MinIncome: d(10000), Rate: d(0.1)}}

	scaled := brackets.ScaleTo(d(1.05))

	assert.True(t, scaled[0].MinIncome.Equal(d(10500)))
	assert.True(t, scaled[0].Rate.Equal(d(0.1)))
}

func TestStackedBracketProgressiveLTCGOnOrdinaryFloor(t *testing.T) {
	brackets := Brackets{
		{MinIncome: d(0), Rate: d(0)},
		{MinIncome: d(50000), Rate: d(0.15)},
	}

	got := StackedBracketProgressive(d(40000), d(20000), brackets)

	// first 10000 of gains fills the 0% bracket up to 50000, remaining
	// 10000 taxed at 15%.
	assert.True(t, got.Equal(d(1500)), "got %s", got)
}
