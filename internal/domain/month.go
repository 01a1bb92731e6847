package domain

import "fmt"

// Month is a calendar year+month pair. Comparisons and arithmetic are
// calendar-month-exact, per specs.md's Month data model.
type Month struct {
	Year  int
	Month int // 1..12
}

// NewMonth normalizes month overflow/underflow (e.g. month 13 of 2030
// becomes January 2031) the way calendar arithmetic is expected to behave.
func NewMonth(year, month int) Month {
	y, m := year, month
	for m < 1 {
		m += 12
		y--
	}
	for m > 12 {
		m -= 12
		y++
	}
	return Month{Year: y, Month: m}
}

// Index is a total ordering key: Year*12+Month, monotonically increasing.
func (m Month) Index() int {
	return m.Year*12 + m.Month
}

// Before reports whether m occurs strictly before other.
func (m Month) Before(other Month) bool { return m.Index() < other.Index() }

// After reports whether m occurs strictly after other.
func (m Month) After(other Month) bool { return m.Index() > other.Index() }

// Equal reports whether m and other name the same calendar month.
func (m Month) Equal(other Month) bool { return m.Index() == other.Index() }

// Add returns the month n calendar months after m (n may be negative).
func (m Month) Add(n int) Month {
	return NewMonth(m.Year, m.Month+n)
}

// MonthsUntil returns the number of calendar months from m to other
// (negative if other precedes m).
func (m Month) MonthsUntil(other Month) int {
	return other.Index() - m.Index()
}

// IsDecember reports whether m falls in December, the trigger month for
// year-end reconciliation.
func (m Month) IsDecember() bool { return m.Month == 12 }

// IsJanuary reports whether m falls in January.
func (m Month) IsJanuary() bool { return m.Month == 1 }

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// MonthRange returns every Month from start to end inclusive, ascending.
func MonthRange(start, end Month) []Month {
	if end.Before(start) {
		return nil
	}
	n := end.Index() - start.Index() + 1
	out := make([]Month, n)
	for i := 0; i < n; i++ {
		out[i] = start.Add(i)
	}
	return out
}
