package core

import (
	"fmt"
	"time"
)

// Period identifies a calendar month. Month is zero-based (0 = January,
// 11 = December), matching the stored record layout.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Dated is implemented by any record carrying a calendar period.
type Dated interface {
	Period() Period
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()) - 1, Year: t.Year()}
}

// Index maps the period onto a linear month axis so that adjacent months
// differ by exactly one, across year boundaries.
func (p Period) Index() int {
	return p.Year*12 + p.Month
}

// AddMonths returns the period n months after p. Negative n walks backwards,
// rolling over year boundaries.
func (p Period) AddMonths(n int) Period {
	idx := p.Index() + n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return Period{Month: month, Year: year}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month+1)
}

// FilterPeriod returns the records whose period matches p, preserving the
// original relative order.
func FilterPeriod[T Dated](records []T, p Period) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.Period() == p {
			out = append(out, r)
		}
	}
	return out
}

// FilterYear returns the records whose year matches, ignoring the month.
func FilterYear[T Dated](records []T, year int) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.Period().Year == year {
			out = append(out, r)
		}
	}
	return out
}

// PeriodsEndingAt returns the n calendar periods ending at p inclusive,
// oldest first. n <= 0 yields an empty slice.
func PeriodsEndingAt(p Period, n int) []Period {
	if n <= 0 {
		return []Period{}
	}
	periods := make([]Period, n)
	for i := 0; i < n; i++ {
		periods[i] = p.AddMonths(i - n + 1)
	}
	return periods
}
