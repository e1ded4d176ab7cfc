// Package report computes derived financial state from the record store:
// period totals, budget-health classification and financing amortization.
// Everything here is pure and recomputed in full on each call; there is no
// cached aggregate to invalidate.
package report

import (
	"financepro/internal/core"
)

// valued is satisfied by every record carrying a monetary value.
type valued interface {
	Amount() float64
}

// SumValues totals the monetary value of a record set. The empty set sums
// to zero, and the sum distributes over concatenation.
func SumValues[T valued](records []T) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount()
	}
	return total
}

// PeriodTotals pairs one calendar period with its income and expense totals.
type PeriodTotals struct {
	Period  core.Period `json:"period"`
	Income  float64     `json:"income"`
	Expense float64     `json:"expense"`
}

// Summary is the dashboard aggregate for a single period.
type Summary struct {
	Period            core.Period    `json:"period"`
	TotalIncome       float64        `json:"totalIncome"`
	TotalExpense      float64        `json:"totalExpense"`
	NetResult         float64        `json:"netResult"`
	CumulativeIncome  float64        `json:"cumulativeIncome"`
	CumulativeExpense float64        `json:"cumulativeExpense"`
	CumulativeNet     float64        `json:"cumulativeNet"`
	TotalInvested     float64        `json:"totalInvested"`
	ExpenseRatio      float64        `json:"expenseRatio"`
	Tier              Tier           `json:"tier"`
	TierLabel         string         `json:"tierLabel"`
	GoalTarget        *float64       `json:"goalTarget,omitempty"`
	TrailingSeries    []PeriodTotals `json:"trailingSeries"`
}

// TrailingSeriesLength is how many periods the dashboard trend covers.
const TrailingSeriesLength = 6

// Aggregator computes derived values over one immutable snapshot of the
// record store. Take a fresh snapshot after every mutation.
type Aggregator struct {
	data core.AppData
}

// NewAggregator wraps a store snapshot.
func NewAggregator(data core.AppData) *Aggregator {
	return &Aggregator{data: data}
}

// MonthlyIncomeTotal sums incomes belonging to p.
func (a *Aggregator) MonthlyIncomeTotal(p core.Period) float64 {
	return SumValues(core.FilterPeriod(a.data.Incomes, p))
}

// MonthlyExpenseTotal sums expenses belonging to p.
func (a *Aggregator) MonthlyExpenseTotal(p core.Period) float64 {
	return SumValues(core.FilterPeriod(a.data.Expenses, p))
}

// YearlyIncomeTotal sums incomes for a whole year.
func (a *Aggregator) YearlyIncomeTotal(year int) float64 {
	return SumValues(core.FilterYear(a.data.Incomes, year))
}

// YearlyExpenseTotal sums expenses for a whole year.
func (a *Aggregator) YearlyExpenseTotal(year int) float64 {
	return SumValues(core.FilterYear(a.data.Expenses, year))
}

// CumulativeIncome sums every income record ever stored.
func (a *Aggregator) CumulativeIncome() float64 {
	return SumValues(a.data.Incomes)
}

// CumulativeExpense sums every expense record ever stored.
func (a *Aggregator) CumulativeExpense() float64 {
	return SumValues(a.data.Expenses)
}

// NetResult is monthly income minus monthly expense. It may be negative.
func (a *Aggregator) NetResult(p core.Period) float64 {
	return a.MonthlyIncomeTotal(p) - a.MonthlyExpenseTotal(p)
}

// CumulativeNetResult is all-time income minus all-time expense.
func (a *Aggregator) CumulativeNetResult() float64 {
	return a.CumulativeIncome() - a.CumulativeExpense()
}

// TotalInvested flattens every contribution of every investment into one sum.
func (a *Aggregator) TotalInvested() float64 {
	var total float64
	for _, inv := range a.data.Investments {
		total += SumValues(inv.Contributions)
	}
	return total
}

// ExpenseRatio is monthly expenses over monthly income as a percentage.
// With zero income the ratio is reported as zero; the classifier carries
// the zero-income-with-spending degenerate case.
func (a *Aggregator) ExpenseRatio(p core.Period) float64 {
	income := a.MonthlyIncomeTotal(p)
	if income <= 0 {
		return 0
	}
	return a.MonthlyExpenseTotal(p) / income * 100
}

// TrailingSeries produces the n periods ending at p inclusive, oldest
// first, each paired with its totals. It is recomputed fully on each call.
func (a *Aggregator) TrailingSeries(p core.Period, n int) []PeriodTotals {
	periods := core.PeriodsEndingAt(p, n)
	series := make([]PeriodTotals, len(periods))
	for i, period := range periods {
		series[i] = PeriodTotals{
			Period:  period,
			Income:  a.MonthlyIncomeTotal(period),
			Expense: a.MonthlyExpenseTotal(period),
		}
	}
	return series
}

// CurrentGoal returns the goal stored for p, if any.
func (a *Aggregator) CurrentGoal(p core.Period) (core.Goal, bool) {
	for _, g := range a.data.Goals {
		if g.Period() == p {
			return g, true
		}
	}
	return core.Goal{}, false
}

// Summarize assembles the full dashboard aggregate for p.
func (a *Aggregator) Summarize(p core.Period) Summary {
	income := a.MonthlyIncomeTotal(p)
	expense := a.MonthlyExpenseTotal(p)
	ratio := a.ExpenseRatio(p)
	tier := Classify(ratio, income, expense)

	s := Summary{
		Period:            p,
		TotalIncome:       income,
		TotalExpense:      expense,
		NetResult:         income - expense,
		CumulativeIncome:  a.CumulativeIncome(),
		CumulativeExpense: a.CumulativeExpense(),
		CumulativeNet:     a.CumulativeNetResult(),
		TotalInvested:     a.TotalInvested(),
		ExpenseRatio:      ratio,
		Tier:              tier,
		TierLabel:         tier.Label(),
		TrailingSeries:    a.TrailingSeries(p, TrailingSeriesLength),
	}
	if goal, ok := a.CurrentGoal(p); ok {
		target := goal.TargetPercentage
		s.GoalTarget = &target
	}
	return s
}
