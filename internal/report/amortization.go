package report

import (
	"sort"

	"financepro/internal/core"
)

// Amortization is the derived repayment state of one financing contract.
// Balances are not clamped: overpaying a contract drives the remaining
// figures negative, and that is surfaced as-is.
type Amortization struct {
	TotalPaid             float64 `json:"totalPaid"`
	RemainingBalance      float64 `json:"remainingBalance"`
	InstallmentsPaid      int     `json:"installmentsPaid"`
	RemainingInstallments int     `json:"remainingInstallments"`
	// Progress is installmentsPaid over totalInstallments. Contracts are
	// created with a positive installment count; the zero guard exists only
	// for data imported from elsewhere.
	Progress float64 `json:"progress"`
}

// Amortize computes the repayment state of f from its payment history.
func Amortize(f core.Financing) Amortization {
	totalPaid := SumValues(f.Payments)

	installmentsPaid := 0
	for _, p := range f.Payments {
		installmentsPaid += p.InstallmentsDeducted
	}

	var progress float64
	if f.TotalInstallments > 0 {
		progress = float64(installmentsPaid) / float64(f.TotalInstallments)
	}

	return Amortization{
		TotalPaid:             totalPaid,
		RemainingBalance:      f.TotalValue - totalPaid,
		InstallmentsPaid:      installmentsPaid,
		RemainingInstallments: f.TotalInstallments - installmentsPaid,
		Progress:              progress,
	}
}

// SortedPayments returns the payment history ordered for display: newest
// period first, ties kept in insertion order.
func SortedPayments(f core.Financing) []core.FinancingPayment {
	payments := append([]core.FinancingPayment(nil), f.Payments...)
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Period().Index() > payments[j].Period().Index()
	})
	return payments
}

// SortedGoals orders goals the same way, newest period first.
func SortedGoals(goals []core.Goal) []core.Goal {
	out := append([]core.Goal(nil), goals...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Period().Index() > out[j].Period().Index()
	})
	return out
}
