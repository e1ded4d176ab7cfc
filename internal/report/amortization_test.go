package report

import (
	"testing"

	"financepro/internal/core"
)

func TestAmortize(t *testing.T) {
	contract := core.Financing{
		Description:       "Car financing",
		TotalValue:        12000,
		TotalInstallments: 12,
		DueDay:            10,
		Payments: []core.FinancingPayment{
			{Value: 1000, InstallmentsDeducted: 1, Month: 0, Year: 2025},
			{Value: 1000, InstallmentsDeducted: 1, Month: 1, Year: 2025},
		},
	}

	got := Amortize(contract)
	if got.TotalPaid != 2000 {
		t.Errorf("TotalPaid = %v, want 2000", got.TotalPaid)
	}
	if got.RemainingBalance != 10000 {
		t.Errorf("RemainingBalance = %v, want 10000", got.RemainingBalance)
	}
	if got.InstallmentsPaid != 2 {
		t.Errorf("InstallmentsPaid = %d, want 2", got.InstallmentsPaid)
	}
	if got.RemainingInstallments != 10 {
		t.Errorf("RemainingInstallments = %d, want 10", got.RemainingInstallments)
	}
	if got.Progress != 2.0/12.0 {
		t.Errorf("Progress = %v, want %v", got.Progress, 2.0/12.0)
	}
}

func TestAmortizeOverpaymentNotClamped(t *testing.T) {
	contract := core.Financing{
		Description:       "Overpaid",
		TotalValue:        12000,
		TotalInstallments: 12,
		DueDay:            5,
		Payments: []core.FinancingPayment{
			{Value: 7000, InstallmentsDeducted: 7, Month: 0, Year: 2025},
			{Value: 6000, InstallmentsDeducted: 6, Month: 1, Year: 2025},
		},
	}

	got := Amortize(contract)
	if got.RemainingBalance != -1000 {
		t.Errorf("RemainingBalance = %v, want -1000", got.RemainingBalance)
	}
	if got.RemainingInstallments != -1 {
		t.Errorf("RemainingInstallments = %d, want -1", got.RemainingInstallments)
	}
}

func TestAmortizeNoPayments(t *testing.T) {
	contract := core.Financing{TotalValue: 5000, TotalInstallments: 10}
	got := Amortize(contract)
	if got.TotalPaid != 0 || got.RemainingBalance != 5000 {
		t.Errorf("empty history: TotalPaid=%v RemainingBalance=%v", got.TotalPaid, got.RemainingBalance)
	}
	if got.Progress != 0 {
		t.Errorf("Progress = %v, want 0", got.Progress)
	}
}

func TestAmortizeZeroInstallmentsGuard(t *testing.T) {
	// Creation rejects zero installment counts; imported data may still
	// carry them, and the read path must not divide by zero.
	contract := core.Financing{TotalValue: 5000, TotalInstallments: 0}
	if got := Amortize(contract).Progress; got != 0 {
		t.Errorf("Progress = %v, want 0", got)
	}
}

func TestSortedPayments(t *testing.T) {
	contract := core.Financing{
		Payments: []core.FinancingPayment{
			{ID: "jan-a", Month: 0, Year: 2025},
			{ID: "mar", Month: 2, Year: 2025},
			{ID: "jan-b", Month: 0, Year: 2025}, // same period as jan-a, entered later
			{ID: "dec", Month: 11, Year: 2024},
		},
	}

	got := SortedPayments(contract)
	wantOrder := []string{"mar", "jan-a", "jan-b", "dec"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("payment[%d] = %s, want %s", i, got[i].ID, id)
		}
	}

	// The original slice stays untouched.
	if contract.Payments[0].ID != "jan-a" {
		t.Error("SortedPayments mutated the contract's payment slice")
	}
}

func TestSortedGoals(t *testing.T) {
	goals := []core.Goal{
		{ID: "feb", Month: 1, Year: 2025},
		{ID: "nov", Month: 10, Year: 2024},
		{ID: "jun", Month: 5, Year: 2025},
	}

	got := SortedGoals(goals)
	wantOrder := []string{"jun", "feb", "nov"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("goal[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	if goals[0].ID != "feb" {
		t.Error("SortedGoals mutated the input slice")
	}
}
