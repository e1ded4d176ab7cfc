package core

import (
	"errors"
	"testing"
)

func TestIncomeValidate(t *testing.T) {
	tests := []struct {
		name    string
		income  Income
		wantErr error
	}{
		{
			name:   "valid",
			income: Income{Description: "Salary", Value: 5000, Type: "salary", Month: 4, Year: 2025},
		},
		{
			name:    "empty description",
			income:  Income{Description: "   ", Value: 100, Month: 0, Year: 2025},
			wantErr: ErrEmptyDescription,
		},
		{
			name:    "absent value",
			income:  Income{Description: "Salary", Month: 0, Year: 2025},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "month out of range",
			income:  Income{Description: "Salary", Value: 100, Month: 12, Year: 2025},
			wantErr: ErrInvalidMonth,
		},
		{
			name:   "negative value passes through",
			income: Income{Description: "Correction", Value: -50, Month: 2, Year: 2025},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.income.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFinancingValidate(t *testing.T) {
	valid := Financing{Description: "Car", TotalValue: 12000, TotalInstallments: 12, DueDay: 10}

	tests := []struct {
		name    string
		mutate  func(*Financing)
		wantErr error
	}{
		{name: "valid", mutate: func(*Financing) {}},
		{
			name:    "zero installments rejected at creation",
			mutate:  func(f *Financing) { f.TotalInstallments = 0 },
			wantErr: ErrInvalidInstallments,
		},
		{
			name:    "negative installments",
			mutate:  func(f *Financing) { f.TotalInstallments = -3 },
			wantErr: ErrInvalidInstallments,
		},
		{
			name:    "due day zero",
			mutate:  func(f *Financing) { f.DueDay = 0 },
			wantErr: ErrInvalidDueDay,
		},
		{
			name:    "due day 32",
			mutate:  func(f *Financing) { f.DueDay = 32 },
			wantErr: ErrInvalidDueDay,
		},
		{
			name:    "empty description",
			mutate:  func(f *Financing) { f.Description = "" },
			wantErr: ErrEmptyDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWishValidate(t *testing.T) {
	tests := []struct {
		name    string
		wish    Wish
		wantErr error
	}{
		{name: "valid", wish: Wish{Description: "Bike", Value: 900, Priority: PriorityHigh}},
		{name: "unknown priority", wish: Wish{Description: "Bike", Value: 900, Priority: "urgent"}, wantErr: ErrInvalidPriority},
		{name: "missing value", wish: Wish{Description: "Bike", Priority: PriorityLow}, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.wish.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvestmentValidate(t *testing.T) {
	tests := []struct {
		name    string
		inv     Investment
		wantErr error
	}{
		{name: "fixed income", inv: Investment{Description: "CDB", Type: FixedIncome}},
		{name: "variable income", inv: Investment{Description: "Stocks", Type: VariableIncome}},
		{name: "unknown type", inv: Investment{Description: "Gold", Type: "commodity"}, wantErr: ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.inv.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{name: "defaults", settings: DefaultSettings()},
		{name: "reminder day 29", settings: Settings{ReminderDay: 29, BudgetAlertThreshold: 0.8}, wantErr: ErrInvalidReminderDay},
		{name: "reminder day zero", settings: Settings{ReminderDay: 0, BudgetAlertThreshold: 0.8}, wantErr: ErrInvalidReminderDay},
		{name: "threshold above one", settings: Settings{ReminderDay: 5, BudgetAlertThreshold: 1.2}, wantErr: ErrInvalidThreshold},
		{name: "threshold zero", settings: Settings{ReminderDay: 5}, wantErr: ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.settings.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.NotificationsEnabled {
		t.Error("notifications should start disabled")
	}
	if s.ReminderDay != 5 {
		t.Errorf("ReminderDay = %d, want 5", s.ReminderDay)
	}
	if s.BudgetAlertThreshold != 0.8 {
		t.Errorf("BudgetAlertThreshold = %v, want 0.8", s.BudgetAlertThreshold)
	}
}
