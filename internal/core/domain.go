package core

import (
	"errors"
	"strings"
)

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	FixedIncome    InvestmentType = "fixed-income"
	VariableIncome InvestmentType = "variable-income"
)

type (
	// Priority ranks a wishlist item.
	Priority string

	// InvestmentType is the fixed set of investment classes.
	InvestmentType string

	// Income is a single income record tied to a calendar period.
	// Monetary values are float64 throughout: the tracker does display
	// arithmetic, not accounting, and keeps the stored shape of the data.
	Income struct {
		ID          string  `json:"id"`
		Description string  `json:"description"`
		Value       float64 `json:"value"`
		Type        string  `json:"type"` // free-form tag
		Month       int     `json:"month"`
		Year        int     `json:"year"`
		CreatedAt   int64   `json:"createdAt"` // unix milliseconds
	}

	// Expense mirrors Income with a category tag instead of a type tag.
	Expense struct {
		ID          string  `json:"id"`
		Description string  `json:"description"`
		Value       float64 `json:"value"`
		Category    string  `json:"category"` // free-form tag
		Month       int     `json:"month"`
		Year        int     `json:"year"`
		CreatedAt   int64   `json:"createdAt"`
	}

	// FinancingPayment retires value and installments against a contract.
	// Multiple payments may target the same period (batch entry).
	FinancingPayment struct {
		ID                   string  `json:"id"`
		Value                float64 `json:"value"`
		Month                int     `json:"month"`
		Year                 int     `json:"year"`
		InstallmentsDeducted int     `json:"installmentsDeducted"`
		CreatedAt            int64   `json:"createdAt"`
	}

	// Financing is an installment contract that owns its payment history.
	Financing struct {
		ID                string  `json:"id"`
		Description       string  `json:"description"`
		TotalValue        float64 `json:"totalValue"`
		TotalInstallments int     `json:"totalInstallments"`
		// MonthlyInstallment is an advisory default for new payments, not
		// a constraint on them.
		MonthlyInstallment *float64           `json:"monthlyInstallment,omitempty"`
		DueDay             int                `json:"dueDay"`
		Payments           []FinancingPayment `json:"payments"`
		CreatedAt          int64              `json:"createdAt"`
	}

	// Goal caps the spending percentage aspired to for one period.
	// At most one goal exists per (month, year).
	Goal struct {
		ID               string  `json:"id"`
		Month            int     `json:"month"`
		Year             int     `json:"year"`
		TargetPercentage float64 `json:"targetPercentage"`
	}

	// Wish is a wishlist item.
	Wish struct {
		ID          string   `json:"id"`
		Description string   `json:"description"`
		Value       float64  `json:"value"`
		Priority    Priority `json:"priority"`
		CreatedAt   int64    `json:"createdAt"`
	}

	// InvestmentContribution is a single deposit into an investment.
	InvestmentContribution struct {
		ID        string  `json:"id"`
		Value     float64 `json:"value"`
		Source    string  `json:"source"` // free-form tag
		Date      string  `json:"date"`   // calendar date, YYYY-MM-DD
		CreatedAt int64   `json:"createdAt"`
	}

	// Investment owns its contributions.
	Investment struct {
		ID            string                   `json:"id"`
		Description   string                   `json:"description"`
		Type          InvestmentType           `json:"type"`
		Contributions []InvestmentContribution `json:"contributions"`
		CreatedAt     int64                    `json:"createdAt"`
	}

	// Settings is the process-wide singleton configuration for alerts.
	Settings struct {
		NotificationsEnabled bool    `json:"notificationsEnabled"`
		ReminderDay          int     `json:"reminderDay"`          // 1-28
		BudgetAlertThreshold float64 `json:"budgetAlertThreshold"` // fraction, e.g. 0.8
	}

	// AppData is the full persisted aggregate: every collection plus the
	// settings singleton.
	AppData struct {
		Incomes     []Income     `json:"incomes"`
		Expenses    []Expense    `json:"expenses"`
		Financings  []Financing  `json:"financings"`
		Goals       []Goal       `json:"goals"`
		Wishes      []Wish       `json:"wishes"`
		Investments []Investment `json:"investments"`
		Settings    Settings     `json:"settings"`
	}
)

var (
	ErrEmptyDescription    = errors.New("empty description")
	ErrInvalidValue        = errors.New("invalid value")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidDueDay       = errors.New("invalid due day")
	ErrInvalidInstallments = errors.New("invalid installment count")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidType         = errors.New("invalid investment type")
	ErrInvalidPercentage   = errors.New("invalid target percentage")
	ErrInvalidReminderDay  = errors.New("invalid reminder day")
	ErrInvalidThreshold    = errors.New("invalid alert threshold")
)

// DefaultSettings returns the settings a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: false,
		ReminderDay:          5,
		BudgetAlertThreshold: 0.8,
	}
}

// NewAppData returns an empty aggregate with default settings. Slices are
// allocated so the aggregate serializes with empty arrays, not nulls.
func NewAppData() AppData {
	return AppData{
		Incomes:     []Income{},
		Expenses:    []Expense{},
		Financings:  []Financing{},
		Goals:       []Goal{},
		Wishes:      []Wish{},
		Investments: []Investment{},
		Settings:    DefaultSettings(),
	}
}

func validateMonth(month int) error {
	if month < 0 || month > 11 {
		return ErrInvalidMonth
	}
	return nil
}

func validateEntry(description string, value float64, month int) error {
	if len(strings.TrimSpace(description)) == 0 {
		return ErrEmptyDescription
	}
	// A zero value means the field was absent at submission. Negative
	// values pass through unvalidated, keeping the stored data's shape.
	if value == 0 {
		return ErrInvalidValue
	}
	return validateMonth(month)
}

func (i Income) Validate() error {
	return validateEntry(i.Description, i.Value, i.Month)
}

func (e Expense) Validate() error {
	return validateEntry(e.Description, e.Value, e.Month)
}

func (f Financing) Validate() error {
	if len(strings.TrimSpace(f.Description)) == 0 {
		return ErrEmptyDescription
	}
	if f.TotalValue == 0 {
		return ErrInvalidValue
	}
	// Enforced at creation so amortization progress never divides by zero.
	if f.TotalInstallments <= 0 {
		return ErrInvalidInstallments
	}
	if f.DueDay < 1 || f.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

func (p FinancingPayment) Validate() error {
	if p.Value == 0 {
		return ErrInvalidValue
	}
	if p.InstallmentsDeducted <= 0 {
		return ErrInvalidInstallments
	}
	return validateMonth(p.Month)
}

func (g Goal) Validate() error {
	if g.TargetPercentage <= 0 {
		return ErrInvalidPercentage
	}
	return validateMonth(g.Month)
}

func (w Wish) Validate() error {
	if len(strings.TrimSpace(w.Description)) == 0 {
		return ErrEmptyDescription
	}
	if w.Value == 0 {
		return ErrInvalidValue
	}
	switch w.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return ErrInvalidPriority
	}
	return nil
}

func (c InvestmentContribution) Validate() error {
	if c.Value == 0 {
		return ErrInvalidValue
	}
	return nil
}

func (inv Investment) Validate() error {
	if len(strings.TrimSpace(inv.Description)) == 0 {
		return ErrEmptyDescription
	}
	switch inv.Type {
	case FixedIncome, VariableIncome:
	default:
		return ErrInvalidType
	}
	return nil
}

func (s Settings) Validate() error {
	if s.ReminderDay < 1 || s.ReminderDay > 28 {
		return ErrInvalidReminderDay
	}
	if s.BudgetAlertThreshold <= 0 || s.BudgetAlertThreshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// Period reports the calendar period an income belongs to.
func (i Income) Period() Period { return Period{Month: i.Month, Year: i.Year} }

// Period reports the calendar period an expense belongs to.
func (e Expense) Period() Period { return Period{Month: e.Month, Year: e.Year} }

// Period reports the calendar period a payment targets.
func (p FinancingPayment) Period() Period { return Period{Month: p.Month, Year: p.Year} }

// Period reports the calendar period a goal applies to.
func (g Goal) Period() Period { return Period{Month: g.Month, Year: g.Year} }

// Amount reports the monetary value of an income record.
func (i Income) Amount() float64 { return i.Value }

// Amount reports the monetary value of an expense record.
func (e Expense) Amount() float64 { return e.Value }

// Amount reports the monetary value of a payment.
func (p FinancingPayment) Amount() float64 { return p.Value }

// Amount reports the monetary value of a wishlist item.
func (w Wish) Amount() float64 { return w.Value }

// Amount reports the monetary value of a contribution.
func (c InvestmentContribution) Amount() float64 { return c.Value }
