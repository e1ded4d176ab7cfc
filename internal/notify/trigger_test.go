package notify

import (
	"context"
	"testing"
	"time"

	"financepro/internal/core"
)

type recordingSink struct {
	alerts []Alert
}

func (r *recordingSink) Notify(_ context.Context, a Alert) error {
	r.alerts = append(r.alerts, a)
	return nil
}

// fixture returns data with a goal for May 2025 and the given totals.
func fixture(income, expense float64) core.AppData {
	data := core.NewAppData()
	data.Settings.NotificationsEnabled = true
	data.Goals = []core.Goal{{ID: "g", Month: 4, Year: 2025, TargetPercentage: 70}}
	if income != 0 {
		data.Incomes = []core.Income{{ID: "i", Description: "Salary", Value: income, Month: 4, Year: 2025}}
	}
	if expense != 0 {
		data.Expenses = []core.Expense{{ID: "e", Description: "Stuff", Value: expense, Category: "misc", Month: 4, Year: 2025}}
	}
	return data
}

func newTestTrigger(sink Sink, now time.Time) *Trigger {
	tr := NewTrigger(sink)
	tr.GrantPermission()
	tr.now = func() time.Time { return now }
	return tr
}

var mayMorning = time.Date(2025, time.May, 17, 9, 0, 0, 0, time.UTC)

func TestBudgetWarningAtThreshold(t *testing.T) {
	sink := &recordingSink{}
	tr := newTestTrigger(sink, mayMorning)

	fired := tr.Evaluate(context.Background(), fixture(5000, 4000)) // ratio 80, threshold 0.8
	if len(fired) != 1 {
		t.Fatalf("fired %d alerts, want 1", len(fired))
	}
	if fired[0].Kind != KindBudgetWarning {
		t.Errorf("Kind = %v, want KindBudgetWarning", fired[0].Kind)
	}
	if len(sink.alerts) != 1 {
		t.Errorf("sink received %d alerts", len(sink.alerts))
	}
}

func TestBudgetCriticalPast100(t *testing.T) {
	sink := &recordingSink{}
	tr := newTestTrigger(sink, mayMorning)

	fired := tr.Evaluate(context.Background(), fixture(1000, 1500))
	if len(fired) != 1 || fired[0].Kind != KindBudgetCritical {
		t.Fatalf("fired = %+v, want one budget-critical alert", fired)
	}
}

func TestBelowThresholdStaysQuiet(t *testing.T) {
	tr := newTestTrigger(&recordingSink{}, mayMorning)
	if fired := tr.Evaluate(context.Background(), fixture(5000, 2000)); fired != nil {
		t.Errorf("fired = %+v, want nothing at ratio 40", fired)
	}
}

func TestNoGoalNoBudgetAlert(t *testing.T) {
	data := fixture(1000, 2000)
	data.Goals = nil
	tr := newTestTrigger(&recordingSink{}, mayMorning)
	if fired := tr.Evaluate(context.Background(), data); fired != nil {
		t.Errorf("fired = %+v, want nothing without a goal for the period", fired)
	}
}

func TestHourlyGateCoversAllKinds(t *testing.T) {
	sink := &recordingSink{}
	tr := newTestTrigger(sink, mayMorning)
	ctx := context.Background()

	if fired := tr.Evaluate(ctx, fixture(5000, 4000)); len(fired) != 1 {
		t.Fatalf("first pass fired %d alerts", len(fired))
	}

	// Thirty minutes later even a due-date alert is gated: the timestamp
	// is shared across alert classes.
	data := fixture(5000, 4000)
	data.Financings = []core.Financing{{ID: "f", Description: "Car", TotalValue: 1000, TotalInstallments: 10, DueDay: 17}}
	tr.now = func() time.Time { return mayMorning.Add(30 * time.Minute) }
	if fired := tr.Evaluate(ctx, data); fired != nil {
		t.Errorf("gated pass fired %+v", fired)
	}

	// After the hour passes, alerts flow again.
	tr.now = func() time.Time { return mayMorning.Add(61 * time.Minute) }
	if fired := tr.Evaluate(ctx, data); len(fired) != 2 {
		t.Errorf("post-gate pass fired %d alerts, want warning + due-date", len(fired))
	}
}

func TestDueDateAlert(t *testing.T) {
	data := core.NewAppData()
	data.Settings.NotificationsEnabled = true
	data.Financings = []core.Financing{
		{ID: "due", Description: "Car", TotalValue: 1000, TotalInstallments: 10, DueDay: 17},
		{ID: "other-day", Description: "House", TotalValue: 5000, TotalInstallments: 60, DueDay: 20},
		{
			ID: "paid", Description: "Bike", TotalValue: 500, TotalInstallments: 5, DueDay: 17,
			Payments: []core.FinancingPayment{{ID: "p", Value: 100, InstallmentsDeducted: 1, Month: 4, Year: 2025}},
		},
	}

	sink := &recordingSink{}
	tr := newTestTrigger(sink, mayMorning) // the 17th
	fired := tr.Evaluate(context.Background(), data)
	if len(fired) != 1 {
		t.Fatalf("fired %d alerts, want 1 (only the unpaid contract due today)", len(fired))
	}
	if fired[0].Kind != KindDueDate {
		t.Errorf("Kind = %v, want KindDueDate", fired[0].Kind)
	}
}

func TestSuppression(t *testing.T) {
	ctx := context.Background()
	data := fixture(1000, 1500)

	t.Run("without permission", func(t *testing.T) {
		tr := NewTrigger(&recordingSink{})
		tr.now = func() time.Time { return mayMorning }
		if fired := tr.Evaluate(ctx, data); fired != nil {
			t.Errorf("fired = %+v, want silent suppression", fired)
		}
	})

	t.Run("without sink", func(t *testing.T) {
		tr := newTestTrigger(nil, mayMorning)
		if fired := tr.Evaluate(ctx, data); fired != nil {
			t.Errorf("fired = %+v, want silent suppression", fired)
		}
	})

	t.Run("notifications disabled", func(t *testing.T) {
		disabled := fixture(1000, 1500)
		disabled.Settings.NotificationsEnabled = false
		tr := newTestTrigger(&recordingSink{}, mayMorning)
		if fired := tr.Evaluate(ctx, disabled); fired != nil {
			t.Errorf("fired = %+v, want silent suppression", fired)
		}
	})
}

func TestQuietPassDoesNotConsumeGate(t *testing.T) {
	tr := newTestTrigger(&recordingSink{}, mayMorning)
	ctx := context.Background()

	// Nothing to report: the gate must stay open.
	if fired := tr.Evaluate(ctx, fixture(5000, 1000)); fired != nil {
		t.Fatalf("quiet pass fired %+v", fired)
	}

	tr.now = func() time.Time { return mayMorning.Add(5 * time.Minute) }
	if fired := tr.Evaluate(ctx, fixture(5000, 4000)); len(fired) != 1 {
		t.Errorf("alert should fire right after a quiet pass, got %d", len(fired))
	}
}
