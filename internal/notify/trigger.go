// Package notify decides when the user should be alerted about budget
// health and financing due dates. Delivery is best-effort: without a sink
// or without permission nothing fires and nothing errs.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"financepro/internal/core"
	"financepro/internal/report"
)

// Kind distinguishes the alert classes.
type Kind string

const (
	KindBudgetWarning  Kind = "budget-warning"
	KindBudgetCritical Kind = "budget-critical"
	KindDueDate        Kind = "due-date"
)

// Alert is one user-facing notification.
type Alert struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sink delivers alerts to the platform's notification surface.
type Sink interface {
	Notify(ctx context.Context, a Alert) error
}

// Trigger evaluates the alert rules against a store snapshot. A single
// last-fired timestamp gates every alert class together: one evaluation
// pass may emit alerts at most once per hour.
type Trigger struct {
	mu        sync.Mutex
	sink      Sink
	permitted bool
	lastFired time.Time
	now       func() time.Time
}

// NewTrigger builds a trigger delivering through sink. Permission starts
// ungranted; call GrantPermission once the platform allows notifications.
func NewTrigger(sink Sink) *Trigger {
	return &Trigger{sink: sink, now: time.Now}
}

// GrantPermission marks the platform permission as granted. The request
// itself is a one-shot elsewhere; no response simply means this is never
// called, and alerts stay suppressed.
func (t *Trigger) GrantPermission() {
	t.mu.Lock()
	t.permitted = true
	t.mu.Unlock()
}

// Evaluate runs the alert rules against data and returns the alerts it
// emitted. It returns nil without error whenever alerts are disabled,
// unpermitted, sinkless, or inside the hourly gate.
func (t *Trigger) Evaluate(ctx context.Context, data core.AppData) []Alert {
	t.mu.Lock()
	sink := t.sink
	permitted := t.permitted
	now := t.now()
	gated := !t.lastFired.IsZero() && now.Sub(t.lastFired) < time.Hour
	t.mu.Unlock()

	if sink == nil || !permitted || !data.Settings.NotificationsEnabled || gated {
		return nil
	}

	period := core.PeriodOf(now)
	agg := report.NewAggregator(data)
	var fired []Alert

	// Budget alerts only apply once the user has set a goal for the
	// current period.
	if _, ok := agg.CurrentGoal(period); ok {
		ratio := agg.ExpenseRatio(period)
		threshold := data.Settings.BudgetAlertThreshold * 100
		if ratio >= 100 {
			fired = append(fired, Alert{
				Kind:  KindBudgetCritical,
				Title: "Critical budget alert",
				Body:  "Your expenses have passed 100% of your income!",
			})
		} else if ratio >= threshold {
			fired = append(fired, Alert{
				Kind:  KindBudgetWarning,
				Title: "Spending warning",
				Body:  fmt.Sprintf("Your expenses have reached %.0f%% of your income.", ratio),
			})
		}
	}

	// One due-date alert per contract whose due day is today and has no
	// payment recorded for the current period yet.
	today := now.Day()
	for _, f := range data.Financings {
		if f.DueDay != today {
			continue
		}
		if len(core.FilterPeriod(f.Payments, period)) > 0 {
			continue
		}
		fired = append(fired, Alert{
			Kind:  KindDueDate,
			Title: "Due today",
			Body:  fmt.Sprintf("The financing %q is due today.", f.Description),
		})
	}

	if len(fired) == 0 {
		return nil
	}

	for _, a := range fired {
		if err := sink.Notify(ctx, a); err != nil {
			slog.WarnContext(ctx, "Alert delivery failed", "kind", a.Kind, "error", err)
		}
	}

	t.mu.Lock()
	t.lastFired = now
	t.mu.Unlock()
	return fired
}
