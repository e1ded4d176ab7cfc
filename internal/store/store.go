// Package store owns the canonical record collections. Mutations are
// add/delete only: records are never edited in place, which keeps the
// recompute-on-read aggregation model correct without invalidation logic.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"financepro/internal/core"
)

// KeyAppData is the persisted record holding the serialized aggregate.
const KeyAppData = "app_data"

// KV is the durable key-value medium the store persists into.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ChangeFunc observes the aggregate after every mutation.
type ChangeFunc func(core.AppData)

// ErrNotFound reports a missing parent record for a nested mutation.
var ErrNotFound = errors.New("record not found")

// Store serializes access to the aggregate. Every mutation applies under
// the lock, then persists fire-and-forget and notifies the change hook.
type Store struct {
	mu       sync.Mutex
	data     core.AppData
	kv       KV
	onChange ChangeFunc
	now      func() time.Time
}

// New creates a store backed by kv. A nil kv keeps everything in memory.
func New(kv KV) *Store {
	return &Store{
		data: core.NewAppData(),
		kv:   kv,
		now:  time.Now,
	}
}

// SetOnChange registers the change hook invoked after every mutation with
// a snapshot of the new aggregate state.
func (s *Store) SetOnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Load reads the persisted aggregate. A missing record leaves the empty
// default in place; that is a fresh installation, not an error.
func (s *Store) Load(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	raw, ok, err := s.kv.Get(ctx, KeyAppData)
	if err != nil {
		return fmt.Errorf("load app data: %w", err)
	}
	if !ok {
		return nil
	}

	var data core.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode app data: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the aggregate for read-only aggregation.
func (s *Store) Snapshot() core.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAppData(s.data)
}

// Settings returns the current settings singleton.
func (s *Store) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Settings
}

// Replace swaps the whole aggregate, used after a backup import.
func (s *Store) Replace(ctx context.Context, data core.AppData) {
	s.mu.Lock()
	s.data = cloneAppData(data)
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// AddIncome validates, stamps and appends an income record.
func (s *Store) AddIncome(ctx context.Context, in core.Income) (core.Income, error) {
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	in.ID = uuid.NewString()
	in.CreatedAt = s.nowMillis()

	s.mu.Lock()
	s.data.Incomes = append(s.data.Incomes, in)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return in, nil
}

// DeleteIncome removes the income with the given id. Deleting a missing
// record is a no-op, matching the last-write-wins model.
func (s *Store) DeleteIncome(ctx context.Context, id string) {
	s.mu.Lock()
	s.data.Incomes = deleteByID(s.data.Incomes, id, func(r core.Income) string { return r.ID })
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// AddExpense validates, stamps and appends an expense record.
func (s *Store) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.nowMillis()

	s.mu.Lock()
	s.data.Expenses = append(s.data.Expenses, e)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return e, nil
}

// DeleteExpense removes the expense with the given id.
func (s *Store) DeleteExpense(ctx context.Context, id string) {
	s.mu.Lock()
	s.data.Expenses = deleteByID(s.data.Expenses, id, func(r core.Expense) string { return r.ID })
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// AddFinancing creates a contract with an empty payment history. The
// positive installment count is enforced here, never at read time.
func (s *Store) AddFinancing(ctx context.Context, f core.Financing) (core.Financing, error) {
	if err := f.Validate(); err != nil {
		return core.Financing{}, err
	}
	f.ID = uuid.NewString()
	f.CreatedAt = s.nowMillis()
	f.Payments = []core.FinancingPayment{}

	s.mu.Lock()
	s.data.Financings = append(s.data.Financings, f)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return f, nil
}

// DeleteFinancing removes a contract together with its payment history.
func (s *Store) DeleteFinancing(ctx context.Context, id string) {
	s.mu.Lock()
	s.data.Financings = deleteByID(s.data.Financings, id, func(r core.Financing) string { return r.ID })
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// Financing looks up a contract by id.
func (s *Store) Financing(id string) (core.Financing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.data.Financings {
		if f.ID == id {
			return cloneFinancing(f), true
		}
	}
	return core.Financing{}, false
}

// AddPayment appends a payment to the contract's history. Multiple
// payments may target the same period.
func (s *Store) AddPayment(ctx context.Context, financingID string, p core.FinancingPayment) (core.FinancingPayment, error) {
	if err := p.Validate(); err != nil {
		return core.FinancingPayment{}, err
	}
	p.ID = uuid.NewString()
	p.CreatedAt = s.nowMillis()

	s.mu.Lock()
	idx := -1
	for i := range s.data.Financings {
		if s.data.Financings[i].ID == financingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return core.FinancingPayment{}, fmt.Errorf("financing %s: %w", financingID, ErrNotFound)
	}
	s.data.Financings[idx].Payments = append(s.data.Financings[idx].Payments, p)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return p, nil
}

// DeletePayment removes one payment from a contract's history.
func (s *Store) DeletePayment(ctx context.Context, financingID, paymentID string) {
	s.mu.Lock()
	for i := range s.data.Financings {
		if s.data.Financings[i].ID == financingID {
			s.data.Financings[i].Payments = deleteByID(s.data.Financings[i].Payments, paymentID,
				func(r core.FinancingPayment) string { return r.ID })
			break
		}
	}
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// AddGoal stores a goal, replacing any prior goal for the same period.
func (s *Store) AddGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	g.ID = uuid.NewString()

	s.mu.Lock()
	kept := s.data.Goals[:0]
	for _, existing := range s.data.Goals {
		if existing.Period() != g.Period() {
			kept = append(kept, existing)
		}
	}
	s.data.Goals = append(kept, g)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return g, nil
}

// DeleteGoal removes the goal with the given id.
func (s *Store) DeleteGoal(ctx context.Context, id string) {
	s.mu.Lock()
	s.data.Goals = deleteByID(s.data.Goals, id, func(r core.Goal) string { return r.ID })
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// AddWish validates, stamps and appends a wishlist item.
func (s *Store) AddWish(ctx context.Context, w core.Wish) (core.Wish, error) {
	if err := w.Validate(); err != nil {
		return core.Wish{}, err
	}
	w.ID = uuid.NewString()
	w.CreatedAt = s.nowMillis()

	s.mu.Lock()
	s.data.Wishes = append(s.data.Wishes, w)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return w, nil
}

// DeleteWish removes the wishlist item with the given id.
func (s *Store) DeleteWish(ctx context.Context, id string) {
	s.mu.Lock()
	s.data.Wishes = deleteByID(s.data.Wishes, id, func(r core.Wish) string { return r.ID })
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// AddInvestment creates an investment with an empty contribution list.
func (s *Store) AddInvestment(ctx context.Context, inv core.Investment) (core.Investment, error) {
	if err := inv.Validate(); err != nil {
		return core.Investment{}, err
	}
	inv.ID = uuid.NewString()
	inv.CreatedAt = s.nowMillis()
	inv.Contributions = []core.InvestmentContribution{}

	s.mu.Lock()
	s.data.Investments = append(s.data.Investments, inv)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return inv, nil
}

// DeleteInvestment removes an investment together with its contributions.
func (s *Store) DeleteInvestment(ctx context.Context, id string) {
	s.mu.Lock()
	s.data.Investments = deleteByID(s.data.Investments, id, func(r core.Investment) string { return r.ID })
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// AddContribution appends a contribution to an investment.
func (s *Store) AddContribution(ctx context.Context, investmentID string, c core.InvestmentContribution) (core.InvestmentContribution, error) {
	if err := c.Validate(); err != nil {
		return core.InvestmentContribution{}, err
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.nowMillis()

	s.mu.Lock()
	idx := -1
	for i := range s.data.Investments {
		if s.data.Investments[i].ID == investmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return core.InvestmentContribution{}, fmt.Errorf("investment %s: %w", investmentID, ErrNotFound)
	}
	s.data.Investments[idx].Contributions = append(s.data.Investments[idx].Contributions, c)
	s.mu.Unlock()

	s.afterMutate(ctx)
	return c, nil
}

// DeleteContribution removes one contribution from an investment.
func (s *Store) DeleteContribution(ctx context.Context, investmentID, contributionID string) {
	s.mu.Lock()
	for i := range s.data.Investments {
		if s.data.Investments[i].ID == investmentID {
			s.data.Investments[i].Contributions = deleteByID(s.data.Investments[i].Contributions, contributionID,
				func(r core.InvestmentContribution) string { return r.ID })
			break
		}
	}
	s.mu.Unlock()
	s.afterMutate(ctx)
}

// UpdateSettings replaces the settings singleton.
func (s *Store) UpdateSettings(ctx context.Context, settings core.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.data.Settings = settings
	s.mu.Unlock()
	s.afterMutate(ctx)
	return nil
}

// afterMutate persists the aggregate and notifies the change hook.
// Persistence is fire-and-forget: failures are logged and never surfaced
// to the mutating caller.
func (s *Store) afterMutate(ctx context.Context) {
	s.mu.Lock()
	snapshot := cloneAppData(s.data)
	kv := s.kv
	onChange := s.onChange
	s.mu.Unlock()

	if kv != nil {
		raw, err := json.Marshal(snapshot)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to encode app data", "error", err)
		} else if err := kv.Set(ctx, KeyAppData, raw); err != nil {
			slog.ErrorContext(ctx, "Failed to persist app data", "error", err)
		}
	}

	if onChange != nil {
		onChange(snapshot)
	}
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

func deleteByID[T any](records []T, id string, idOf func(T) string) []T {
	out := records[:0]
	for _, r := range records {
		if idOf(r) != id {
			out = append(out, r)
		}
	}
	return out
}

func cloneFinancing(f core.Financing) core.Financing {
	f.Payments = append([]core.FinancingPayment{}, f.Payments...)
	if f.MonthlyInstallment != nil {
		v := *f.MonthlyInstallment
		f.MonthlyInstallment = &v
	}
	return f
}

func cloneAppData(data core.AppData) core.AppData {
	out := data
	out.Incomes = append([]core.Income{}, data.Incomes...)
	out.Expenses = append([]core.Expense{}, data.Expenses...)
	out.Goals = append([]core.Goal{}, data.Goals...)
	out.Wishes = append([]core.Wish{}, data.Wishes...)

	out.Financings = make([]core.Financing, len(data.Financings))
	for i, f := range data.Financings {
		out.Financings[i] = cloneFinancing(f)
	}

	out.Investments = make([]core.Investment, len(data.Investments))
	for i, inv := range data.Investments {
		inv.Contributions = append([]core.InvestmentContribution{}, inv.Contributions...)
		out.Investments[i] = inv
	}
	return out
}
