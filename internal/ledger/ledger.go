// Package ledger keeps the in-memory view of displayed expenses in step
// with the persistence gateway and derives the spend summary from it.
package ledger

import (
	"context"
	"fmt"

	"github.com/theirongolddev/spend/internal/model"

	"github.com/rs/zerolog/log"
)

// Store is the durable side of the ledger. *store.Gateway implements it.
type Store interface {
	Create(ctx context.Context, date, category string, amount float64) (int64, error)
	ReadAll(ctx context.Context) ([]model.Expense, error)
	ReadOne(ctx context.Context, id int64) (model.Expense, error)
	Update(ctx context.Context, e model.Expense) error
	Delete(ctx context.Context, id int64) error
}

// Subscriber receives the recomputed summary after every change.
type Subscriber func(model.Summary) error

// Ledger is the ordered list of displayed expenses mirroring the store.
// It is not safe for concurrent use; callers drive it from one goroutine.
type Ledger struct {
	store Store
	items []model.Expense
	subs  []Subscriber
}

// New returns an empty ledger backed by s. Call Load to seed it.
func New(s Store) *Ledger {
	return &Ledger{store: s}
}

// Subscribe registers fn to be called with the summary after each change.
func (l *Ledger) Subscribe(fn Subscriber) {
	l.subs = append(l.subs, fn)
}

// Load replaces the displayed list with the full contents of the store.
func (l *Ledger) Load(ctx context.Context) error {
	all, err := l.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	l.items = all
	l.notify()
	return nil
}

// Resync is Load under the name callers use after a failed mutation.
func (l *Ledger) Resync(ctx context.Context) error {
	if err := l.Load(ctx); err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	log.Info().Int("expenses", len(l.items)).Msg("ledger resynced from store")
	return nil
}

// Add validates the entry, persists it, and appends the stored record.
func (l *Ledger) Add(ctx context.Context, date, category, amount string) (model.Expense, error) {
	e, err := Entry{Date: date, Category: category, Amount: amount}.Validate()
	if err != nil {
		return model.Expense{}, err
	}

	id, err := l.store.Create(ctx, e.Date, e.Category, e.Amount)
	if err != nil {
		l.afterFailure(ctx, "add", err)
		return model.Expense{}, err
	}
	e.ID = id

	l.items = append(l.items, e)
	l.notify()
	return e, nil
}

// Select reads the stored record for id, used to populate edit fields.
func (l *Ledger) Select(ctx context.Context, id int64) (model.Expense, error) {
	return l.store.ReadOne(ctx, id)
}

// Update validates the entry and overwrites the record matching id in
// both the store and the displayed list.
func (l *Ledger) Update(ctx context.Context, id int64, date, category, amount string) (model.Expense, error) {
	e, err := Entry{Date: date, Category: category, Amount: amount}.Validate()
	if err != nil {
		return model.Expense{}, err
	}
	e.ID = id

	if err := l.store.Update(ctx, e); err != nil {
		l.afterFailure(ctx, "update", err)
		return model.Expense{}, err
	}

	if !l.replace(e) {
		// Stored but not displayed: the view was stale.
		if err := l.Resync(ctx); err != nil {
			return e, err
		}
		return e, nil
	}
	l.notify()
	return e, nil
}

// Delete removes the displayed record matching id from the store and the list.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	if l.index(id) < 0 {
		return &model.NotFoundError{ID: id}
	}

	if err := l.store.Delete(ctx, id); err != nil {
		l.afterFailure(ctx, "delete", err)
		return err
	}

	l.remove(id)
	l.notify()
	return nil
}

// Expenses returns a copy of the displayed list in insertion order.
func (l *Ledger) Expenses() []model.Expense {
	out := make([]model.Expense, len(l.items))
	copy(out, l.items)
	return out
}

// Find returns the displayed record for id.
func (l *Ledger) Find(id int64) (model.Expense, bool) {
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	return model.Expense{}, false
}

// Len returns the number of displayed expenses.
func (l *Ledger) Len() int {
	return len(l.items)
}

func (l *Ledger) index(id int64) int {
	for i, e := range l.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) replace(e model.Expense) bool {
	i := l.index(e.ID)
	if i < 0 {
		return false
	}
	l.items[i] = e
	return true
}

func (l *Ledger) remove(id int64) {
	i := l.index(id)
	if i < 0 {
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// afterFailure handles a failed mutation. Storage failures trigger a resync so
// the displayed list converges with whatever the store actually holds;
// not-found means another writer removed the row, which a resync also fixes.
func (l *Ledger) afterFailure(ctx context.Context, op string, err error) {
	if !model.IsStorage(err) && !model.IsNotFound(err) {
		return
	}
	log.Error().Err(err).Str("op", op).Msg("ledger mutation failed")
	if rerr := l.Resync(ctx); rerr != nil {
		log.Error().Err(rerr).Str("op", op).Msg("resync after failure")
	}
}

func (l *Ledger) notify() {
	if len(l.subs) == 0 {
		return
	}
	s := l.Summary()
	for _, fn := range l.subs {
		callSubscriber(fn, s)
	}
}

func callSubscriber(fn Subscriber, s model.Summary) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("summary subscriber panicked")
		}
	}()
	if err := fn(s); err != nil {
		log.Warn().Err(err).Msg("summary subscriber failed")
	}
}
