package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/spend/internal/ledger"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T) *store.Gateway {
	t.Helper()
	g, err := store.Open(filepath.Join(t.TempDir(), "expenses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func newLedger(t *testing.T) (*ledger.Ledger, *store.Gateway) {
	t.Helper()
	g := newGateway(t)
	l := ledger.New(g)
	require.NoError(t, l.Load(context.Background()))
	return l, g
}

// flakyStore wraps a real store and fails the next mutating call on demand.
type flakyStore struct {
	ledger.Store
	failNext bool
	readErr  error
}

var errDiskFull = errors.New("disk full")

func (f *flakyStore) fail(op string) error {
	if !f.failNext {
		return nil
	}
	f.failNext = false
	return &model.StorageError{Op: op, Err: errDiskFull}
}

func (f *flakyStore) Create(ctx context.Context, date, category string, amount float64) (int64, error) {
	if err := f.fail("create"); err != nil {
		return 0, err
	}
	return f.Store.Create(ctx, date, category, amount)
}

func (f *flakyStore) Update(ctx context.Context, e model.Expense) error {
	if err := f.fail("update"); err != nil {
		return err
	}
	return f.Store.Update(ctx, e)
}

func (f *flakyStore) Delete(ctx context.Context, id int64) error {
	if err := f.fail("delete"); err != nil {
		return err
	}
	return f.Store.Delete(ctx, id)
}

func (f *flakyStore) ReadAll(ctx context.Context) ([]model.Expense, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.Store.ReadAll(ctx)
}

func TestEmptyStoreThenCreate(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)
	assert.Zero(t, l.Len())
	assert.Zero(t, l.TotalSpend())

	e, err := l.Add(ctx, "2024-01-01", "Rent", "1200.00")
	require.NoError(t, err)

	all, err := g.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, e, all[0])
	assert.Positive(t, all[0].ID)
	assert.Equal(t, "2024-01-01", all[0].Date)
	assert.Equal(t, "Rent", all[0].Category)
	assert.InDelta(t, 1200.00, l.TotalSpend(), 1e-9)
}

func TestByCategoryAndTotal(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	_, err := l.Add(ctx, "d1", "Groceries", "50")
	require.NoError(t, err)
	_, err = l.Add(ctx, "d2", "Rent", "100")
	require.NoError(t, err)

	assert.Equal(t, map[string][]float64{
		"Groceries": {50},
		"Rent":      {100},
	}, l.ByCategory())
	assert.InDelta(t, 150.0, l.TotalSpend(), 1e-9)
}

func TestUpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)

	e, err := l.Add(ctx, "d1", "Groceries", "50")
	require.NoError(t, err)
	_, err = l.Add(ctx, "d2", "Rent", "100")
	require.NoError(t, err)

	updated, err := l.Update(ctx, e.ID, "d1", "Utilities", "75")
	require.NoError(t, err)
	assert.Equal(t, e.ID, updated.ID)
	assert.Equal(t, "Utilities", updated.Category)

	got, ok := l.Find(e.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)
	assert.InDelta(t, 175.0, l.TotalSpend(), 1e-9)

	stored, err := g.ReadOne(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	// Position in the displayed list is unchanged.
	assert.Equal(t, e.ID, l.Expenses()[0].ID)
}

func TestSelectReadsStore(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	e, err := l.Add(ctx, "2024-02-02", "Entertainment", "12,50")
	require.NoError(t, err)

	got, err := l.Select(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-02", got.Date)
	assert.Equal(t, "Entertainment", got.Category)
	assert.InDelta(t, 12.5, got.Amount, 1e-9)

	_, err = l.Select(ctx, e.ID+100)
	assert.True(t, model.IsNotFound(err))
}

func TestRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)

	cases := []struct {
		date, category, amount string
		field                  string
	}{
		{"", "Groceries", "10", ledger.FieldDate},
		{"2024-01-01", "Groceries", "", ledger.FieldAmount},
		{"2024-01-01", "  ", "10", ledger.FieldCategory},
		{"2024-01-01", "Groceries", "ten", ledger.FieldAmount},
		{"2024-01-01", "Groceries", "-3", ledger.FieldAmount},
	}
	for _, tc := range cases {
		_, err := l.Add(ctx, tc.date, tc.category, tc.amount)
		var ve *model.ValidationError
		require.ErrorAs(t, err, &ve, "add(%q, %q, %q)", tc.date, tc.category, tc.amount)
		assert.Equal(t, tc.field, ve.Field)
	}

	assert.Zero(t, l.Len())
	n, err := g.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRejectsOutOfRangeAmount(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)
	var notified int
	l.Subscribe(func(model.Summary) error { notified++; return nil })

	_, err := l.Add(ctx, "d", "Rent", "1e400")
	assert.True(t, model.IsValidation(err), "got %v", err)
	assert.Zero(t, notified)
	assert.Zero(t, l.Len())

	n, err := g.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, l.TotalSpend())
}

func TestUpdateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)

	e, err := l.Add(ctx, "d1", "Rent", "100")
	require.NoError(t, err)

	_, err = l.Update(ctx, e.ID, "d1", "Rent", "")
	assert.True(t, model.IsValidation(err))

	got, _ := l.Find(e.ID)
	assert.Equal(t, e, got)
	stored, err := g.ReadOne(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, stored)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)

	a, err := l.Add(ctx, "d1", "Rent", "100")
	require.NoError(t, err)
	b, err := l.Add(ctx, "d2", "Other", "5")
	require.NoError(t, err)

	require.NoError(t, l.Delete(ctx, a.ID))
	assert.Equal(t, []model.Expense{b}, l.Expenses())
	assert.InDelta(t, 5.0, l.TotalSpend(), 1e-9)

	// A second delete of the same id is a stale selection.
	err = l.Delete(ctx, a.ID)
	assert.True(t, model.IsNotFound(err))

	all, err := g.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Expense{b}, all)
}

func TestIDsComeFromStoreAfterDeletion(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	a, err := l.Add(ctx, "d1", "Rent", "1")
	require.NoError(t, err)
	b, err := l.Add(ctx, "d2", "Rent", "2")
	require.NoError(t, err)
	require.NoError(t, l.Delete(ctx, a.ID))

	c, err := l.Add(ctx, "d3", "Rent", "3")
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, c.ID)

	seen := map[int64]bool{}
	for _, e := range l.Expenses() {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
}

func TestUpdateVanishedRecordResyncs(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)

	e, err := l.Add(ctx, "d1", "Rent", "100")
	require.NoError(t, err)

	// Another writer removes the row behind the ledger's back.
	require.NoError(t, g.Delete(ctx, e.ID))

	_, err = l.Update(ctx, e.ID, "d1", "Rent", "200")
	assert.True(t, model.IsNotFound(err))
	assert.Zero(t, l.Len())
}

func TestStorageFailureLeavesLedgerConverged(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: newGateway(t)}
	l := ledger.New(fs)
	require.NoError(t, l.Load(ctx))

	e, err := l.Add(ctx, "d1", "Rent", "100")
	require.NoError(t, err)

	fs.failNext = true
	_, err = l.Add(ctx, "d2", "Rent", "50")
	require.True(t, model.IsStorage(err))
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, []model.Expense{e}, l.Expenses())

	fs.failNext = true
	_, err = l.Update(ctx, e.ID, "d1", "Other", "1")
	require.True(t, model.IsStorage(err))
	got, _ := l.Find(e.ID)
	assert.Equal(t, e, got)

	fs.failNext = true
	err = l.Delete(ctx, e.ID)
	require.True(t, model.IsStorage(err))
	assert.Equal(t, 1, l.Len())
	assert.InDelta(t, 100.0, l.TotalSpend(), 1e-9)
}

func TestClosedStoreDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)

	e, err := l.Add(ctx, "d1", "Rent", "100")
	require.NoError(t, err)
	require.NoError(t, g.Close())

	_, err = l.Add(ctx, "d2", "Rent", "1")
	assert.True(t, model.IsStorage(err))
	assert.Equal(t, []model.Expense{e}, l.Expenses())

	err = l.Resync(ctx)
	assert.True(t, model.IsStorage(err))
	assert.Equal(t, []model.Expense{e}, l.Expenses())
}

func TestLoadFailureKeepsList(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: newGateway(t)}
	l := ledger.New(fs)

	_, err := l.Add(ctx, "d1", "Rent", "10")
	require.NoError(t, err)

	fs.readErr = &model.StorageError{Op: "read all", Err: errDiskFull}
	require.Error(t, l.Load(ctx))
	assert.Equal(t, 1, l.Len())
}

func TestSubscribersNotified(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	var got []model.Summary
	l.Subscribe(func(s model.Summary) error {
		got = append(got, s)
		return nil
	})
	l.Subscribe(func(model.Summary) error {
		panic("chart blew up")
	})
	l.Subscribe(func(model.Summary) error {
		return fmt.Errorf("render failed")
	})

	e, err := l.Add(ctx, "d1", "Rent", "100")
	require.NoError(t, err)
	_, err = l.Update(ctx, e.ID, "d1", "Rent", "80")
	require.NoError(t, err)
	require.NoError(t, l.Delete(ctx, e.ID))

	require.Len(t, got, 3)
	assert.InDelta(t, 100.0, got[0].Total, 1e-9)
	assert.InDelta(t, 80.0, got[1].Total, 1e-9)
	assert.Zero(t, got[2].Count)
	assert.Zero(t, l.Len())
}

func TestTotalTracksRandomOperations(t *testing.T) {
	ctx := context.Background()
	l, g := newLedger(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		items := l.Expenses()
		switch op := rng.Intn(3); {
		case op == 0 || len(items) == 0:
			amount := fmt.Sprintf("%d.%02d", rng.Intn(500), rng.Intn(100))
			cat := model.Categories[rng.Intn(len(model.Categories))]
			_, err := l.Add(ctx, fmt.Sprintf("day-%d", i), cat, amount)
			require.NoError(t, err)
		case op == 1:
			target := items[rng.Intn(len(items))]
			_, err := l.Update(ctx, target.ID, target.Date, target.Category, fmt.Sprintf("%d", rng.Intn(100)))
			require.NoError(t, err)
		default:
			target := items[rng.Intn(len(items))]
			require.NoError(t, l.Delete(ctx, target.ID))
		}

		want := 0.0
		for _, e := range l.Expenses() {
			want += e.Amount
		}
		require.InDelta(t, want, l.TotalSpend(), 1e-6, "step %d", i)
	}

	stored, err := g.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, l.Expenses(), stored)
}
