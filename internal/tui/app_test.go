package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/ledger"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (App, *store.Gateway) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	g, err := store.Open(filepath.Join(dir, "expenses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	l := ledger.New(g)
	require.NoError(t, l.Load(context.Background()))

	m, _ := NewApp(l, config.DefaultConfig(), false).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(App), g
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

func submit(a App, kind formKind, v entryValues, id int64) App {
	a.formKind, a.formVals, a.formID = kind, &v, id
	a.submitForm()
	return a
}

func TestAddUpdatesTableAndChart(t *testing.T) {
	a, _ := newTestApp(t)

	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Groceries", Amount: "50"}, 0)
	a = submit(a, formAdd, entryValues{Date: "d2", Category: "Rent", Amount: "100"}, 0)

	assert.False(t, a.flashErr, a.flash)
	assert.Len(t, a.table.Rows(), 2)
	assert.InDelta(t, 150.0, a.chart.summary.Total, 1e-9)
	assert.Equal(t, map[string][]float64{"Groceries": {50}, "Rent": {100}}, a.chart.byCategory)
	assert.Nil(t, a.form)
}

func TestInvalidAddFlashesAndDoesNotMutate(t *testing.T) {
	a, g := newTestApp(t)

	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Rent", Amount: ""}, 0)

	assert.True(t, a.flashErr)
	assert.Contains(t, a.flash, "amount")
	assert.Empty(t, a.table.Rows())
	n, err := g.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEditKeepsID(t *testing.T) {
	a, _ := newTestApp(t)
	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Groceries", Amount: "50"}, 0)
	e, ok := a.selected()
	require.True(t, ok)

	a = submit(a, formEdit, entryValues{Date: "d1", Category: "Utilities", Amount: "75"}, e.ID)

	got, ok := a.selected()
	require.True(t, ok)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "Utilities", got.Category)
	assert.Equal(t, "Utilities", a.table.Rows()[0][2])
}

func TestEditOpensPrefilledForm(t *testing.T) {
	a, _ := newTestApp(t)
	a = submit(a, formAdd, entryValues{Date: "2024-01-01", Category: "Rent", Amount: "1200"}, 0)

	a = press(t, a, runes("e"))
	require.NotNil(t, a.form)
	assert.Equal(t, formEdit, a.formKind)
	assert.Equal(t, "2024-01-01", a.formVals.Date)
	assert.Equal(t, "Rent", a.formVals.Category)
	assert.Equal(t, "1200.00", a.formVals.Amount)
}

func TestEditOfVanishedRecordResyncs(t *testing.T) {
	a, g := newTestApp(t)
	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Rent", Amount: "1"}, 0)
	e, _ := a.selected()
	require.NoError(t, g.Delete(context.Background(), e.ID))

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, a.form)
	assert.True(t, a.flashErr)
	assert.Empty(t, a.table.Rows())
}

// unreadableStore fails ReadAll once readErr is set.
type unreadableStore struct {
	*store.Gateway
	readErr error
}

func (s *unreadableStore) ReadAll(ctx context.Context) ([]model.Expense, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.Gateway.ReadAll(ctx)
}

func TestEditOfVanishedRecordReportsFailedResync(t *testing.T) {
	_, g := newTestApp(t)
	s := &unreadableStore{Gateway: g}
	l := ledger.New(s)
	require.NoError(t, l.Load(context.Background()))
	a := press(t, NewApp(l, config.DefaultConfig(), false), tea.WindowSizeMsg{Width: 100, Height: 30})

	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Rent", Amount: "1"}, 0)
	e, ok := a.selected()
	require.True(t, ok)
	require.NoError(t, g.Delete(context.Background(), e.ID))
	s.readErr = &model.StorageError{Op: "read all", Err: errors.New("disk gone")}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, a.form)
	assert.True(t, a.flashErr)
	assert.Contains(t, a.flash, "disk gone")
}

func TestDeleteWithoutConfirm(t *testing.T) {
	a, _ := newTestApp(t)
	a.cfg.General.ConfirmDelete = false
	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Rent", Amount: "1"}, 0)
	a = submit(a, formAdd, entryValues{Date: "d2", Category: "Other", Amount: "2"}, 0)

	a.table.SetCursor(0)
	a = press(t, a, runes("d"))

	require.Len(t, a.table.Rows(), 1)
	assert.Equal(t, "Other", a.table.Rows()[0][2])
	assert.InDelta(t, 2.0, a.chart.summary.Total, 1e-9)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	a, _ := newTestApp(t)
	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Rent", Amount: "1"}, 0)

	a = press(t, a, runes("d"))
	require.NotNil(t, a.form)
	assert.Equal(t, formDelete, a.formKind)

	// Declined confirmation leaves the record alone.
	a = submit(a, formDelete, entryValues{Confirmed: false}, a.formID)
	assert.Len(t, a.table.Rows(), 1)
}

func TestStorageFailureKeepsRows(t *testing.T) {
	a, g := newTestApp(t)
	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Rent", Amount: "1"}, 0)
	require.NoError(t, g.Close())

	a = submit(a, formAdd, entryValues{Date: "d2", Category: "Rent", Amount: "2"}, 0)
	assert.True(t, a.flashErr)
	assert.Contains(t, a.flash, "Storage error")
	assert.Len(t, a.table.Rows(), 1)
}

func TestTabNavigation(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, runes("2"))
	assert.Equal(t, tabSummary, a.activeTab)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabSettings, a.activeTab)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabExpenses, a.activeTab)

	a = press(t, a, tea.MouseMsg{X: 13, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, tabSummary, a.activeTab)
}

func TestHelpToggle(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, runes("?"))
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	a = press(t, a, runes("x"))
	assert.False(t, a.showHelp)
}

func TestViewsRender(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Contains(t, a.View(), "No expenses yet")

	a = submit(a, formAdd, entryValues{Date: "d1", Category: "Groceries", Amount: "50"}, 0)
	a = submit(a, formAdd, entryValues{Date: "d2", Category: "Rent", Amount: "150"}, 0)

	for tab, want := range map[int]string{
		tabExpenses: "Groceries",
		tabSummary:  "Spend by Category",
		tabSettings: "Confirm Delete",
	} {
		a.activeTab = tab
		view := a.View()
		assert.Contains(t, view, want, "tab %d", tab)
		assert.Len(t, strings.Split(view, "\n"), 30, "tab %d", tab)
	}
}

func TestSettingsSavePersists(t *testing.T) {
	a, _ := newTestApp(t)
	a.activeTab = tabSettings

	a = press(t, a, runes("j"))
	a = press(t, a, runes("j"))
	a = press(t, a, runes("j"))
	require.Equal(t, settingsFieldConfirmDelete, a.settings.cursor)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, a.settings.editing)
	a.settings.input.SetValue("false")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	require.NoError(t, a.settings.saveErr)
	assert.False(t, a.cfg.General.ConfirmDelete)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.General.ConfirmDelete)
}

func TestSettingsRejectsUnknownTheme(t *testing.T) {
	a, _ := newTestApp(t)
	a.activeTab = tabSettings

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a.settings.input.SetValue("neon")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Error(t, a.settings.saveErr)
	assert.Equal(t, "flexoki-dark", a.cfg.Appearance.Theme)
	assert.False(t, config.Exists())
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	v.Theme = "tokyo-night"
	v.DefaultCategory = "Rent"
	v.ConfirmDelete = false

	got := v.Apply(cfg)
	assert.Equal(t, "tokyo-night", got.Appearance.Theme)
	assert.Equal(t, "Rent", got.General.DefaultCategory)
	assert.False(t, got.General.ConfirmDelete)

	v.Theme = "bogus"
	assert.Equal(t, cfg.Appearance.Theme, v.Apply(cfg).Appearance.Theme)
}

func TestCategoryOptionsKeepsCurrent(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, categoryOptions([]string{"A", "B"}, "A"))
	assert.Equal(t, []string{"A", "B", "Z"}, categoryOptions([]string{"A", "B"}, "Z"))
	assert.NotEmpty(t, categoryOptions(nil, ""))
}
