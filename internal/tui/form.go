package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/theirongolddev/spend/internal/ledger"
	"github.com/theirongolddev/spend/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

type formKind int

const (
	formNone formKind = iota
	formAdd
	formEdit
	formDelete
)

func (k formKind) title() string {
	switch k {
	case formAdd:
		return "New Expense"
	case formEdit:
		return "Edit Expense"
	case formDelete:
		return "Delete Expense"
	default:
		return ""
	}
}

// entryValues is bound to the huh fields of the open form.
type entryValues struct {
	Date      string
	Category  string
	Amount    string
	Confirmed bool
}

// categoryOptions returns the configured categories, plus current when a
// stored record uses one outside the list.
func categoryOptions(configured []string, current string) []string {
	opts := slices.Clone(configured)
	if current != "" && !slices.Contains(opts, current) {
		opts = append(opts, current)
	}
	if len(opts) == 0 {
		opts = slices.Clone(model.Categories)
	}
	return opts
}

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

func newEntryForm(v *entryValues, categories []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("2024-01-31").
				Value(&v.Date).
				Validate(ledger.ValidateDate),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(categoryOptions(categories, v.Category)...)...).
				Value(&v.Category),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&v.Amount).
				Validate(ledger.ValidateAmount),
		),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)
}

func newDeleteForm(e model.Expense, v *entryValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete expense #%d?", e.ID)).
				Description(fmt.Sprintf("%s · %s · %s", e.Date, e.Category, formatAmountInput(e.Amount))).
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.Confirmed),
		),
	).WithKeyMap(formKeyMap())
}

// formatAmountInput renders a stored amount the way a user would type it.
func formatAmountInput(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func (a App) formWidth() int {
	return max(a.contentWidth()-6, 20)
}

func (a App) startForm(kind formKind, f *huh.Form, v *entryValues, id int64) (tea.Model, tea.Cmd) {
	a.form = f.WithWidth(a.formWidth())
	a.formKind = kind
	a.formVals = v
	a.formID = id
	return a, a.form.Init()
}

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	v := &entryValues{
		Date:     time.Now().Format(a.cfg.General.DateFormat),
		Category: a.cfg.General.DefaultCategory,
	}
	return a.startForm(formAdd, newEntryForm(v, a.cfg.Ledger.Categories), v, 0)
}

// openEditForm reads the stored record so the form shows what the
// database holds, not what the table last rendered.
func (a App) openEditForm(id int64) (tea.Model, tea.Cmd) {
	e, err := a.ledger.Select(context.Background(), id)
	if err != nil {
		if model.IsNotFound(err) {
			rerr := a.ledger.Resync(context.Background())
			a.refreshTable()
			if rerr != nil {
				return a, a.flashError(rerr)
			}
		}
		return a, a.flashError(err)
	}

	v := &entryValues{
		Date:     e.Date,
		Category: e.Category,
		Amount:   formatAmountInput(e.Amount),
	}
	return a.startForm(formEdit, newEntryForm(v, a.cfg.Ledger.Categories), v, id)
}

func (a App) openDeleteForm(e model.Expense) (tea.Model, tea.Cmd) {
	v := &entryValues{}
	return a.startForm(formDelete, newDeleteForm(e, v), v, e.ID)
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
	a.formID = 0
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a, a.submitForm()
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm applies the completed form to the ledger.
func (a *App) submitForm() tea.Cmd {
	kind, v, id := a.formKind, a.formVals, a.formID
	a.closeForm()
	ctx := context.Background()

	var cmd tea.Cmd
	switch kind {
	case formAdd:
		e, err := a.ledger.Add(ctx, v.Date, v.Category, v.Amount)
		if err != nil {
			cmd = a.flashError(err)
			break
		}
		cmd = a.setFlash(fmt.Sprintf("Added expense #%d", e.ID), false)
		a.refreshTable()
		a.table.GotoBottom()
	case formEdit:
		if _, err := a.ledger.Update(ctx, id, v.Date, v.Category, v.Amount); err != nil {
			cmd = a.flashError(err)
			break
		}
		cmd = a.setFlash(fmt.Sprintf("Updated expense #%d", id), false)
	case formDelete:
		if !v.Confirmed {
			return nil
		}
		return a.deleteExpense(id)
	}
	a.refreshTable()
	return cmd
}
