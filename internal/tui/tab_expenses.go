package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fixed column widths; Category takes the rest.
const (
	colIDWidth     = 6
	colDateWidth   = 12
	colAmountWidth = 14
	minCategoryW   = 12

	// card border + padding + title + hint line
	expensesChrome = 5
)

func expenseColumns(categoryW int) []table.Column {
	return []table.Column{
		{Title: "ID", Width: colIDWidth},
		{Title: "Date", Width: colDateWidth},
		{Title: "Category", Width: categoryW},
		{Title: "Amount", Width: colAmountWidth},
	}
}

func expenseTableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(t.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(true)
	return s
}

func newExpenseTable() table.Model {
	tbl := table.New(
		table.WithColumns(expenseColumns(minCategoryW)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(expenseTableStyles())
	return tbl
}

// layout sizes the table to the current window.
func (a *App) layout() {
	inner := components.CardInnerWidth(a.contentWidth())
	// Each column renders with one cell of padding on both sides.
	categoryW := max(inner-colIDWidth-colDateWidth-colAmountWidth-8, minCategoryW)
	a.table.SetColumns(expenseColumns(categoryW))
	a.table.SetWidth(inner)
	a.table.SetHeight(max(a.contentHeight()-expensesChrome, 3))
}

// refreshTable rebuilds the rows from the ledger's displayed list.
func (a *App) refreshTable() {
	items := a.ledger.Expenses()
	rows := make([]table.Row, len(items))
	for i, e := range items {
		rows[i] = table.Row{
			strconv.FormatInt(e.ID, 10),
			cli.Truncate(e.Date, colDateWidth),
			e.Category,
			fmt.Sprintf("%*s", colAmountWidth, cli.FormatAmount(e.Amount)),
		}
	}
	a.table.SetRows(rows)
	if c := a.table.Cursor(); c >= len(rows) {
		a.table.SetCursor(max(len(rows)-1, 0))
	}
}

// selected returns the expense under the table cursor.
func (a App) selected() (model.Expense, bool) {
	items := a.ledger.Expenses()
	c := a.table.Cursor()
	if c < 0 || c >= len(items) {
		return model.Expense{}, false
	}
	return items[c], true
}

func (a App) updateExpensesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a", "n":
		return a.openAddForm()
	case "enter", "e":
		e, ok := a.selected()
		if !ok {
			return a, nil
		}
		return a.openEditForm(e.ID)
	case "d", "delete", "x":
		e, ok := a.selected()
		if !ok {
			return a, nil
		}
		if a.cfg.General.ConfirmDelete {
			return a.openDeleteForm(e)
		}
		return a, a.deleteExpense(e.ID)
	case "r":
		return a, a.resync()
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *App) deleteExpense(id int64) tea.Cmd {
	err := a.ledger.Delete(context.Background(), id)
	a.refreshTable()
	if err != nil {
		return a.flashError(err)
	}
	return a.setFlash(fmt.Sprintf("Deleted expense #%d", id), false)
}

func (a App) renderExpensesTab(cw int) string {
	t := theme.Active

	if a.form != nil {
		return components.ContentCard(a.formKind.title(), a.form.View(), cw)
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var body strings.Builder
	if a.ledger.Len() == 0 {
		body.WriteString(mutedStyle.Render("No expenses yet. Press a to add one."))
	} else {
		body.WriteString(a.table.View())
	}
	body.WriteString("\n")
	body.WriteString(hintStyle.Render("[a] add  [enter] edit  [d] delete  [r] reload"))

	return components.ContentCard("Expenses", body.String(), cw)
}
