package ledger

import (
	"math"
	"sort"

	"github.com/theirongolddev/spend/internal/model"

	"github.com/shopspring/decimal"
)

// sumAmounts adds amounts in decimal so repeated additions do not drift.
// Non-finite values cannot be represented and are left out.
func sumAmounts(amounts []float64) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		if math.IsInf(a, 0) || math.IsNaN(a) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total
}

// TotalSpend returns the sum of amounts over every displayed expense.
func (l *Ledger) TotalSpend() float64 {
	amounts := make([]float64, len(l.items))
	for i, e := range l.items {
		amounts[i] = e.Amount
	}
	return sumAmounts(amounts).InexactFloat64()
}

// ByCategory groups displayed amounts by category, in insertion order
// within each category. Zero amounts are kept.
func (l *Ledger) ByCategory() map[string][]float64 {
	out := make(map[string][]float64)
	for _, e := range l.items {
		out[e.Category] = append(out[e.Category], e.Amount)
	}
	return out
}

// Summary computes totals and per-category shares for the displayed expenses.
func (l *Ledger) Summary() model.Summary {
	return Summarize(l.items)
}

// Summarize computes a summary for an arbitrary slice of expenses.
func Summarize(expenses []model.Expense) model.Summary {
	byCat := make(map[string][]float64)
	all := make([]float64, 0, len(expenses))
	for _, e := range expenses {
		byCat[e.Category] = append(byCat[e.Category], e.Amount)
		all = append(all, e.Amount)
	}

	total := sumAmounts(all)
	s := model.Summary{
		Count: len(expenses),
		Total: total.InexactFloat64(),
	}

	for cat, amounts := range byCat {
		catTotal := sumAmounts(amounts)
		ct := model.CategoryTotal{
			Category: cat,
			Count:    len(amounts),
			Total:    catTotal.InexactFloat64(),
		}
		if total.IsPositive() {
			ct.Share = catTotal.Div(total).InexactFloat64()
		}
		s.Categories = append(s.Categories, ct)
	}

	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Total != s.Categories[j].Total {
			return s.Categories[i].Total > s.Categories[j].Total
		}
		return s.Categories[i].Category < s.Categories[j].Category
	})

	return s
}
