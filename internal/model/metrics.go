package model

// CategoryTotal holds aggregated spend for a single category.
type CategoryTotal struct {
	Category string
	Count    int
	Total    float64
	Share    float64 // 0-1 fraction of the summary total
}

// Summary holds the derived totals for the currently displayed expenses.
type Summary struct {
	Count      int
	Total      float64
	Categories []CategoryTotal // sorted by Total descending, ties by name
}

// Amounts returns category totals in Categories order, for chart slices.
func (s Summary) Amounts() []float64 {
	out := make([]float64, len(s.Categories))
	for i, c := range s.Categories {
		out[i] = c.Total
	}
	return out
}
