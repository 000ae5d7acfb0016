// Package model defines domain types for spend expenses and summaries.
package model

// Expense is a single dated, categorized monetary record.
type Expense struct {
	ID       int64 // assigned by the store, never derived from list position
	Date     string
	Category string
	Amount   float64
}

// Categories is the default set offered by the entry form.
// The store accepts any category text.
var Categories = []string{"Groceries", "Utilities", "Rent", "Entertainment", "Other"}
