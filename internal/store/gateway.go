// Package store provides the SQLite-backed persistence gateway for expenses.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/theirongolddev/spend/internal/model"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Gateway owns the expenses table and the single long-lived connection to it.
type Gateway struct {
	db   *sql.DB
	path string
}

// Open opens or creates the expense database at the given path and
// ensures the schema exists.
func Open(dbPath string) (*Gateway, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, &model.StorageError{Op: "open", Err: err}
	}
	// One session reused for every statement.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &model.StorageError{Op: "open", Err: err}
	}

	g := &Gateway{db: db, path: dbPath}
	if err := g.EnsureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug().Str("path", dbPath).Msg("expense store opened")
	return g, nil
}

// Close releases the database connection.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// Path returns the database file path.
func (g *Gateway) Path() string {
	return g.path
}

// EnsureSchema creates the expenses table if it is absent. Safe to call repeatedly.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, schemaSQL); err != nil {
		return &model.StorageError{Op: "create schema", Err: err}
	}
	return nil
}

// Create inserts a new expense and returns the id assigned by SQLite.
func (g *Gateway) Create(ctx context.Context, date, category string, amount float64) (int64, error) {
	res, err := g.db.ExecContext(ctx,
		"INSERT INTO expenses (date, category, amount) VALUES (?, ?, ?)",
		date, category, amount,
	)
	if err != nil {
		return 0, &model.StorageError{Op: "create", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &model.StorageError{Op: "create", Err: err}
	}

	log.Debug().Int64("id", id).Str("category", category).Float64("amount", amount).Msg("expense created")
	return id, nil
}

// ReadAll returns every stored expense in insertion order. Rows whose
// amount is not a finite number are logged and skipped.
func (g *Gateway) ReadAll(ctx context.Context) ([]model.Expense, error) {
	rows, err := g.db.QueryContext(ctx, "SELECT id, date, category, amount FROM expenses ORDER BY id")
	if err != nil {
		return nil, &model.StorageError{Op: "read all", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			log.Warn().Err(err).Int64("id", e.ID).Msg("skipping unreadable expense row")
			continue
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StorageError{Op: "read all", Err: err}
	}
	return expenses, nil
}

// ReadOne returns the expense with the given id, or a *model.NotFoundError.
func (g *Gateway) ReadOne(ctx context.Context, id int64) (model.Expense, error) {
	row := g.db.QueryRowContext(ctx, "SELECT id, date, category, amount FROM expenses WHERE id = ?", id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Expense{}, &model.NotFoundError{ID: id}
	}
	if err != nil {
		return model.Expense{}, &model.StorageError{Op: "read one", Err: err}
	}
	return e, nil
}

// Update overwrites every mutable field of the row matching e.ID.
// It returns a *model.NotFoundError when no row matched.
func (g *Gateway) Update(ctx context.Context, e model.Expense) error {
	res, err := g.db.ExecContext(ctx,
		"UPDATE expenses SET date = ?, category = ?, amount = ? WHERE id = ?",
		e.Date, e.Category, e.Amount, e.ID,
	)
	if err != nil {
		return &model.StorageError{Op: "update", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &model.StorageError{Op: "update", Err: err}
	}
	if n == 0 {
		return &model.NotFoundError{ID: e.ID}
	}

	log.Debug().Int64("id", e.ID).Msg("expense updated")
	return nil
}

// Delete removes the row matching id. Deleting an absent id is a no-op.
func (g *Gateway) Delete(ctx context.Context, id int64) error {
	res, err := g.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return &model.StorageError{Op: "delete", Err: err}
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Debug().Int64("id", id).Msg("expense deleted")
	}
	return nil
}

// Count returns the number of stored expenses.
func (g *Gateway) Count(ctx context.Context) (int, error) {
	var count int
	if err := g.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count); err != nil {
		return 0, &model.StorageError{Op: "count", Err: err}
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanExpense reads one row. date and category may be NULL when the table
// was written by another tool. On a bad amount the returned expense still
// carries the row id.
func scanExpense(s scanner) (model.Expense, error) {
	var e model.Expense
	var date, category sql.NullString
	var amount any
	if err := s.Scan(&e.ID, &date, &category, &amount); err != nil {
		return model.Expense{}, err
	}
	f, err := amountValue(amount)
	if err != nil {
		return model.Expense{ID: e.ID}, err
	}
	e.Date = date.String
	e.Category = category.String
	e.Amount = f
	return e, nil
}

// amountValue converts a raw amount column value. NULL reads as zero.
func amountValue(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = x
	case int64:
		f = float64(x)
	default:
		return 0, fmt.Errorf("amount %v is not a number", v)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("amount %v is not finite", f)
	}
	return f, nil
}
