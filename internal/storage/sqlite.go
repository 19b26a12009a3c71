package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"habitcheck/internal/core"
)

var _ Store = (*SQLiteRepository)(nil)

// SQLiteRepository implements Store over a local SQLite database. Dates are
// stored as RFC3339 UTC strings, so lexicographic order matches chronological
// order.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const expenseColumns = "id, category, amount, spent_at"

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e *core.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses (id, category, amount, spent_at) VALUES (?, ?, ?, ?)",
		e.ID, e.Category, e.Amount, formatDate(e.Date))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"category", e.Category,
		"amount", e.Amount,
		"date", formatDate(e.Date))

	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return r.list(ctx, "SELECT "+expenseColumns+" FROM expenses ORDER BY rowid")
}

func (r *SQLiteRepository) ListExpensesByDateDesc(ctx context.Context) ([]core.Expense, error) {
	return r.list(ctx, "SELECT "+expenseColumns+" FROM expenses ORDER BY spent_at DESC, rowid DESC")
}

func (r *SQLiteRepository) ListExpensesSince(ctx context.Context, since time.Time) ([]core.Expense, error) {
	return r.list(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE spent_at >= ? ORDER BY spent_at, rowid",
		formatDate(since))
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id string, patch core.ExpenseUpdate) (*core.Expense, error) {
	if !patch.IsEmpty() {
		sets := make([]string, 0, 3)
		args := make([]any, 0, 4)
		if patch.Category != nil {
			sets = append(sets, "category = ?")
			args = append(args, *patch.Category)
		}
		if patch.Amount != nil {
			sets = append(sets, "amount = ?")
			args = append(args, *patch.Amount)
		}
		if patch.Date != nil {
			sets = append(sets, "spent_at = ?")
			args = append(args, formatDate(*patch.Date))
		}
		args = append(args, id)

		res, err := r.db.ExecContext(ctx,
			"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("update expense: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("update rows affected: %w", err)
		}
		if affected == 0 {
			return nil, ErrNotFound
		}
	}

	return r.getExpense(ctx, id)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) getExpense(ctx context.Context, id string) (*core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var spentAt string
	if err := row.Scan(&e.ID, &e.Category, &e.Amount, &spentAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, err
		}
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	date, err := time.Parse(time.RFC3339, spentAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", spentAt, err)
	}
	e.Date = date
	return e, nil
}

// formatDate normalizes to second precision UTC so stored strings compare
// lexicographically in chronological order.
func formatDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
