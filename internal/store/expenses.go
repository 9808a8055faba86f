package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Expense is a shop outgoing (rent, electricity, stock purchase, ...).
type Expense struct {
	ID        string
	Category  string
	Amount    float64
	Note      string
	SpentOn   time.Time
	CreatedAt time.Time
}

// ExpenseInput captures fields for inserts.
type ExpenseInput struct {
	Category string
	Amount   float64
	Note     string
	SpentOn  time.Time
}

const expenseColumns = `id, category, amount, note, spent_on, created_at`

func scanExpense(row pgx.Row) (Expense, error) {
	var (
		e         Expense
		id        pgtype.UUID
		note      pgtype.Text
		spentOn   pgtype.Date
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &e.Category, &e.Amount, &note, &spentOn, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, ErrNotFound
		}
		return Expense{}, err
	}
	e.ID = uuidString(id)
	e.Note = textToString(note)
	if spentOn.Valid {
		e.SpentOn = spentOn.Time
	}
	e.CreatedAt = timeFromPG(createdAt)
	return e, nil
}

// CreateExpense inserts an expense and returns the stored row.
func (s *Store) CreateExpense(ctx context.Context, in ExpenseInput) (Expense, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO expenses (category, amount, note, spent_on)
		VALUES ($1, $2, $3, $4)
		RETURNING `+expenseColumns,
		in.Category, in.Amount, toText(in.Note), in.SpentOn)
	return scanExpense(row)
}

// ListExpenses returns expenses in [from, to), newest first. Zero bounds are
// open-ended.
func (s *Store) ListExpenses(ctx context.Context, from, to time.Time, limit, offset int) ([]Expense, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE ($1::date IS NULL OR spent_on >= $1)
		  AND ($2::date IS NULL OR spent_on < $2)
		ORDER BY spent_on DESC, created_at DESC
		LIMIT $3 OFFSET $4`,
		nullableTime(from), nullableTime(to), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CountExpenses returns the number of expenses in [from, to).
func (s *Store) CountExpenses(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM expenses
		WHERE ($1::date IS NULL OR spent_on >= $1)
		  AND ($2::date IS NULL OR spent_on < $2)`,
		nullableTime(from), nullableTime(to)).Scan(&total)
	return total, err
}

// SumExpensesBetween totals expense amounts in [from, to).
func (s *Store) SumExpensesBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := s.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE ($1::date IS NULL OR spent_on >= $1)
		  AND ($2::date IS NULL OR spent_on < $2)`,
		nullableTime(from), nullableTime(to)).Scan(&total)
	return total, err
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	uid, err := toUUID(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := s.Pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
