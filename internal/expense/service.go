// Package expense records shop outgoings so the dashboard can show net
// profit, not just sales.
package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// Known expense categories. Free-form values are rejected to keep the
// monthly breakdown meaningful.
var categories = map[string]bool{
	"stock":       true,
	"rent":        true,
	"electricity": true,
	"salary":      true,
	"transport":   true,
	"maintenance": true,
	"other":       true,
}

// Service orchestrates expense tracking.
type Service struct {
	Store *store.Store
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Expense is the API representation of an outgoing.
type Expense struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	SpentOn   string    `json:"spent_on"`
	CreatedAt time.Time `json:"created_at"`
}

// Input captures payload for recording an expense. SpentOn is a YYYY-MM-DD
// date and defaults to today.
type Input struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	SpentOn  string  `json:"spent_on"`
}

const dateLayout = "2006-01-02"

func convertExpense(e store.Expense) Expense {
	return Expense{
		ID:        e.ID,
		Category:  e.Category,
		Amount:    e.Amount,
		Note:      e.Note,
		SpentOn:   e.SpentOn.Format(dateLayout),
		CreatedAt: e.CreatedAt,
	}
}

// Create records an expense.
func (s *Service) Create(ctx context.Context, in Input) (Expense, error) {
	in.Category = strings.TrimSpace(strings.ToLower(in.Category))
	if !categories[in.Category] {
		return Expense{}, common.BadRequest("unknown expense category")
	}
	if in.Amount <= 0 {
		return Expense{}, common.BadRequest("amount must be positive")
	}
	spentOn := s.now()
	if in.SpentOn != "" {
		parsed, err := time.Parse(dateLayout, in.SpentOn)
		if err != nil {
			return Expense{}, common.BadRequest("spent_on must be YYYY-MM-DD")
		}
		spentOn = parsed
	}
	e, err := s.Store.CreateExpense(ctx, store.ExpenseInput{
		Category: in.Category,
		Amount:   in.Amount,
		Note:     strings.TrimSpace(in.Note),
		SpentOn:  spentOn,
	})
	if err != nil {
		return Expense{}, err
	}
	return convertExpense(e), nil
}

// List returns a page of expenses in [from, to) with the period total.
func (s *Service) List(ctx context.Context, from, to time.Time, page, perPage int) ([]Expense, int64, float64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	rows, err := s.Store.ListExpenses(ctx, from, to, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, 0, err
	}
	count, err := s.Store.CountExpenses(ctx, from, to)
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.Store.SumExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, 0, 0, err
	}
	expenses := make([]Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, convertExpense(row))
	}
	return expenses, count, total, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Store.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.NotFound("expense not found")
		}
		return err
	}
	return nil
}
