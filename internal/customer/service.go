// Package customer keeps the shop's credit book: who owes what, and the
// WhatsApp reminders that chase it.
package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/obs"
	"github.com/smartdukaan/backend-dukaan/internal/share"
	"github.com/smartdukaan/backend-dukaan/internal/store"
	"github.com/smartdukaan/backend-dukaan/internal/validate"
)

// Service orchestrates customer and credit-book operations.
type Service struct {
	Store *store.Store
}

// Customer is the API representation of a credit-book entry.
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreditBalance float64   `json:"credit_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Input captures payload for creating or updating a customer.
type Input struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"omitempty,inphone"`
	Address string `json:"address"`
}

func convertCustomer(c store.Customer) Customer {
	return Customer{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Address:       c.Address,
		CreditBalance: c.CreditBalance,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func validateInput(in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if err := validate.Struct(in); err != nil {
		return common.BadRequest(err.Error())
	}
	return nil
}

// Create adds a customer.
func (s *Service) Create(ctx context.Context, in Input) (Customer, error) {
	if err := validateInput(&in); err != nil {
		return Customer{}, err
	}
	c, err := s.Store.CreateCustomer(ctx, store.CustomerInput{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		return Customer{}, err
	}
	return convertCustomer(c), nil
}

// Get fetches a customer by id.
func (s *Service) Get(ctx context.Context, id string) (Customer, error) {
	c, err := s.Store.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Customer{}, common.NotFound("customer not found")
		}
		return Customer{}, err
	}
	return convertCustomer(c), nil
}

// List returns a page of customers with the total count.
func (s *Service) List(ctx context.Context, search string, page, perPage int) ([]Customer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	rows, err := s.Store.ListCustomers(ctx, strings.TrimSpace(search), perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.CountCustomers(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, 0, err
	}
	customers := make([]Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, convertCustomer(row))
	}
	return customers, total, nil
}

// Update replaces a customer's details. The credit balance is only ever
// moved by billing operations.
func (s *Service) Update(ctx context.Context, id string, in Input) (Customer, error) {
	if err := validateInput(&in); err != nil {
		return Customer{}, err
	}
	c, err := s.Store.UpdateCustomer(ctx, id, store.CustomerInput{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Customer{}, common.NotFound("customer not found")
		}
		return Customer{}, err
	}
	return convertCustomer(c), nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.Store.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.NotFound("customer not found")
		}
		return err
	}
	if c.CreditBalance > 0 {
		return common.BadRequest("customer has outstanding credit")
	}
	if err := s.Store.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.NotFound("customer not found")
		}
		return err
	}
	return nil
}

// CreditBook lists customers with an outstanding balance, largest first.
func (s *Service) CreditBook(ctx context.Context) ([]Customer, error) {
	rows, err := s.Store.ListCustomersWithCredit(ctx)
	if err != nil {
		return nil, err
	}
	customers := make([]Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, convertCustomer(row))
	}
	return customers, nil
}

// SettleCredit records a repayment against a customer's balance. A zero or
// missing amount settles the full balance, matching the credit-book "mark as
// paid" flow.
func (s *Service) SettleCredit(ctx context.Context, id string, amount float64) (Customer, error) {
	c, err := s.Store.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Customer{}, common.NotFound("customer not found")
		}
		return Customer{}, err
	}
	if c.CreditBalance <= 0 {
		return Customer{}, common.BadRequest("customer has no outstanding credit")
	}
	if amount < 0 {
		return Customer{}, common.BadRequest("amount must not be negative")
	}
	if amount == 0 {
		amount = c.CreditBalance
	}
	if amount > c.CreditBalance {
		return Customer{}, common.BadRequest("amount exceeds outstanding credit")
	}

	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return Customer{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	balance, err := s.Store.AdjustCustomerCredit(ctx, tx, id, -amount)
	if err != nil {
		return Customer{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Customer{}, err
	}

	if obs.CreditSettlementsTotal != nil {
		obs.CreditSettlementsTotal.Inc()
	}
	c.CreditBalance = balance
	return convertCustomer(c), nil
}

// Reminder builds a WhatsApp payment reminder for a customer's outstanding
// balance.
func (s *Service) Reminder(ctx context.Context, id string) (string, error) {
	c, err := s.Store.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", common.NotFound("customer not found")
		}
		return "", err
	}
	if c.CreditBalance <= 0 {
		return "", common.BadRequest("customer has no outstanding credit")
	}
	if c.Phone == "" {
		return "", common.BadRequest("customer has no phone number")
	}
	message := share.PaymentReminder(c.Name, c.CreditBalance, nil)
	return share.WhatsAppLink(message, c.Phone), nil
}
