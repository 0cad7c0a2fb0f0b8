package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/georgemunganga/product-manager/internal/apierror"
	"github.com/georgemunganga/product-manager/internal/database"
	"github.com/georgemunganga/product-manager/internal/modules/customer"
)

// CustomerResolver looks customers up by name.
type CustomerResolver interface {
	Resolve(ctx context.Context, name string) (*customer.Customer, error)
}

// Service defines quote business logic.
type Service interface {
	// Add inserts one quote per customer name. Every customer must exist.
	Add(ctx context.Context, productID int64, quotes map[string]Detail) error
	Delete(ctx context.Context, productID, quoteID int64) error
	RemoveAll(ctx context.Context, productID int64) error
	Edit(ctx context.Context, id int64, u Update) (*Quote, error)
	// Get returns nil, nil when the quote does not exist.
	Get(ctx context.Context, id int64) (*Quote, error)
	ListForProduct(ctx context.Context, productID int64) ([]Quote, error)
	List(ctx context.Context) ([]Quote, error)
}

type service struct {
	repo      Repository
	customers CustomerResolver
	tx        database.Transactor
}

func NewService(repo Repository, customers CustomerResolver, tx database.Transactor) Service {
	return &service{repo: repo, customers: customers, tx: tx}
}

func (s *service) Add(ctx context.Context, productID int64, quotes map[string]Detail) error {
	if len(quotes) == 0 {
		return nil
	}
	names := make([]string, 0, len(quotes))
	for name, d := range quotes {
		if !inRange(roundPtr(d.Quote)) {
			return apierror.NewValidation("quote for %q must be between 0 and %.2f", name, MaxValue-0.01)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, name := range names {
			c, err := s.customers.Resolve(ctx, name)
			if err != nil {
				return err
			}
			d := quotes[name]
			id, err := s.repo.Insert(ctx, productID, c.ID, roundPtr(d.Quote), d.Remark)
			if err != nil {
				if database.IsForeignKeyViolation(err) {
					return apierror.NewNotFound("product %d not found", productID)
				}
				if database.IsInvalidValue(err) {
					return apierror.Wrap(apierror.Validation, err, fmt.Sprintf("quote for %q out of range", name))
				}
				return fmt.Errorf("insert quote for %q: %w", name, err)
			}
			zerolog.Ctx(ctx).Info().
				Int64("quote_id", id).
				Int64("product_id", productID).
				Str("customer_name", c.Name).
				Msg("quote added")
		}
		return nil
	})
}

func (s *service) Delete(ctx context.Context, productID, quoteID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.Delete(ctx, productID, quoteID)
		if err != nil {
			return fmt.Errorf("delete quote: %w", err)
		}
		if !ok {
			return apierror.NewNotFound("quote %d not found", quoteID)
		}
		return nil
	})
}

func (s *service) RemoveAll(ctx context.Context, productID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.repo.DeleteByProduct(ctx, productID)
		return err
	})
}

func (s *service) Edit(ctx context.Context, id int64, u Update) (*Quote, error) {
	u.Quote = roundPtr(u.Quote)
	if !inRange(u.Quote) {
		return nil, apierror.NewValidation("quote must be between 0 and %.2f", MaxValue-0.01)
	}

	var q *Quote
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if !u.empty() {
			ok, err := s.repo.Update(ctx, id, u)
			switch {
			case u.CustomerID != nil && database.IsForeignKeyViolation(err):
				return apierror.NewNotFound("customer %d not found", *u.CustomerID)
			case database.IsInvalidValue(err):
				return apierror.Wrap(apierror.Validation, err, "quote out of range")
			case err != nil:
				return fmt.Errorf("update quote: %w", err)
			case !ok:
				return apierror.NewNotFound("quote %d not found", id)
			}
		}
		var err error
		q, err = s.Get(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return apierror.NewNotFound("quote %d not found", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("quote_id", id).Msg("quote edited")
	return q, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Quote, error) {
	q, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func (s *service) ListForProduct(ctx context.Context, productID int64) ([]Quote, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) List(ctx context.Context) ([]Quote, error) {
	return s.repo.List(ctx)
}
