package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/georgemunganga/product-manager/internal/apierror"
	"github.com/georgemunganga/product-manager/internal/database"
)

// Service defines customer business logic.
type Service interface {
	// Add creates missing customers and links all of them to the product.
	Add(ctx context.Context, productID int64, names []string) error
	Unlink(ctx context.Context, productID, customerID int64) error
	UnlinkAll(ctx context.Context, productID int64) error
	Rename(ctx context.Context, id int64, newName string) (*Customer, error)
	// Resolve finds a customer by exact, case-insensitive name.
	Resolve(ctx context.Context, name string) (*Customer, error)
	// Search returns the ids of products linked to the first customer whose
	// name contains substr.
	Search(ctx context.Context, substr string) ([]int64, error)
	ListForProduct(ctx context.Context, productID int64) ([]Customer, error)
	List(ctx context.Context) ([]Customer, error)
}

type service struct {
	repo Repository
	tx   database.Transactor
}

func NewService(repo Repository, tx database.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) Add(ctx context.Context, productID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			id, err := s.repo.Ensure(ctx, name)
			if err != nil {
				return fmt.Errorf("ensure customer %q: %w", name, err)
			}
			if err := s.repo.Link(ctx, productID, id); err != nil {
				if database.IsForeignKeyViolation(err) {
					return apierror.NewNotFound("product %d not found", productID)
				}
				return fmt.Errorf("link customer %q: %w", name, err)
			}
		}
		zerolog.Ctx(ctx).Info().Int64("product_id", productID).Strs("customers", names).Msg("customers linked")
		return nil
	})
}

func (s *service) Unlink(ctx context.Context, productID, customerID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.Unlink(ctx, productID, customerID)
		if err != nil {
			return fmt.Errorf("unlink customer: %w", err)
		}
		if !ok {
			return apierror.NewNotFound("customer %d was not linked to product %d", customerID, productID)
		}
		zerolog.Ctx(ctx).Info().Int64("product_id", productID).Int64("customer_id", customerID).Msg("customer unlinked")
		return nil
	})
}

func (s *service) UnlinkAll(ctx context.Context, productID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.repo.UnlinkAll(ctx, productID)
		return err
	})
}

func (s *service) Rename(ctx context.Context, id int64, newName string) (*Customer, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, apierror.NewValidation("new_name must not be empty")
	}
	var c *Customer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.repo.Rename(ctx, id, newName)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return apierror.NewNotFound("customer %d not found", id)
		case database.IsUniqueViolation(err):
			return apierror.NewConflict("customer %q already exists", newName)
		case err != nil:
			return fmt.Errorf("rename customer: %w", err)
		}
		zerolog.Ctx(ctx).Info().Int64("customer_id", id).Str("customer_name", newName).Msg("customer renamed")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Resolve(ctx context.Context, name string) (*Customer, error) {
	c, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierror.NewNotFound("customer %s not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return c, nil
}

func (s *service) Search(ctx context.Context, substr string) ([]int64, error) {
	c, err := s.repo.FindFirstMatching(ctx, substr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierror.NewNotFound("customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("search customer: %w", err)
	}
	return s.repo.LinkedProductIDs(ctx, c.ID)
}

func (s *service) ListForProduct(ctx context.Context, productID int64) ([]Customer, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}
