package tag

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

// Service defines tag business logic.
type Service interface {
	// Add creates missing tags and links all of them to the product.
	Add(ctx context.Context, productID int64, names []string) error
	Unlink(ctx context.Context, productID, tagID int64) error
	UnlinkAll(ctx context.Context, productID int64) error
	Rename(ctx context.Context, id int64, newName string) (*Tag, error)
	// Search returns the ids of products linked to the first tag whose
	// name contains substr.
	Search(ctx context.Context, substr string) ([]int64, error)
	ListForProduct(ctx context.Context, productID int64) ([]Tag, error)
	List(ctx context.Context) ([]Tag, error)
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
				return fmt.Errorf("ensure tag %q: %w", name, err)
			}
			if err := s.repo.Link(ctx, productID, id); err != nil {
				if database.IsForeignKeyViolation(err) {
					return apierror.NewNotFound("product %d not found", productID)
				}
				return fmt.Errorf("link tag %q: %w", name, err)
			}
		}
		zerolog.Ctx(ctx).Info().Int64("product_id", productID).Strs("tags", names).Msg("tags linked")
		return nil
	})
}

func (s *service) Unlink(ctx context.Context, productID, tagID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.Unlink(ctx, productID, tagID)
		if err != nil {
			return fmt.Errorf("unlink tag: %w", err)
		}
		if !ok {
			return apierror.NewNotFound("tag %d was not linked to product %d", tagID, productID)
		}
		zerolog.Ctx(ctx).Info().Int64("product_id", productID).Int64("tag_id", tagID).Msg("tag unlinked")
		return nil
	})
}

func (s *service) UnlinkAll(ctx context.Context, productID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.repo.UnlinkAll(ctx, productID)
		return err
	})
}

func (s *service) Rename(ctx context.Context, id int64, newName string) (*Tag, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, apierror.NewValidation("new_name must not be empty")
	}
	var t *Tag
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.repo.Rename(ctx, id, newName)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return apierror.NewNotFound("tag %d not found", id)
		case database.IsUniqueViolation(err):
			return apierror.NewConflict("tag %q already exists", newName)
		case err != nil:
			return fmt.Errorf("rename tag: %w", err)
		}
		zerolog.Ctx(ctx).Info().Int64("tag_id", id).Str("tag_name", newName).Msg("tag renamed")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Search(ctx context.Context, substr string) ([]int64, error) {
	t, err := s.repo.FindFirstMatching(ctx, substr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierror.NewNotFound("tag not found")
	}
	if err != nil {
		return nil, fmt.Errorf("search tag: %w", err)
	}
	return s.repo.LinkedProductIDs(ctx, t.ID)
}

func (s *service) ListForProduct(ctx context.Context, productID int64) ([]Tag, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) List(ctx context.Context) ([]Tag, error) {
	return s.repo.List(ctx)
}
