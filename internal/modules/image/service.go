package image

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/georgemunganga/product-manager/internal/apierror"
	"github.com/georgemunganga/product-manager/internal/database"
)

// Service defines image operations. Callers are expected to have checked
// that the product exists.
type Service interface {
	Add(ctx context.Context, productID int64, paths []string) error
	Delete(ctx context.Context, productID, imageID int64) error
	RemoveAll(ctx context.Context, productID int64) error
	ListForProduct(ctx context.Context, productID int64) ([]Image, error)
	List(ctx context.Context) ([]Image, error)
}

type service struct {
	repo Repository
	tx   database.Transactor
}

func NewService(repo Repository, tx database.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) Add(ctx context.Context, productID int64, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, productID, paths); err != nil {
			if database.IsForeignKeyViolation(err) {
				return apierror.NewNotFound("product %d not found", productID)
			}
			return fmt.Errorf("insert images: %w", err)
		}
		zerolog.Ctx(ctx).Info().Int64("product_id", productID).Strs("imgs", paths).Msg("images added")
		return nil
	})
}

func (s *service) Delete(ctx context.Context, productID, imageID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.Delete(ctx, productID, imageID)
		if err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
		if !ok {
			return apierror.NewNotFound("image %d not found for product %d", imageID, productID)
		}
		zerolog.Ctx(ctx).Info().Int64("image_id", imageID).Msg("image deleted")
		return nil
	})
}

func (s *service) RemoveAll(ctx context.Context, productID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.repo.DeleteByProduct(ctx, productID)
		return err
	})
}

func (s *service) ListForProduct(ctx context.Context, productID int64) ([]Image, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) List(ctx context.Context) ([]Image, error) {
	return s.repo.List(ctx)
}
