package maintenance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/georgemunganga/product-manager/internal/database"
)

// Service runs housekeeping jobs.
type Service interface {
	// CleanOrphans removes unreferenced tags, customers and quotes in one
	// transaction.
	CleanOrphans(ctx context.Context) (Report, error)
}

type service struct {
	repo Repository
	tx   database.Transactor
}

func NewService(repo Repository, tx database.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) CleanOrphans(ctx context.Context) (Report, error) {
	var rep Report
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		// quotes first so their customers become orphans in the same run
		if rep.Quotes, err = s.repo.DeleteOrphanQuotes(ctx); err != nil {
			return fmt.Errorf("delete orphan quotes: %w", err)
		}
		if rep.Tags, err = s.repo.DeleteOrphanTags(ctx); err != nil {
			return fmt.Errorf("delete orphan tags: %w", err)
		}
		if rep.Customers, err = s.repo.DeleteOrphanCustomers(ctx); err != nil {
			return fmt.Errorf("delete orphan customers: %w", err)
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	zerolog.Ctx(ctx).Info().
		Int64("tags", rep.Tags).
		Int64("customers", rep.Customers).
		Int64("quotes", rep.Quotes).
		Msg("orphans cleaned")
	return rep, nil
}
