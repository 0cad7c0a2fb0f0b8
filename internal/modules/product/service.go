package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/georgemunganga/product-manager/internal/apierror"
	"github.com/georgemunganga/product-manager/internal/database"
	"github.com/georgemunganga/product-manager/internal/modules/customer"
	"github.com/georgemunganga/product-manager/internal/modules/image"
	"github.com/georgemunganga/product-manager/internal/modules/quote"
	"github.com/georgemunganga/product-manager/internal/modules/tag"
)

// Service defines product business logic.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*View, error)
	Get(ctx context.Context, id int64) (*View, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id int64, u Update) (*View, error)
	// Delete marks the product deleted and drops its images, links and quotes.
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f SearchFilter) ([]Product, error)
	SetLock(ctx context.Context, id int64, locked bool, holder string) (*View, error)

	AddImages(ctx context.Context, id int64, paths []string) (*View, error)
	RemoveImage(ctx context.Context, id, imageID int64) (*View, error)
	AddCustomers(ctx context.Context, id int64, names []string) (*View, error)
	UnlinkCustomer(ctx context.Context, id, customerID int64) (*View, error)
	AddTags(ctx context.Context, id int64, names []string) (*View, error)
	UnlinkTag(ctx context.Context, id, tagID int64) (*View, error)
	AddQuotes(ctx context.Context, id int64, quotes map[string]quote.Detail) (*View, error)
	RemoveQuote(ctx context.Context, id, quoteID int64) (*View, error)
}

// Deps are the services that own the records hanging off a product.
type Deps struct {
	Images    image.Service
	Customers customer.Service
	Tags      tag.Service
	Quotes    quote.Service
}

type service struct {
	repo Repository
	deps Deps
	tx   database.Transactor
}

func NewService(repo Repository, deps Deps, tx database.Transactor) Service {
	return &service{repo: repo, deps: deps, tx: tx}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	p := &Product{
		RefNum:      req.RefNum,
		Name:        req.Name,
		Barcode:     req.Barcode,
		PcsInnerbox: req.PcsInnerbox,
		PcsCtn:      req.PcsCtn,
		Weight:      req.Weight,
		PriceUSD:    req.PriceUSD,
		PriceRMB:    req.PriceRMB,
		Remarks:     req.Remarks,
		Packing:     req.Packing,
	}
	if p.RefNum == "" {
		return nil, apierror.NewValidation("ref_num is required")
	}

	var view *View
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			if database.IsUniqueViolation(err) {
				return apierror.NewConflict("product with ref_num %q already exists", p.RefNum)
			}
			if database.IsInvalidValue(err) {
				return apierror.Wrap(apierror.Validation, err, "numeric field out of range")
			}
			return fmt.Errorf("create product: %w", err)
		}
		if err := s.deps.Images.Add(ctx, p.ID, req.Imgs); err != nil {
			return err
		}
		if err := s.deps.Customers.Add(ctx, p.ID, req.Customers); err != nil {
			return err
		}
		if err := s.deps.Tags.Add(ctx, p.ID, req.Tags); err != nil {
			return err
		}
		if err := s.deps.Quotes.Add(ctx, p.ID, req.Quote); err != nil {
			return err
		}
		var err error
		view, err = s.view(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("product_id", p.ID).Str("ref_num", p.RefNum).Msg("product created")
	return view, nil
}

func (s *service) Get(ctx context.Context, id int64) (*View, error) {
	var view *View
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.active(ctx, id)
		if err != nil {
			return err
		}
		view, err = s.view(ctx, p)
		return err
	})
	return view, err
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, u Update) (*View, error) {
	var view *View
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.Update(ctx, id, u)
		if err != nil {
			if database.IsInvalidValue(err) {
				return apierror.Wrap(apierror.Validation, err, "numeric field out of range")
			}
			return fmt.Errorf("update product %d: %w", id, err)
		}
		if !ok {
			return apierror.NewNotFound("product %d not found", id)
		}
		view, err = s.load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("product_id", id).Msg("product updated")
	return view, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.SoftDelete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		if !ok {
			return apierror.NewNotFound("product %d not found", id)
		}
		if err := s.deps.Images.RemoveAll(ctx, id); err != nil {
			return err
		}
		if err := s.deps.Customers.UnlinkAll(ctx, id); err != nil {
			return err
		}
		if err := s.deps.Tags.UnlinkAll(ctx, id); err != nil {
			return err
		}
		return s.deps.Quotes.RemoveAll(ctx, id)
	})
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *service) Search(ctx context.Context, f SearchFilter) ([]Product, error) {
	switch {
	case f.Name != "":
		return s.repo.SearchByName(ctx, f.Name)
	case f.Tag != "":
		ids, err := s.deps.Tags.Search(ctx, f.Tag)
		if err != nil {
			return nil, err
		}
		return s.repo.GetByIDs(ctx, ids)
	case f.Customer != "":
		ids, err := s.deps.Customers.Search(ctx, f.Customer)
		if err != nil {
			return nil, err
		}
		return s.repo.GetByIDs(ctx, ids)
	case f.Barcode != nil:
		return s.repo.FindByBarcode(ctx, *f.Barcode)
	case f.RefNum != "":
		return s.repo.FindByRefNum(ctx, f.RefNum)
	default:
		return []Product{}, nil
	}
}

func (s *service) SetLock(ctx context.Context, id int64, locked bool, holder string) (*View, error) {
	var h *string
	if locked {
		if holder == "" {
			return nil, apierror.NewValidation("user is required to lock a product")
		}
		h = &holder
	}
	var view *View
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.SetLock(ctx, id, h)
		if err != nil {
			return fmt.Errorf("lock product %d: %w", id, err)
		}
		if !ok {
			return apierror.NewNotFound("product %d not found", id)
		}
		view, err = s.load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("product_id", id).Bool("locked", locked).Str("user", holder).Msg("product lock changed")
	return view, nil
}

func (s *service) AddImages(ctx context.Context, id int64, paths []string) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Images.Add(ctx, id, paths)
	})
}

func (s *service) RemoveImage(ctx context.Context, id, imageID int64) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Images.Delete(ctx, id, imageID)
	})
}

func (s *service) AddCustomers(ctx context.Context, id int64, names []string) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Customers.Add(ctx, id, names)
	})
}

func (s *service) UnlinkCustomer(ctx context.Context, id, customerID int64) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Customers.Unlink(ctx, id, customerID)
	})
}

func (s *service) AddTags(ctx context.Context, id int64, names []string) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Tags.Add(ctx, id, names)
	})
}

func (s *service) UnlinkTag(ctx context.Context, id, tagID int64) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Tags.Unlink(ctx, id, tagID)
	})
}

func (s *service) AddQuotes(ctx context.Context, id int64, quotes map[string]quote.Detail) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Quotes.Add(ctx, id, quotes)
	})
}

func (s *service) RemoveQuote(ctx context.Context, id, quoteID int64) (*View, error) {
	return s.modify(ctx, id, func(ctx context.Context) error {
		return s.deps.Quotes.Delete(ctx, id, quoteID)
	})
}

// modify runs fn against an active product and returns the refreshed view,
// all in one transaction.
func (s *service) modify(ctx context.Context, id int64, fn func(ctx context.Context) error) (*View, error) {
	var view *View
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repo.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check product %d: %w", id, err)
		}
		if !ok {
			return apierror.NewNotFound("product %d not found", id)
		}
		if err := fn(ctx); err != nil {
			return err
		}
		view, err = s.load(ctx, id)
		return err
	})
	return view, err
}

func (s *service) active(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierror.NewNotFound("product %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *service) load(ctx context.Context, id int64) (*View, error) {
	p, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p)
}

func (s *service) view(ctx context.Context, p *Product) (*View, error) {
	v := &View{Product: *p}
	var err error
	if v.Imgs, err = s.deps.Images.ListForProduct(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	if v.Tags, err = s.deps.Tags.ListForProduct(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if v.Customers, err = s.deps.Customers.ListForProduct(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if v.Quote, err = s.deps.Quotes.ListForProduct(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return v, nil
}
