package product

import "context"

// Repository defines storage for product rows. Every read and write except
// Create ignores soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context) ([]Product, error)
	SearchByName(ctx context.Context, substr string) ([]Product, error)
	FindByBarcode(ctx context.Context, barcode int64) ([]Product, error)
	FindByRefNum(ctx context.Context, refNum string) ([]Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, u Update) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	// SetLock stores holder as the lock owner, or clears the lock when nil.
	SetLock(ctx context.Context, id int64, holder *string) (bool, error)
}
