package maintenance

import "context"

// Repository removes rows nothing refers to any more.
type Repository interface {
	DeleteOrphanTags(ctx context.Context) (int64, error)
	DeleteOrphanCustomers(ctx context.Context) (int64, error)
	DeleteOrphanQuotes(ctx context.Context) (int64, error)
}
