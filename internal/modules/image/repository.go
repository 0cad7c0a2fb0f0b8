package image

import "context"

// Repository defines storage for product images.
type Repository interface {
	Insert(ctx context.Context, productID int64, paths []string) error
	Delete(ctx context.Context, productID, imageID int64) (bool, error)
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]Image, error)
	List(ctx context.Context) ([]Image, error)
}
