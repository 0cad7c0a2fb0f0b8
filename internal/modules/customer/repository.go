package customer

import "context"

// Repository defines storage for customers and their product links.
type Repository interface {
	// Ensure returns the id of the customer named name, creating it if absent.
	Ensure(ctx context.Context, name string) (int64, error)
	Link(ctx context.Context, productID, customerID int64) error
	Unlink(ctx context.Context, productID, customerID int64) (bool, error)
	UnlinkAll(ctx context.Context, productID int64) (int64, error)
	Rename(ctx context.Context, id int64, name string) (*Customer, error)
	FindByName(ctx context.Context, name string) (*Customer, error)
	FindFirstMatching(ctx context.Context, substr string) (*Customer, error)
	LinkedProductIDs(ctx context.Context, customerID int64) ([]int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]Customer, error)
	List(ctx context.Context) ([]Customer, error)
}
