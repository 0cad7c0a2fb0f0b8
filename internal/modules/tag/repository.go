package tag

import "context"

// Repository defines storage for tags and their product links.
type Repository interface {
	// Ensure returns the id of the tag named name, creating it if absent.
	Ensure(ctx context.Context, name string) (int64, error)
	Link(ctx context.Context, productID, tagID int64) error
	Unlink(ctx context.Context, productID, tagID int64) (bool, error)
	UnlinkAll(ctx context.Context, productID int64) (int64, error)
	Rename(ctx context.Context, id int64, name string) (*Tag, error)
	FindFirstMatching(ctx context.Context, substr string) (*Tag, error)
	LinkedProductIDs(ctx context.Context, tagID int64) ([]int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]Tag, error)
	List(ctx context.Context) ([]Tag, error)
}
