package quote

import "context"

// Repository defines quote storage. Reads join the customer name.
type Repository interface {
	Insert(ctx context.Context, productID, customerID int64, value *float64, remark *string) (int64, error)
	Delete(ctx context.Context, productID, quoteID int64) (bool, error)
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
	Update(ctx context.Context, id int64, u Update) (bool, error)
	GetByID(ctx context.Context, id int64) (*Quote, error)
	ListByProduct(ctx context.Context, productID int64) ([]Quote, error)
	List(ctx context.Context) ([]Quote, error)
}
