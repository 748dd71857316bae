package order

import "context"

// Repository defines the persistence interface for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Order, int, error)
}
