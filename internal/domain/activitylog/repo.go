package activitylog

import "context"

// Repository defines the persistence interface for activity log entries.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]*Entry, int, error)
	ListByOrder(ctx context.Context, orderID int64, limit, offset int) ([]*Entry, int, error)
}
