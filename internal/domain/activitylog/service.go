package activitylog

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record persists one audit entry. Callers treat failures as
// non-fatal; the request that produced the entry has already been
// served.
func (s *Service) Record(ctx context.Context, e *Entry) error {
	return s.repo.Create(ctx, e)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByOrder(ctx context.Context, orderID int64, limit, offset int) ([]*Entry, int, error) {
	return s.repo.ListByOrder(ctx, orderID, limit, offset)
}
