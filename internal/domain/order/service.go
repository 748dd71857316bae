package order

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	o := &Order{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update applies a partial update: only non-nil request fields replace
// the stored values.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		o.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		o.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		o.DateOfBirth = *req.DateOfBirth
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
