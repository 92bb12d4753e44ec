package products

import (
	"context"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of products plus pagination metadata computed
// from the companion count query.
func (s *Service) List(ctx context.Context, params ListParams) ([]Product, shared.Pagination, error) {
	if params.Page < 1 {
		params.Page = shared.DefaultPage
	}
	if params.Limit < 1 {
		params.Limit = shared.DefaultLimit
	}

	result, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return result, shared.NewPagination(params.Page, params.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.Invalid("id", "invalid product ID")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := s.validateCreate(product); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, id int64, fields UpdateFields) (Product, error) {
	if id <= 0 {
		return Product{}, shared.Invalid("id", "invalid product ID")
	}
	if err := s.validateUpdate(fields); err != nil {
		return Product{}, err
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.Invalid("id", "invalid product ID")
	}
	return s.repo.Delete(ctx, id)
}
