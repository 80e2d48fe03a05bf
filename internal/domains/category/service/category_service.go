package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/category"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &category.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
