package category

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
