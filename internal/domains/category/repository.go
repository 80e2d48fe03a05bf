package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	// Delete xóa category; books tham chiếu bị set null qua FK ON DELETE SET NULL
	Delete(ctx context.Context, id uuid.UUID) error
}
