package book

import (
	"context"

	"github.com/google/uuid"
)

// LowStockThreshold - sách có available < 5 được coi là sắp hết
const LowStockThreshold = 5

type Service interface {
	Create(ctx context.Context, req CreateBookRequest) (*Book, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*Book, error)
	// Delete reject với ErrBookOnLoan nếu còn loan chưa trả;
	// xóa thành công cũng release ảnh bìa trong storage
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	Search(ctx context.Context, filter SearchFilter) ([]Book, error)
	ListLowStock(ctx context.Context) ([]Book, error)
}
