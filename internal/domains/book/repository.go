package book

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Search trả về matching set đã dedup, join với category name
	Search(ctx context.Context, filter SearchFilter) ([]Book, error)

	// ListLowStock trả về books có available < threshold
	ListLowStock(ctx context.Context, threshold int) ([]Book, error)

	Count(ctx context.Context) (int, error)
}

// LoanChecker - book service cần biết sách có loan đang mở không
// trước khi cho xóa. Implemented bởi loan repository.
type LoanChecker interface {
	HasOpenLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error)
}

// CoverStorage abstract object storage cho ảnh bìa (MinIO trong production)
type CoverStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}
