package loan

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Borrow tạo borrow record và decrement book.available trong một transaction.
	// Decrement là conditional update (available > 0) nên hai request đồng thời
	// không thể đẩy available xuống âm.
	// Errors: book.ErrBookNotFound, ErrOutOfStock
	Borrow(ctx context.Context, readerID, bookID uuid.UUID, due time.Time) (*BorrowRecord, error)

	// MarkReturned set return_date và increment available (clamped tại quantity)
	// trong một transaction. Idempotent: loan đã trả rồi → (false, nil), không đổi gì.
	MarkReturned(ctx context.Context, loanID uuid.UUID) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*BorrowRecord, error)

	ListOpenByReader(ctx context.Context, readerID uuid.UUID) ([]LoanDetail, error)

	// ListOverdue trả về các loan chưa trả có due_date < asOf,
	// join với reader + book để hiển thị
	ListOverdue(ctx context.Context, asOf time.Time) ([]LoanDetail, error)

	CountOpen(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context, asOf time.Time) (int, error)

	HasOpenLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error)
}
