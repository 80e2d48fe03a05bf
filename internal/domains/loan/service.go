package loan

import (
	"context"

	"github.com/google/uuid"
)

// LoanPeriodDays - hạn trả sách tính từ ngày mượn
const LoanPeriodDays = 14

type Service interface {
	// Borrow mượn sách cho account đang đăng nhập
	// Reader record được resolve-or-create theo email của account
	Borrow(ctx context.Context, accountID, bookID uuid.UUID) (*BorrowRecord, error)

	// Return trả sách - chỉ reader sở hữu loan mới được trả (ErrNotLoanOwner)
	// Trả loan đã trả rồi là no-op
	Return(ctx context.Context, accountID, loanID uuid.UUID) error

	// MyLoans - các loan đang mở của account (trang home khi đã đăng nhập)
	MyLoans(ctx context.Context, accountID uuid.UUID) ([]LoanDetail, error)
}
