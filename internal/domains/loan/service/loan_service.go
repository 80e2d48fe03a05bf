package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/account"
	"library-backend/internal/domains/loan"
	"library-backend/internal/domains/reader"
)

type loanService struct {
	repo     loan.Repository
	readers  reader.Repository
	accounts account.Repository
}

func NewLoanService(repo loan.Repository, readers reader.Repository, accounts account.Repository) loan.Service {
	return &loanService{
		repo:     repo,
		readers:  readers,
		accounts: accounts,
	}
}

// Borrow - flow mượn sách (§ borrow operation):
// resolve-or-create Reader theo email → tạo loan với due = now + 14 ngày
// → decrement available. Decrement + insert chạy trong một transaction ở repo.
func (s *loanService) Borrow(ctx context.Context, accountID, bookID uuid.UUID) (*loan.BorrowRecord, error) {
	rd, err := s.resolveReader(ctx, accountID)
	if err != nil {
		return nil, err
	}

	due := time.Now().Add(loan.LoanPeriodDays * 24 * time.Hour)

	rec, err := s.repo.Borrow(ctx, rd.ID, bookID, due)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Return - trả sách
// Reader resolve theo email của account phải trùng reader của loan,
// không thì forbidden (phân biệt với not-found). Loan đã trả → no-op.
func (s *loanService) Return(ctx context.Context, accountID, loanID uuid.UUID) error {
	rec, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		return err
	}

	rd, err := s.resolveReader(ctx, accountID)
	if err != nil {
		return err
	}

	if rec.ReaderID != rd.ID {
		return loan.ErrNotLoanOwner
	}

	if _, err := s.repo.MarkReturned(ctx, loanID); err != nil {
		return fmt.Errorf("mark returned: %w", err)
	}
	return nil
}

func (s *loanService) MyLoans(ctx context.Context, accountID uuid.UUID) ([]loan.LoanDetail, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct.Email == "" {
		return nil, nil
	}

	rd, err := s.readers.FindByEmail(ctx, acct.Email)
	if err != nil {
		if errors.Is(err, reader.ErrReaderNotFound) {
			// Chưa từng mượn sách → chưa có Reader record
			return nil, nil
		}
		return nil, err
	}

	return s.repo.ListOpenByReader(ctx, rd.ID)
}

// resolveReader - upsert Reader theo natural key (email)
// Account không có email thì không mượn/trả được (ErrProfileIncomplete)
// Lưu ý: hai account chung email resolve về cùng một Reader (behavior gốc, giữ nguyên)
func (s *loanService) resolveReader(ctx context.Context, accountID uuid.UUID) (*reader.Reader, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if acct.Email == "" {
		return nil, loan.ErrProfileIncomplete
	}

	phone := ""
	if acct.Phone != nil {
		phone = *acct.Phone
	}

	rd, err := s.readers.GetOrCreate(ctx, acct.Email, acct.DisplayName(), phone)
	if err != nil {
		return nil, fmt.Errorf("resolve reader: %w", err)
	}
	return rd, nil
}
