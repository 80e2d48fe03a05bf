package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/account"
	"library-backend/internal/domains/loan"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/domains/reader"
)

type loanRepoMock struct {
	borrowFn           func(ctx context.Context, readerID, bookID uuid.UUID, due time.Time) (*loan.BorrowRecord, error)
	markReturnedFn     func(ctx context.Context, loanID uuid.UUID) (bool, error)
	findByIDFn         func(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error)
	listOpenByReaderFn func(ctx context.Context, readerID uuid.UUID) ([]loan.LoanDetail, error)
}

func (m *loanRepoMock) Borrow(ctx context.Context, readerID, bookID uuid.UUID, due time.Time) (*loan.BorrowRecord, error) {
	return m.borrowFn(ctx, readerID, bookID, due)
}
func (m *loanRepoMock) MarkReturned(ctx context.Context, loanID uuid.UUID) (bool, error) {
	return m.markReturnedFn(ctx, loanID)
}
func (m *loanRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error) {
	return m.findByIDFn(ctx, id)
}
func (m *loanRepoMock) ListOpenByReader(ctx context.Context, readerID uuid.UUID) ([]loan.LoanDetail, error) {
	return m.listOpenByReaderFn(ctx, readerID)
}
func (m *loanRepoMock) ListOverdue(ctx context.Context, asOf time.Time) ([]loan.LoanDetail, error) {
	return nil, nil
}
func (m *loanRepoMock) CountOpen(ctx context.Context) (int, error) { return 0, nil }
func (m *loanRepoMock) CountOverdue(ctx context.Context, asOf time.Time) (int, error) {
	return 0, nil
}
func (m *loanRepoMock) HasOpenLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	return false, nil
}

type readerRepoMock struct {
	getOrCreateFn func(ctx context.Context, email, name, phone string) (*reader.Reader, error)
	findByEmailFn func(ctx context.Context, email string) (*reader.Reader, error)
}

func (m *readerRepoMock) GetOrCreate(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
	return m.getOrCreateFn(ctx, email, name, phone)
}
func (m *readerRepoMock) FindByEmail(ctx context.Context, email string) (*reader.Reader, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *readerRepoMock) Count(ctx context.Context) (int, error) { return 0, nil }

type accountRepoMock struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

func (m *accountRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return m.findByIDFn(ctx, id)
}
func (m *accountRepoMock) Create(ctx context.Context, a *account.Account) error { return nil }
func (m *accountRepoMock) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	return nil, account.ErrAccountNotFound
}
func (m *accountRepoMock) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}
func (m *accountRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (m *accountRepoMock) Update(ctx context.Context, a *account.Account) error { return nil }
func (m *accountRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}
func (m *accountRepoMock) UpdateLastLogin(ctx context.Context, id uuid.UUID) error { return nil }

func accountWithEmail(id uuid.UUID) *accountRepoMock {
	return &accountRepoMock{
		findByIDFn: func(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
			return &account.Account{
				ID:       id,
				Username: "jdoe",
				Email:    "jdoe@example.com",
				FullName: "John Doe",
			}, nil
		},
	}
}

func TestBorrow_ProfileWithoutEmail(t *testing.T) {
	accountID := uuid.New()
	accounts := &accountRepoMock{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*account.Account, error) {
			return &account.Account{ID: id, Username: "noemail"}, nil
		},
	}
	borrowCalled := false
	loans := &loanRepoMock{
		borrowFn: func(ctx context.Context, readerID, bookID uuid.UUID, due time.Time) (*loan.BorrowRecord, error) {
			borrowCalled = true
			return nil, nil
		},
	}
	svc := service.NewLoanService(loans, &readerRepoMock{}, accounts)

	_, err := svc.Borrow(context.Background(), accountID, uuid.New())
	assert.ErrorIs(t, err, loan.ErrProfileIncomplete)
	assert.False(t, borrowCalled, "borrow must not reach the repo without an email")
}

func TestBorrow_ResolvesReaderByEmail(t *testing.T) {
	accountID := uuid.New()
	readerID := uuid.New()
	bookID := uuid.New()

	var gotEmail, gotName string
	readers := &readerRepoMock{
		getOrCreateFn: func(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
			gotEmail, gotName = email, name
			return &reader.Reader{ID: readerID, Email: email, Name: name}, nil
		},
	}

	var gotDue time.Time
	loans := &loanRepoMock{
		borrowFn: func(ctx context.Context, rID, bID uuid.UUID, due time.Time) (*loan.BorrowRecord, error) {
			assert.Equal(t, readerID, rID)
			assert.Equal(t, bookID, bID)
			gotDue = due
			return &loan.BorrowRecord{
				ID:         uuid.New(),
				ReaderID:   rID,
				BookID:     bID,
				BorrowDate: time.Now(),
				DueDate:    due,
			}, nil
		},
	}
	svc := service.NewLoanService(loans, readers, accountWithEmail(accountID))

	rec, err := svc.Borrow(context.Background(), accountID, bookID)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "jdoe@example.com", gotEmail)
	assert.Equal(t, "John Doe", gotName)
	// Hạn trả = 14 ngày kể từ lúc mượn
	assert.WithinDuration(t, time.Now().Add(loan.LoanPeriodDays*24*time.Hour), gotDue, 5*time.Second)
	assert.True(t, rec.IsOpen())
}

func TestBorrow_OutOfStockPropagates(t *testing.T) {
	accountID := uuid.New()
	readers := &readerRepoMock{
		getOrCreateFn: func(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
			return &reader.Reader{ID: uuid.New(), Email: email}, nil
		},
	}
	loans := &loanRepoMock{
		borrowFn: func(ctx context.Context, readerID, bookID uuid.UUID, due time.Time) (*loan.BorrowRecord, error) {
			return nil, loan.ErrOutOfStock
		},
	}
	svc := service.NewLoanService(loans, readers, accountWithEmail(accountID))

	_, err := svc.Borrow(context.Background(), accountID, uuid.New())
	assert.ErrorIs(t, err, loan.ErrOutOfStock)
}

func TestReturn_NotOwner(t *testing.T) {
	accountID := uuid.New()
	loanID := uuid.New()
	otherReaderID := uuid.New()

	readers := &readerRepoMock{
		getOrCreateFn: func(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
			return &reader.Reader{ID: uuid.New(), Email: email}, nil
		},
	}
	markCalled := false
	loans := &loanRepoMock{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error) {
			return &loan.BorrowRecord{ID: id, ReaderID: otherReaderID}, nil
		},
		markReturnedFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			markCalled = true
			return true, nil
		},
	}
	svc := service.NewLoanService(loans, readers, accountWithEmail(accountID))

	err := svc.Return(context.Background(), accountID, loanID)
	assert.ErrorIs(t, err, loan.ErrNotLoanOwner)
	assert.False(t, markCalled, "someone else's loan must never be returned")
}

func TestReturn_Success(t *testing.T) {
	accountID := uuid.New()
	readerID := uuid.New()
	loanID := uuid.New()

	readers := &readerRepoMock{
		getOrCreateFn: func(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
			return &reader.Reader{ID: readerID, Email: email}, nil
		},
	}
	loans := &loanRepoMock{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error) {
			return &loan.BorrowRecord{ID: id, ReaderID: readerID}, nil
		},
		markReturnedFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			assert.Equal(t, loanID, id)
			return true, nil
		},
	}
	svc := service.NewLoanService(loans, readers, accountWithEmail(accountID))

	assert.NoError(t, svc.Return(context.Background(), accountID, loanID))
}

func TestReturn_AlreadyReturnedIsNoop(t *testing.T) {
	accountID := uuid.New()
	readerID := uuid.New()

	readers := &readerRepoMock{
		getOrCreateFn: func(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
			return &reader.Reader{ID: readerID, Email: email}, nil
		},
	}
	loans := &loanRepoMock{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error) {
			returned := time.Now().Add(-time.Hour)
			return &loan.BorrowRecord{ID: id, ReaderID: readerID, ReturnDate: &returned}, nil
		},
		// Repo báo "không có gì để trả" - service vẫn coi là success
		markReturnedFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := service.NewLoanService(loans, readers, accountWithEmail(accountID))

	assert.NoError(t, svc.Return(context.Background(), accountID, uuid.New()))
}

func TestReturn_LoanNotFound(t *testing.T) {
	accountID := uuid.New()
	loans := &loanRepoMock{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error) {
			return nil, loan.ErrLoanNotFound
		},
	}
	svc := service.NewLoanService(loans, &readerRepoMock{}, accountWithEmail(accountID))

	err := svc.Return(context.Background(), accountID, uuid.New())
	assert.ErrorIs(t, err, loan.ErrLoanNotFound)
}

func TestMyLoans_NoReaderRecordYet(t *testing.T) {
	accountID := uuid.New()
	readers := &readerRepoMock{
		findByEmailFn: func(ctx context.Context, email string) (*reader.Reader, error) {
			return nil, reader.ErrReaderNotFound
		},
	}
	svc := service.NewLoanService(&loanRepoMock{}, readers, accountWithEmail(accountID))

	// Chưa từng mượn sách → danh sách rỗng, không phải error
	loans, err := svc.MyLoans(context.Background(), accountID)
	require.NoError(t, err)
	assert.Empty(t, loans)
}

func TestMyLoans_ReturnsOpenLoans(t *testing.T) {
	accountID := uuid.New()
	readerID := uuid.New()

	readers := &readerRepoMock{
		findByEmailFn: func(ctx context.Context, email string) (*reader.Reader, error) {
			return &reader.Reader{ID: readerID, Email: email}, nil
		},
	}
	loans := &loanRepoMock{
		listOpenByReaderFn: func(ctx context.Context, rID uuid.UUID) ([]loan.LoanDetail, error) {
			assert.Equal(t, readerID, rID)
			return []loan.LoanDetail{
				{BookTitle: "Dế Mèn Phiêu Lưu Ký"},
				{BookTitle: "Số Đỏ"},
			}, nil
		},
	}
	svc := service.NewLoanService(loans, readers, accountWithEmail(accountID))

	result, err := svc.MyLoans(context.Background(), accountID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
