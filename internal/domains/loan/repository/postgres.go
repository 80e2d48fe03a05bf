package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) loan.Repository {
	return &postgresRepository{pool: pool}
}

// Borrow - decrement available + insert borrow record, atomically
// Conditional update (available > 0) đóng race của read-decrement-write:
// hai borrow đồng thời không thể cùng lấy bản cuối cùng
func (r *postgresRepository) Borrow(ctx context.Context, readerID, bookID uuid.UUID, due time.Time) (*loan.BorrowRecord, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*loan.BorrowRecord, error) {
		tag, err := tx.Exec(ctx,
			`UPDATE books
			 SET available = available - 1, updated_at = now()
			 WHERE id = $1 AND available > 0`,
			bookID,
		)
		if err != nil {
			return nil, err
		}

		if tag.RowsAffected() == 0 {
			// Phân biệt sách không tồn tại với sách hết hàng
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, bookID,
			).Scan(&exists); err != nil {
				return nil, err
			}
			if !exists {
				return nil, book.ErrBookNotFound
			}
			return nil, loan.ErrOutOfStock
		}

		rec := &loan.BorrowRecord{
			ID:         uuid.New(),
			ReaderID:   readerID,
			BookID:     bookID,
			BorrowDate: time.Now(),
			DueDate:    due,
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO borrow_records (id, reader_id, book_id, borrow_date, due_date)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.ID, rec.ReaderID, rec.BookID, rec.BorrowDate, rec.DueDate,
		)
		if err != nil {
			return nil, err
		}

		return rec, nil
	})
}

// MarkReturned - set return_date + increment available, atomically
// Conditional update trên return_date IS NULL → trả hai lần là no-op
func (r *postgresRepository) MarkReturned(ctx context.Context, loanID uuid.UUID) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		var bookID uuid.UUID
		err := tx.QueryRow(ctx,
			`UPDATE borrow_records
			 SET return_date = now()
			 WHERE id = $1 AND return_date IS NULL
			 RETURNING book_id`,
			loanID,
		).Scan(&bookID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Đã trả rồi - idempotent no-op
				return false, nil
			}
			return false, err
		}

		// Increment clamped tại quantity - không bao giờ vượt tổng số bản
		_, err = tx.Exec(ctx,
			`UPDATE books
			 SET available = LEAST(available + 1, quantity), updated_at = now()
			 WHERE id = $1`,
			bookID,
		)
		if err != nil {
			return false, err
		}

		return true, nil
	})
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error) {
	var rec loan.BorrowRecord
	err := r.pool.QueryRow(ctx,
		`SELECT id, reader_id, book_id, borrow_date, due_date, return_date
		 FROM borrow_records WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.ReaderID, &rec.BookID, &rec.BorrowDate, &rec.DueDate, &rec.ReturnDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, err
	}
	return &rec, nil
}

const loanDetailSelect = `
	SELECT br.id, br.reader_id, br.book_id, br.borrow_date, br.due_date, br.return_date,
	       r.name, r.email, b.title, b.author
	FROM borrow_records br
	JOIN readers r ON r.id = br.reader_id
	JOIN books b ON b.id = br.book_id
`

func (r *postgresRepository) ListOpenByReader(ctx context.Context, readerID uuid.UUID) ([]loan.LoanDetail, error) {
	rows, err := r.pool.Query(ctx,
		loanDetailSelect+`
		WHERE br.reader_id = $1 AND br.return_date IS NULL
		ORDER BY br.due_date`,
		readerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLoanDetails(rows)
}

func (r *postgresRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]loan.LoanDetail, error) {
	rows, err := r.pool.Query(ctx,
		loanDetailSelect+`
		WHERE br.return_date IS NULL AND br.due_date < $1
		ORDER BY br.due_date`,
		asOf,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLoanDetails(rows)
}

func (r *postgresRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM borrow_records WHERE return_date IS NULL`,
	).Scan(&count)
	return count, err
}

// CountOverdue dùng cùng predicate với ListOverdue (datetime comparison)
func (r *postgresRepository) CountOverdue(ctx context.Context, asOf time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM borrow_records WHERE return_date IS NULL AND due_date < $1`,
		asOf,
	).Scan(&count)
	return count, err
}

func (r *postgresRepository) HasOpenLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM borrow_records
			WHERE book_id = $1 AND return_date IS NULL
		)`, bookID,
	).Scan(&exists)
	return exists, err
}

func scanLoanDetails(rows pgx.Rows) ([]loan.LoanDetail, error) {
	var details []loan.LoanDetail
	for rows.Next() {
		var d loan.LoanDetail
		if err := rows.Scan(
			&d.ID, &d.ReaderID, &d.BookID, &d.BorrowDate, &d.DueDate, &d.ReturnDate,
			&d.ReaderName, &d.ReaderEmail, &d.BookTitle, &d.BookAuthor,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
