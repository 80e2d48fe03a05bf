package loan

import (
	"time"

	"github.com/google/uuid"
)

// BorrowRecord là một lượt mượn sách: tạo khi borrow,
// mutate đúng một lần (set return_date) khi return, không bao giờ bị app xóa
type BorrowRecord struct {
	ID       uuid.UUID `db:"id" json:"id"`
	ReaderID uuid.UUID `db:"reader_id" json:"reader_id"`
	BookID   uuid.UUID `db:"book_id" json:"book_id"`

	BorrowDate time.Time  `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time  `db:"due_date" json:"due_date"`
	ReturnDate *time.Time `db:"return_date" json:"return_date,omitempty"` // null = đang mượn
}

// IsOpen - loan chưa trả
func (r *BorrowRecord) IsOpen() bool {
	return r.ReturnDate == nil
}

// IsOverdue - chưa trả và đã quá hạn (so sánh datetime,
// dùng thống nhất cho cả overdue view và statistics)
func (r *BorrowRecord) IsOverdue(now time.Time) bool {
	return r.ReturnDate == nil && now.After(r.DueDate)
}

// LoanDetail là loan join với reader và book identity - dùng cho
// overdue report và danh sách loan của reader
type LoanDetail struct {
	BorrowRecord
	ReaderName  string `json:"reader_name"`
	ReaderEmail string `json:"reader_email"`
	BookTitle   string `json:"book_title"`
	BookAuthor  string `json:"book_author"`
}
