package report

import (
	"context"

	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
)

// Statistics - counters cho trang thống kê
type Statistics struct {
	TotalBooks   int `json:"total_books"`
	TotalReaders int `json:"total_readers"`
	OpenLoans    int `json:"open_loans"`
	OverdueLoans int `json:"overdue_loans"`
}

// StaffDashboard - payload cho trang staff, gồm counters + các báo động cần xử lý
type StaffDashboard struct {
	Statistics Statistics        `json:"statistics"`
	LowStock   []book.Book       `json:"low_stock"`
	Overdue    []loan.LoanDetail `json:"overdue"`
}

type Service interface {
	// Statistics - cached (TTL ngắn), counters có thể trễ vài chục giây
	Statistics(ctx context.Context) (*Statistics, error)

	// Inventory - books sắp hết (available < threshold), luôn đọc trực tiếp DB
	Inventory(ctx context.Context) ([]book.Book, error)

	// Overdue - loans chưa trả đã quá due_date (so sánh datetime, tính tại thời điểm gọi)
	Overdue(ctx context.Context) ([]loan.LoanDetail, error)

	// OverdueExport build file .xlsx của báo cáo overdue
	OverdueExport(ctx context.Context) (*excelize.File, error)

	StaffDashboard(ctx context.Context) (*StaffDashboard, error)
}
