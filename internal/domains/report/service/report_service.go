package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
	"library-backend/internal/domains/reader"
	"library-backend/internal/domains/report"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	statisticsCacheKey = "report:statistics"
	statisticsCacheTTL = 60 * time.Second
)

type reportService struct {
	books   book.Repository
	readers reader.Repository
	loans   loan.Repository
	cache   cache.Cache
}

func NewReportService(
	books book.Repository,
	readers reader.Repository,
	loans loan.Repository,
	c cache.Cache,
) report.Service {
	return &reportService{
		books:   books,
		readers: readers,
		loans:   loans,
		cache:   c,
	}
}

// Statistics - cache-aside với TTL ngắn
// Counters chỉ để hiển thị nên chấp nhận trễ tối đa 60s, không cần invalidation
func (s *reportService) Statistics(ctx context.Context) (*report.Statistics, error) {
	var cached report.Statistics
	found, err := s.cache.Get(ctx, statisticsCacheKey, &cached)
	if err != nil {
		// Cache lỗi không chặn report - fall through xuống DB
		logger.Error("Statistics cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	stats, err := s.computeStatistics(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, statisticsCacheKey, stats, statisticsCacheTTL); err != nil {
		logger.Error("Statistics cache write failed", err)
	}

	return stats, nil
}

func (s *reportService) computeStatistics(ctx context.Context) (*report.Statistics, error) {
	totalBooks, err := s.books.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	totalReaders, err := s.readers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count readers: %w", err)
	}

	openLoans, err := s.loans.CountOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("count open loans: %w", err)
	}

	overdueLoans, err := s.loans.CountOverdue(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("count overdue loans: %w", err)
	}

	return &report.Statistics{
		TotalBooks:   totalBooks,
		TotalReaders: totalReaders,
		OpenLoans:    openLoans,
		OverdueLoans: overdueLoans,
	}, nil
}

func (s *reportService) Inventory(ctx context.Context) ([]book.Book, error) {
	return s.books.ListLowStock(ctx, book.LowStockThreshold)
}

func (s *reportService) Overdue(ctx context.Context) ([]loan.LoanDetail, error) {
	return s.loans.ListOverdue(ctx, time.Now())
}

// OverdueExport - xuất báo cáo overdue ra .xlsx
func (s *reportService) OverdueExport(ctx context.Context) (*excelize.File, error) {
	overdue, err := s.Overdue(ctx)
	if err != nil {
		return nil, fmt.Errorf("list overdue: %w", err)
	}

	f, err := buildOverdueExcelFile(overdue)
	if err != nil {
		return nil, fmt.Errorf("build excel file: %w", err)
	}

	return f, nil
}

func (s *reportService) StaffDashboard(ctx context.Context) (*report.StaffDashboard, error) {
	stats, err := s.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	overdue, err := s.Overdue(ctx)
	if err != nil {
		return nil, err
	}

	return &report.StaffDashboard{
		Statistics: *stats,
		LowStock:   lowStock,
		Overdue:    overdue,
	}, nil
}

func buildOverdueExcelFile(overdue []loan.LoanDetail) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Overdue loans"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"Record ID",
		"Reader",
		"Email",
		"Book",
		"Author",
		"Borrow Date",
		"Due Date",
		"Days Overdue",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "H1", headerStyle)
	}

	now := time.Now()
	for i, d := range overdue {
		rowNum := i + 2

		cell := func(col int) string {
			c, _ := excelize.CoordinatesToCellName(col, rowNum)
			return c
		}

		f.SetCellValue(sheetName, cell(1), d.ID.String())
		f.SetCellValue(sheetName, cell(2), d.ReaderName)
		f.SetCellValue(sheetName, cell(3), d.ReaderEmail)
		f.SetCellValue(sheetName, cell(4), d.BookTitle)
		f.SetCellValue(sheetName, cell(5), d.BookAuthor)
		f.SetCellValue(sheetName, cell(6), d.BorrowDate.Format("02/01/2006 15:04"))
		f.SetCellValue(sheetName, cell(7), d.DueDate.Format("02/01/2006 15:04"))
		f.SetCellValue(sheetName, cell(8), int(now.Sub(d.DueDate).Hours()/24))
	}

	return f, nil
}
