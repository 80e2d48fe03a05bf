package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
	"library-backend/internal/domains/reader"
	"library-backend/internal/domains/report"
	"library-backend/internal/domains/report/service"
)

type bookRepoMock struct {
	countCalls     int
	count          int
	lowStock       []book.Book
	lowStockGotThr int
}

func (m *bookRepoMock) Create(ctx context.Context, b *book.Book) error { return nil }
func (m *bookRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (m *bookRepoMock) Update(ctx context.Context, b *book.Book) error { return nil }
func (m *bookRepoMock) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (m *bookRepoMock) Search(ctx context.Context, filter book.SearchFilter) ([]book.Book, error) {
	return nil, nil
}
func (m *bookRepoMock) ListLowStock(ctx context.Context, threshold int) ([]book.Book, error) {
	m.lowStockGotThr = threshold
	return m.lowStock, nil
}
func (m *bookRepoMock) Count(ctx context.Context) (int, error) {
	m.countCalls++
	return m.count, nil
}

type readerRepoMock struct {
	count int
}

func (m *readerRepoMock) GetOrCreate(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
	return nil, nil
}
func (m *readerRepoMock) FindByEmail(ctx context.Context, email string) (*reader.Reader, error) {
	return nil, reader.ErrReaderNotFound
}
func (m *readerRepoMock) Count(ctx context.Context) (int, error) { return m.count, nil }

type loanRepoMock struct {
	open    int
	overdue int
	details []loan.LoanDetail
}

func (m *loanRepoMock) Borrow(ctx context.Context, readerID, bookID uuid.UUID, due time.Time) (*loan.BorrowRecord, error) {
	return nil, nil
}
func (m *loanRepoMock) MarkReturned(ctx context.Context, loanID uuid.UUID) (bool, error) {
	return false, nil
}
func (m *loanRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*loan.BorrowRecord, error) {
	return nil, loan.ErrLoanNotFound
}
func (m *loanRepoMock) ListOpenByReader(ctx context.Context, readerID uuid.UUID) ([]loan.LoanDetail, error) {
	return nil, nil
}
func (m *loanRepoMock) ListOverdue(ctx context.Context, asOf time.Time) ([]loan.LoanDetail, error) {
	return m.details, nil
}
func (m *loanRepoMock) CountOpen(ctx context.Context) (int, error) { return m.open, nil }
func (m *loanRepoMock) CountOverdue(ctx context.Context, asOf time.Time) (int, error) {
	return m.overdue, nil
}
func (m *loanRepoMock) HasOpenLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	return false, nil
}

// cacheMock lưu marshaled JSON như Redis implementation thật
type cacheMock struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newCacheMock() *cacheMock { return &cacheMock{data: map[string][]byte{}} }

func (m *cacheMock) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}
func (m *cacheMock) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}
func (m *cacheMock) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
func (m *cacheMock) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}
func (m *cacheMock) Ping(ctx context.Context) error { return nil }

func TestStatistics_ComputesCounters(t *testing.T) {
	books := &bookRepoMock{count: 120}
	readers := &readerRepoMock{count: 45}
	loans := &loanRepoMock{open: 17, overdue: 3}
	svc := service.NewReportService(books, readers, loans, newCacheMock())

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, stats.TotalBooks)
	assert.Equal(t, 45, stats.TotalReaders)
	assert.Equal(t, 17, stats.OpenLoans)
	assert.Equal(t, 3, stats.OverdueLoans)
}

func TestStatistics_CacheHitSkipsDB(t *testing.T) {
	books := &bookRepoMock{count: 120}
	cache := newCacheMock()
	svc := service.NewReportService(books, &readerRepoMock{}, &loanRepoMock{}, cache)

	_, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, books.countCalls)

	// Lần hai đọc từ cache
	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalBooks)
	assert.Equal(t, 1, books.countCalls, "second call must hit the cache")
}

func TestInventory_UsesLowStockThreshold(t *testing.T) {
	books := &bookRepoMock{lowStock: []book.Book{{Title: "Almost Gone", Available: 1}}}
	svc := service.NewReportService(books, &readerRepoMock{}, &loanRepoMock{}, newCacheMock())

	result, err := svc.Inventory(context.Background())
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, book.LowStockThreshold, books.lowStockGotThr)
}

func TestOverdueExport_BuildsSpreadsheet(t *testing.T) {
	due := time.Now().Add(-72 * time.Hour)
	loans := &loanRepoMock{
		details: []loan.LoanDetail{
			{
				BorrowRecord: loan.BorrowRecord{
					ID:         uuid.New(),
					BorrowDate: due.Add(-14 * 24 * time.Hour),
					DueDate:    due,
				},
				ReaderName:  "John Doe",
				ReaderEmail: "jdoe@example.com",
				BookTitle:   "Số Đỏ",
				BookAuthor:  "Vũ Trọng Phụng",
			},
		},
	}
	svc := service.NewReportService(&bookRepoMock{}, &readerRepoMock{}, loans, newCacheMock())

	f, err := svc.OverdueExport(context.Background())
	require.NoError(t, err)
	require.NotNil(t, f)

	sheet := "Overdue loans"
	header, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Reader", header)

	name, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)

	title, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Số Đỏ", title)
}

func TestStaffDashboard_Aggregates(t *testing.T) {
	books := &bookRepoMock{
		count:    10,
		lowStock: []book.Book{{Title: "Low", Available: 2}},
	}
	loans := &loanRepoMock{
		open:    4,
		overdue: 1,
		details: []loan.LoanDetail{{BookTitle: "Late Book"}},
	}
	svc := service.NewReportService(books, &readerRepoMock{count: 5}, loans, newCacheMock())

	dash, err := svc.StaffDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, report.Statistics{
		TotalBooks:   10,
		TotalReaders: 5,
		OpenLoans:    4,
		OverdueLoans: 1,
	}, dash.Statistics)
	assert.Len(t, dash.LowStock, 1)
	assert.Len(t, dash.Overdue, 1)
}
