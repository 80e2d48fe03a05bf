package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBorrowRecord_IsOpen(t *testing.T) {
	rec := &BorrowRecord{}
	assert.True(t, rec.IsOpen())

	now := time.Now()
	rec.ReturnDate = &now
	assert.False(t, rec.IsOpen())
}

func TestBorrowRecord_IsOverdue(t *testing.T) {
	due := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	rec := &BorrowRecord{DueDate: due}

	// So sánh datetime, không phải date: cùng ngày nhưng trước giờ hạn → chưa overdue
	assert.False(t, rec.IsOverdue(due.Add(-time.Minute)))
	assert.False(t, rec.IsOverdue(due))
	assert.True(t, rec.IsOverdue(due.Add(time.Minute)))

	// Loan đã trả không bao giờ overdue, kể cả trả trễ
	returned := due.Add(48 * time.Hour)
	rec.ReturnDate = &returned
	assert.False(t, rec.IsOverdue(due.Add(72*time.Hour)))
}
