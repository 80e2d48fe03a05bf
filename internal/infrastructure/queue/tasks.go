package queue

import (
	"github.com/hibiken/asynq"
)

// Task types - mỗi type có một handler ở cmd/worker
const (
	// TypeOverdueScan quét các loan quá hạn và gửi email nhắc nhở
	TypeOverdueScan = "loan:overdue_scan"
)

// NewOverdueScanTask tạo task overdue scan (không cần payload)
func NewOverdueScanTask() *asynq.Task {
	return asynq.NewTask(TypeOverdueScan, nil)
}
