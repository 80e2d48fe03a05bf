package queue

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// Scheduler wraps asynq.Scheduler và đăng ký các cron jobs
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: redisDB},
			&asynq.SchedulerOpts{},
		),
	}
}

// RegisterOverdueScan đăng ký cron job quét sách quá hạn
// cronSpec ví dụ: "0 8 * * *" = 8h sáng hằng ngày
func (s *Scheduler) RegisterOverdueScan(cronSpec string) error {
	if _, err := s.scheduler.Register(cronSpec, NewOverdueScanTask()); err != nil {
		return fmt.Errorf("register overdue scan: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
