package main

import (
	"github.com/hibiken/asynq"

	loanJob "library-backend/internal/domains/loan/job"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/infrastructure/queue"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	overdueReminder *loanJob.OverdueReminderHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	mailer := email.NewSMTPEmailService(
		c.Config.SMTP.Host,
		c.Config.SMTP.Port,
		c.Config.SMTP.From,
	)

	return &HandlerRegistry{
		overdueReminder: loanJob.NewOverdueReminderHandler(c.LoanRepo, mailer),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeOverdueScan, h.overdueReminder.ProcessTask)
}
