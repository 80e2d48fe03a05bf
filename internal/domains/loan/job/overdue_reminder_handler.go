package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan"
	"library-backend/internal/infrastructure/email"
)

// OverdueReminderHandler xử lý task loan:overdue_scan
// Quét các loan quá hạn, group theo reader và gửi một email nhắc nhở mỗi người
type OverdueReminderHandler struct {
	loans  loan.Repository
	mailer email.EmailService
}

func NewOverdueReminderHandler(loans loan.Repository, mailer email.EmailService) *OverdueReminderHandler {
	return &OverdueReminderHandler{loans: loans, mailer: mailer}
}

func (h *OverdueReminderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	now := time.Now()

	overdue, err := h.loans.ListOverdue(ctx, now)
	if err != nil {
		return err
	}

	if len(overdue) == 0 {
		log.Info().Msg("Overdue scan: no overdue loans")
		return nil
	}

	// Group theo reader email - mỗi reader một email
	byReader := map[string]*email.OverdueReminderData{}
	for _, d := range overdue {
		data, ok := byReader[d.ReaderEmail]
		if !ok {
			data = &email.OverdueReminderData{
				Email:      d.ReaderEmail,
				ReaderName: d.ReaderName,
			}
			byReader[d.ReaderEmail] = data
		}
		data.Items = append(data.Items, email.OverdueItem{
			Title:   d.BookTitle,
			DueDate: d.DueDate.Format("02/01/2006"),
		})
	}

	sent := 0
	for _, data := range byReader {
		if err := h.mailer.SendOverdueReminder(ctx, *data); err != nil {
			// Một email fail không chặn các email còn lại
			log.Error().Err(err).Str("to", data.Email).Msg("Overdue reminder failed")
			continue
		}
		sent++
	}

	log.Info().
		Int("overdue_loans", len(overdue)).
		Int("emails_sent", sent).
		Msg("Overdue scan completed")

	return nil
}
