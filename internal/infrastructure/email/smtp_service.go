package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"library-backend/pkg/logger"
)

// OverdueItem là một đầu sách quá hạn trong email nhắc nhở
type OverdueItem struct {
	Title   string
	DueDate string
}

type OverdueReminderData struct {
	Email      string
	ReaderName string
	Items      []OverdueItem
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, data OverdueReminderData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendOverdueReminder(ctx context.Context, data OverdueReminderData) error {
	subject := "Nhắc nhở: sách mượn đã quá hạn trả"

	var lines []string
	for _, item := range data.Items {
		lines = append(lines, fmt.Sprintf("  - %s (hạn trả: %s)", item.Title, item.DueDate))
	}

	body := fmt.Sprintf(`Chào %s,

Các cuốn sách sau bạn mượn đã quá hạn trả:

%s

Vui lòng mang sách đến thư viện để trả trong thời gian sớm nhất.`,
		data.ReaderName, strings.Join(lines, "\n"))

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		logger.Info("Failed to send reminder email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
