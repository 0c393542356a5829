package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"jewelstore-backend/internal/config"
	"jewelstore-backend/pkg/logger"
)

// EmailService delivers transactional mail over SMTP. Development runs
// against a local catcher (mailpit on :1025), so there is no auth.
type EmailService struct {
	cfg config.EmailConfig
}

func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendOrderConfirmation mails the checkout receipt.
func (s *EmailService) SendOrderConfirmation(to, confirmationNumber, total string) error {
	subject := fmt.Sprintf("Order %s confirmed", confirmationNumber)
	body := strings.Join([]string{
		"Thank you for your order!",
		"",
		fmt.Sprintf("Confirmation number: %s", confirmationNumber),
		fmt.Sprintf("Order total: ₹%s", total),
		"",
		"Track your order any time with your confirmation number and email.",
	}, "\r\n")

	return s.send(to, subject, body)
}

// SendOrderStatusUpdate mails a lifecycle notification.
func (s *EmailService) SendOrderStatusUpdate(to, confirmationNumber, newStatus, trackingNumber string) error {
	subject := fmt.Sprintf("Order %s is now %s", confirmationNumber, newStatus)

	lines := []string{
		fmt.Sprintf("Your order %s is now %s.", confirmationNumber, newStatus),
	}
	if trackingNumber != "" {
		lines = append(lines, "", fmt.Sprintf("Tracking number: %s", trackingNumber))
	}

	return s.send(to, subject, strings.Join(lines, "\r\n"))
}

func (s *EmailService) send(to, subject, body string) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.cfg.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	if err := smtp.SendMail(addr, nil, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	logger.Debug("email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
