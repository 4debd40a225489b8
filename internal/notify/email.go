package notify

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_sender.go -package=mocks concierge-ai/internal/notify Sender

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"concierge-ai/internal/contextutil"
)

// Confirmation carries the details of a booked appointment for the
// confirmation email.
type Confirmation struct {
	Name            string
	Phone           string
	Email           string
	AppointmentDate time.Time
}

// Sender delivers booking confirmations to the requester.
type Sender interface {
	SendConfirmation(ctx context.Context, c Confirmation) error
}

// EmailSender sends confirmations over SMTP with STARTTLS.
type EmailSender struct {
	host     string
	port     string
	from     string
	password string
}

// NewEmailSender creates an SMTP confirmation sender.
func NewEmailSender(host, port, from, password string) *EmailSender {
	return &EmailSender{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

// SendConfirmation emails the appointment details to the requester.
func (s *EmailSender) SendConfirmation(ctx context.Context, c Confirmation) error {
	logger := contextutil.LoggerFromContext(ctx)

	addr := net.JoinHostPort(s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)
	msg := buildMessage(s.from, c)

	if err := smtp.SendMail(addr, auth, s.from, []string{c.Email}, msg); err != nil {
		logger.ErrorContext(ctx, "failed to send confirmation email", "to", c.Email, "error", err)
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	logger.InfoContext(ctx, "confirmation email sent", "to", c.Email)
	return nil
}

func buildMessage(from string, c Confirmation) []byte {
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\n"+
			"You have received a new appointment request.\r\n\r\n"+
			"Details:\r\n"+
			"Name: %s\r\n"+
			"Phone Number: %s\r\n"+
			"Email: %s\r\n"+
			"Appointment Date: %s\r\n\r\n"+
			"Best regards,\r\n"+
			"Your Assistant",
		c.Name, c.Name, c.Phone, c.Email, c.AppointmentDate.Format("2006-01-02 15:04"),
	)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: New Appointment Request\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		from, c.Email, body,
	)
	return []byte(msg)
}
