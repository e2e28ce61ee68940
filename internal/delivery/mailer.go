// Package delivery sends approved outreach directly from the operator's own
// mailboxes (SendGrid or SMTP) instead of through the delivery agent.
package delivery

import (
	"context"
	"fmt"

	"outreach/internal/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// Message is one outgoing email
type Message struct {
	FromEmail string
	FromName  string
	ToEmail   string
	ToName    string
	Subject   string
	Body      string
}

// Mailer delivers a single message
type Mailer interface {
	Deliver(ctx context.Context, msg Message) error
}

// SendGridMailer delivers through the SendGrid v3 API
type SendGridMailer struct {
	apiKey string
	host   string
}

// NewSendGridMailer creates a SendGrid mailer. An empty host uses the public API.
func NewSendGridMailer(apiKey, host string) *SendGridMailer {
	if host == "" {
		host = "https://api.sendgrid.com"
	}
	return &SendGridMailer{apiKey: apiKey, host: host}
}

// Deliver sends msg as a plain-text email with an HTML alternative
func (s *SendGridMailer) Deliver(ctx context.Context, msg Message) error {
	if s.apiKey == "" {
		return fmt.Errorf("SendGrid API key not configured")
	}

	from := mail.NewEmail(msg.FromName, msg.FromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, utils.PlainTextToHTML(msg.Body))

	request := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	request.Method = "POST"
	client := &sendgrid.Client{Request: request}

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// dialer is the part of gomail.Dialer the SMTP mailer needs
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer delivers through an SMTP relay
type SMTPMailer struct {
	dialer dialer
}

// NewSMTPMailer creates an SMTP mailer for the given relay
func NewSMTPMailer(host string, port int, user, password string) *SMTPMailer {
	return &SMTPMailer{dialer: gomail.NewDialer(host, port, user, password)}
}

// Deliver sends msg over SMTP. gomail cannot cancel a dial in flight, so
// Deliver stops waiting when ctx ends and the send finishes in the background.
func (s *SMTPMailer) Deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.FromEmail, msg.FromName)
	m.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	m.AddAlternative("text/html", utils.PlainTextToHTML(msg.Body))

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email over SMTP: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
