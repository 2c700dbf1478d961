package mailer

import (
	"fmt"
	stdhtml "html"
	"log"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// Mailer is the interface for delivering rendered emails.
type Mailer interface {
	// SendTestEmail delivers a rendered template to a single recipient so a
	// designer can check it in a real inbox.
	SendTestEmail(to, subject, html string) error
}

// Config holds the configuration for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: false,
	}
}

// NewTestSMTPMailer creates a new SMTP mailer in test mode (won't connect to SMTP server)
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: true,
	}
}

// SendTestEmail delivers the rendered HTML to a single recipient.
func (m *SMTPMailer) SendTestEmail(to, subject, html string) error {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set email from address: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set email recipient: %w", err)
	}

	if subject == "" {
		subject = "Test email"
	}
	msg.Subject(subject)

	msg.SetBodyString(mail.TypeTextHTML, EnsureEmailEnvelope(html, subject))

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}

	// For testing - log information if client is nil
	if client == nil {
		log.Printf("Sending test email to: %s", to)
		log.Printf("From: %s <%s>", m.config.FromName, m.config.FromEmail)
		log.Printf("Subject: %s", subject)
		return nil
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send test email: %w", err)
	}

	return nil
}

// createSMTPClient creates and configures a new SMTP client
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	// In test mode, return nil client to avoid SMTP connections
	if m.testMode {
		return nil, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	// Only add authentication if username and password are provided
	// This allows for unauthenticated SMTP servers (e.g., local relays, port 25)
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}

// EnsureEmailEnvelope wraps bare HTML fragments in a minimal email document
// so test sends survive strict clients. Full documents pass through unchanged.
func EnsureEmailEnvelope(html, subject string) string {
	trimmed := strings.TrimSpace(html)
	if strings.HasPrefix(strings.ToLower(trimmed), "<!doctype") {
		return html
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html><head><meta charset="utf-8" />`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0" />`)
	b.WriteString("<title>")
	b.WriteString(stdhtml.EscapeString(subject))
	b.WriteString("</title>")
	b.WriteString("<style>table { border-collapse: collapse; } img { border: 0; display: block; }</style>")
	b.WriteString("</head><body>")
	b.WriteString(html)
	b.WriteString("</body></html>")
	return b.String()
}

// ConsoleMailer is a development implementation that just logs emails
type ConsoleMailer struct{}

// NewConsoleMailer creates a new console mailer for development
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// SendTestEmail logs the test email details to console
func (m *ConsoleMailer) SendTestEmail(to, subject, html string) error {
	fmt.Println("==============================================================")
	fmt.Println("                       TEST EMAIL                             ")
	fmt.Println("==============================================================")
	fmt.Printf("To: %s\n", to)
	fmt.Printf("Subject: %s\n\n", subject)
	fmt.Printf("HTML length: %d bytes\n", len(html))
	fmt.Println("==============================================================")

	return nil
}
