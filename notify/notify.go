// Package notify sends templated email notifications. Dispatch is
// at-most-once and non-blocking: every call site logs failures and carries on.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// Templates fired by the moderation and submission flows
const (
	TemplateMemberCreated   = "member_created"
	TemplateMemberApproved  = "member_approved"
	TemplateMemberRejected  = "member_rejected"
	TemplateEnfilerCreated  = "don_created"
	TemplateEnfilerApproved = "don_approved"
	TemplateEnfilerRejected = "don_rejected"
	TemplateContactReceived = "contact_received"
)

// Message is one templated notification
type Message struct {
	Template  string
	Recipient string
	Subject   string
	Context   map[string]string
}

// Notifier delivers a Message to its recipient
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPNotifier delivers messages through a plain SMTP relay
type SMTPNotifier struct {
	host    string
	port    string
	from    string
	timeout time.Duration
}

// SMTPConfig contains configuration for the SMTP notifier
type SMTPConfig struct {
	Host    string
	Port    string
	From    string
	Timeout time.Duration
}

// NewSMTPNotifier creates an SMTP-backed Notifier
func NewSMTPNotifier(config SMTPConfig) *SMTPNotifier {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &SMTPNotifier{host: config.Host, port: config.Port, from: config.From, timeout: timeout}
}

// FromAddress is the configured sender, also used as the admin recipient
func (n *SMTPNotifier) FromAddress() string { return n.from }

// Send renders the message body from its context and relays it. The whole
// SMTP conversation is bounded by the notifier timeout (or an earlier ctx
// deadline) so a hung relay never blocks the caller.
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n", n.from, msg.Recipient, msg.Subject)
	fmt.Fprintf(&body, "[%s]\r\n", msg.Template)
	for key, value := range msg.Context {
		fmt.Fprintf(&body, "%s: %s\r\n", key, value)
	}

	addr := n.host + ":" + n.port
	dialer := &net.Dialer{Timeout: n.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s failed: %w", addr, err)
	}

	deadline := time.Now().Add(n.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("smtp deadline on %s failed: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake with %s failed: %w", addr, err)
	}
	defer client.Close()

	if err := client.Mail(n.from); err != nil {
		return fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(msg.Recipient); err != nil {
		return fmt.Errorf("smtp RCPT TO %s failed: %w", msg.Recipient, err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := writer.Write([]byte(body.String())); err != nil {
		return fmt.Errorf("smtp body write failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp body close failed: %w", err)
	}
	return client.Quit()
}

// NoopNotifier drops every message. Used when mail is not configured so the
// rest of the system keeps its fire-and-forget semantics.
type NoopNotifier struct{}

// Send logs and discards the message
func (NoopNotifier) Send(ctx context.Context, msg Message) error {
	slog.Info("Mail not configured, dropping notification", "template", msg.Template, "recipient", msg.Recipient)
	return nil
}

// NewNotifierFromEnv returns an SMTP notifier when MAIL_HOST is set and a
// NoopNotifier otherwise
func NewNotifierFromEnv() Notifier {
	host := os.Getenv("MAIL_HOST")
	if host == "" {
		return NoopNotifier{}
	}
	port := os.Getenv("MAIL_PORT")
	if port == "" {
		port = "25"
	}
	return NewSMTPNotifier(SMTPConfig{
		Host: host,
		Port: port,
		From: os.Getenv("MAIL_FROM_ADDRESS"),
	})
}
