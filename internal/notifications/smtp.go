package notifications

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// ContactSubmission is consumed once per contact-form post and never
// persisted.
type ContactSubmission struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Message   string
}

type smtpSession interface {
	StartTLS(config *tls.Config) error
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// SMTPMailer relays contact submissions through an authenticated SMTP
// session: STARTTLS, AUTH, admin notice, user acknowledgment, QUIT.
// Both messages ride one session; any failure aborts the whole send,
// and an auth failure means nothing was attempted.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	dial     func(ctx context.Context, addr string) (smtpSession, error)
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		dial:     dialSMTP,
	}
}

func dialSMTP(ctx context.Context, addr string) (smtpSession, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return client, nil
}

func (m *SMTPMailer) SendContactEmails(ctx context.Context, sub ContactSubmission) error {
	if m == nil {
		return errors.New("smtp mailer is not configured")
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	session, err := m.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer session.Close()

	if err := session.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
		return fmt.Errorf("smtp starttls: %w", err)
	}
	if err := session.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	// Admin first, then the auto-reply to the submitter. The recipient
	// address is passed through as supplied; the relay decides whether
	// a malformed one is deliverable.
	adminSubject, adminBody := buildAdminNotification(sub)
	if err := sendMessage(session, m.username, m.username, adminSubject, adminBody); err != nil {
		return fmt.Errorf("smtp send admin notice: %w", err)
	}

	userSubject, userBody := buildUserAcknowledgment(sub)
	if err := sendMessage(session, m.username, sub.Email, userSubject, userBody); err != nil {
		return fmt.Errorf("smtp send acknowledgment: %w", err)
	}

	if err := session.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}
	return nil
}

func sendMessage(session smtpSession, from, to, subject, body string) error {
	if err := session.Mail(from); err != nil {
		return err
	}
	if err := session.Rcpt(to); err != nil {
		return err
	}
	w, err := session.Data()
	if err != nil {
		return err
	}
	msg := formatMessage(from, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func formatMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + headerValue(to) + "\r\n")
	b.WriteString("Subject: " + headerValue(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// headerValue strips CR, LF and other control characters from a value
// before it lands on a header line, so submitted text cannot terminate
// the line and smuggle extra headers into the message.
func headerValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
