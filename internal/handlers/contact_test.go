package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ajees1626/Pixdotbackend/internal/config"
	"github.com/Ajees1626/Pixdotbackend/internal/notifications"
	"github.com/Ajees1626/Pixdotbackend/internal/validation"
)

type fakeMailer struct {
	calls []notifications.ContactSubmission
	err   error
}

func (f *fakeMailer) SendContactEmails(ctx context.Context, sub notifications.ContactSubmission) error {
	f.calls = append(f.calls, sub)
	return f.err
}

func newContactServer(mailer ContactMailer) *Server {
	return &Server{
		Cfg:    &config.Config{},
		Val:    validation.New(),
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Mailer: mailer,
	}
}

const contactPayload = `{"firstName":"Priya","lastName":"Raman","email":"priya@example.com","phone":"+919876543210","company":"Raman Textiles","subject":"Hello","message":"A note"}`

func postContact(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.CreateContact(rec, req)
	return rec
}

func TestCreateContactSendsAndAcks(t *testing.T) {
	mailer := &fakeMailer{}
	rec := postContact(newContactServer(mailer), contactPayload)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["message"] != "Message sent successfully via email!" {
		t.Fatalf("unexpected message %q", resp["message"])
	}

	if len(mailer.calls) != 1 {
		t.Fatalf("expected one send, got %d", len(mailer.calls))
	}
	sub := mailer.calls[0]
	if sub.FirstName != "Priya" || sub.Email != "priya@example.com" || sub.Company != "Raman Textiles" {
		t.Fatalf("submission not passed through: %+v", sub)
	}
}

func TestCreateContactTransportFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp auth: 535")}
	rec := postContact(newContactServer(mailer), contactPayload)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] != "Failed to send email." {
		t.Fatalf("unexpected error body %q", resp["error"])
	}
}

func TestCreateContactValidation(t *testing.T) {
	mailer := &fakeMailer{}
	server := newContactServer(mailer)

	cases := []string{
		`{"firstName":"Priya"}`,
		`{"firstName":"P","lastName":"R","email":"not-an-email","subject":"s","message":"m"}`,
		`not json`,
	}
	for _, body := range cases {
		rec := postContact(server, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, rec.Code)
		}
	}
	if len(mailer.calls) != 0 {
		t.Fatalf("expected no sends for invalid submissions, got %d", len(mailer.calls))
	}
}

func TestCreateContactWithoutMailer(t *testing.T) {
	rec := postContact(newContactServer(nil), contactPayload)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a mailer, got %d", rec.Code)
	}
}
