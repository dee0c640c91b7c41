package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Ajees1626/Pixdotbackend/internal/auth"
	"github.com/Ajees1626/Pixdotbackend/internal/config"
	"github.com/Ajees1626/Pixdotbackend/internal/media"
	"github.com/Ajees1626/Pixdotbackend/internal/middleware"
	"github.com/Ajees1626/Pixdotbackend/internal/notifications"
	"github.com/Ajees1626/Pixdotbackend/internal/validation"
)

type ContactMailer interface {
	SendContactEmails(ctx context.Context, sub notifications.ContactSubmission) error
}

type Server struct {
	Cfg    *config.Config
	Val    *validation.Validator
	Log    *slog.Logger
	Mailer ContactMailer
	Media  media.Storer
	// Uploads is set when the local media backend is active; it backs
	// the GET /uploads/{filename} route.
	Uploads *media.LocalStorer
	JWT     *auth.Manager
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
