package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ajees1626/Pixdotbackend/internal/httpx"
	"github.com/Ajees1626/Pixdotbackend/internal/notifications"
	"github.com/Ajees1626/Pixdotbackend/internal/transport"
)

type ContactRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Company   string `json:"company"`
	Subject   string `json:"subject" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type ContactResponse struct {
	Message string `json:"message"`
}

func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req ContactRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("contact: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	if s.Mailer == nil {
		log.Error("contact: mailer not configured")
		transport.WriteError(w, http.StatusInternalServerError, "Failed to send email.", nil)
		return
	}

	sub := notifications.ContactSubmission{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Subject:   req.Subject,
		Message:   req.Message,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := s.Mailer.SendContactEmails(ctx, sub); err != nil {
		log.Error("contact: send failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "Failed to send email.", nil)
		return
	}

	log.Info("contact: sent", slog.String("email", req.Email))
	transport.WriteJSON(w, http.StatusOK, ContactResponse{Message: "Message sent successfully via email!"})
}
