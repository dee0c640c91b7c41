package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ajees1626/Pixdotbackend/internal/media"
	"github.com/Ajees1626/Pixdotbackend/internal/transport"
	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 32 << 20

type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Warn("upload: invalid multipart form")
		transport.WriteError(w, http.StatusBadRequest, "no image file in request", nil)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		log.Warn("upload: missing image field")
		transport.WriteError(w, http.StatusBadRequest, "no image file in request", nil)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	url, err := s.Media.Store(ctx, header.Filename, file, header.Size)
	if err != nil {
		if errors.Is(err, media.ErrInvalidType) {
			log.Warn("upload: unsupported file type", slog.String("filename", header.Filename))
			transport.WriteError(w, http.StatusBadRequest, "unsupported file type", nil)
			return
		}
		log.Error("upload: storage failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "upload failed", nil)
		return
	}

	log.Info("upload: stored", slog.String("url", url))
	transport.WriteJSON(w, http.StatusOK, UploadResponse{ImageURL: url})
}

func (s *Server) ServeUpload(w http.ResponseWriter, r *http.Request) {
	if s.Uploads == nil {
		http.NotFound(w, r)
		return
	}
	path, err := s.Uploads.Resolve(chi.URLParam(r, "filename"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}
