package casestudies

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ajees1626/Pixdotbackend/internal/cache"
	"github.com/Ajees1626/Pixdotbackend/internal/httpx"
	"github.com/Ajees1626/Pixdotbackend/internal/middleware"
	"github.com/Ajees1626/Pixdotbackend/internal/transport"
	"github.com/Ajees1626/Pixdotbackend/internal/validation"
	"github.com/go-chi/chi/v5"
)

const listCacheKey = "case-studies:all"

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type mutationResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id,omitempty"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if cached, ok, err := h.cache.Get(r.Context(), listCacheKey); err == nil && ok {
		log.Info("case studies list: cache hit")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("case studies list: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "store error", nil)
		return
	}

	payload, err := json.Marshal(items)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "store error", nil)
		return
	}
	_ = h.cache.Set(ctx, listCacheKey, payload, h.cacheTTL)

	log.Info("case studies list: ok", slog.Int("count", len(items)))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id, err := parseID(r)
	if err != nil {
		log.Warn("case studies get: invalid id")
		transport.WriteError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("case studies get: not found", slog.Int64("case_study_id", id))
			transport.WriteError(w, http.StatusNotFound, "Not found", nil)
			return
		}
		log.Error("case studies get: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "store error", nil)
		return
	}

	log.Info("case studies get: ok", slog.Int64("case_study_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("case studies create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("case studies create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("case studies create: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "store error", nil)
		return
	}
	h.invalidate(ctx)

	log.Info("case studies create: ok", slog.Int64("case_study_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, mutationResponse{Success: true, ID: item.ID})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id, err := parseID(r)
	if err != nil {
		log.Warn("case studies update: invalid id")
		transport.WriteError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("case studies update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if _, err := h.service.Update(ctx, id, req); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("case studies update: not found", slog.Int64("case_study_id", id))
			transport.WriteError(w, http.StatusNotFound, "Not found", nil)
			return
		}
		log.Error("case studies update: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "store error", nil)
		return
	}
	h.invalidate(ctx)

	log.Info("case studies update: ok", slog.Int64("case_study_id", id))
	transport.WriteJSON(w, http.StatusOK, mutationResponse{Success: true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id, err := parseID(r)
	if err != nil {
		log.Warn("case studies delete: invalid id")
		transport.WriteError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.service.Delete(ctx, id)
	if err != nil {
		log.Error("case studies delete: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "store error", nil)
		return
	}
	h.invalidate(ctx)

	// Deleting an id that never existed still reports success; the
	// operation is idempotent from the caller's point of view.
	log.Info("case studies delete: ok", slog.Int64("case_study_id", id), slog.Bool("existed", deleted))
	transport.WriteJSON(w, http.StatusOK, mutationResponse{Success: true})
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, listCacheKey); err != nil {
		h.log.Warn("case studies cache invalidation failed", slog.String("error", err.Error()))
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
