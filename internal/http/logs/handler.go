package logs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/payflow/internal/runlog"
)

type Service interface {
	Recent(ctx context.Context, limit int) ([]*runlog.Entry, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ID            uuid.UUID `json:"id"`
	Key           string    `json:"log_key"`
	ClientID      string    `json:"client_doc_id"`
	ClientName    string    `json:"client_name"`
	Period        string    `json:"period"`
	ExecutionTime time.Time `json:"execution_time"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit := runlog.DefaultLimit

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > runlog.DefaultLimit {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	entries, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list run logs", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, entryResponse{
			ID:            e.ID,
			Key:           e.Key,
			ClientID:      e.ClientID,
			ClientName:    e.ClientName,
			Period:        e.Period,
			ExecutionTime: e.ExecutedAt,
			Status:        e.Status,
			Message:       e.Message,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
