package imports

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/payflow/internal/client"
	"github.com/MrJamesThe3rd/payflow/internal/scheduler"
)

type Runner interface {
	RunManual(ctx context.Context, clientID string, periods []string) ([]scheduler.PeriodResult, error)
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/manual", h.manual)
}

type manualImportRequest struct {
	ClientID string   `json:"client_doc_id"`
	Periods  []string `json:"periods"`
}

type periodResult struct {
	Period  string `json:"period"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type manualImportResponse struct {
	Results []periodResult `json:"results"`
}

func (h *Handler) manual(w http.ResponseWriter, r *http.Request) {
	var req manualImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ClientID == "" || len(req.Periods) == 0 {
		http.Error(w, "client_doc_id and periods are required", http.StatusBadRequest)
		return
	}

	results, err := h.runner.RunManual(r.Context(), req.ClientID, req.Periods)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			http.Error(w, "Client introuvable", http.StatusNotFound)
			return
		}

		slog.Error("failed to run manual import", "client", req.ClientID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	resp := manualImportResponse{Results: make([]periodResult, 0, len(results))}
	for _, res := range results {
		status := "error"
		if res.Success {
			status = "success"
		}

		resp.Results = append(resp.Results, periodResult{Period: res.Period, Status: status, Message: res.Message})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
