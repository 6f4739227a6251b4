package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/payflow/internal/client"
)

type Service interface {
	List(ctx context.Context) ([]*client.Client, error)
	Save(ctx context.Context, id string, params client.SaveParams) (*client.Client, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/{id}", h.save)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list clients", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, toResponseMap(clients))
}

type saveClientRequest struct {
	Name         string  `json:"nom"`
	Dossier      string  `json:"numero_dossier_silae"`
	TransferDay  int     `json:"jour_transfert"`
	OdooHost     string  `json:"odoo_host"`
	OdooDatabase string  `json:"database_odoo"`
	OdooLogin    string  `json:"odoo_login"`
	OdooPassword *string `json:"odoo_password"`
	JournalCode  string  `json:"journal_paie_odoo"`
	CompanyID    int64   `json:"odoo_company_id"`
	OdooVersion  int     `json:"odoo_version"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req saveClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := client.SaveParams{
		Name:         req.Name,
		Dossier:      req.Dossier,
		TransferDay:  req.TransferDay,
		OdooHost:     req.OdooHost,
		OdooDatabase: req.OdooDatabase,
		OdooLogin:    req.OdooLogin,
		JournalCode:  req.JournalCode,
		CompanyID:    req.CompanyID,
		OdooVersion:  req.OdooVersion,
	}
	if req.OdooPassword != nil {
		params.OdooPassword = *req.OdooPassword
	}

	c, err := h.svc.Save(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		var verr *client.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to save client", "id", chi.URLParam(r, "id"), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, statusResponse{Status: "success", Message: fmt.Sprintf("Client %s sauvegardé.", c.Name)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
