package odoocheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/payflow/internal/client"
	"github.com/MrJamesThe3rd/payflow/internal/crypto"
	"github.com/MrJamesThe3rd/payflow/internal/odoo"
)

type Inspector interface {
	Inspect(ctx context.Context, host, db, login, password string) (*odoo.Inspection, error)
}

type ClientGetter interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

type Decrypter interface {
	Decrypt(ciphertext string) crypto.Result
}

// Handler tests Odoo credentials typed in the UI. When the password field is
// left masked, the stored password of the named client is used.
type Handler struct {
	inspector Inspector
	clients   ClientGetter
	decrypter Decrypter
}

func NewHandler(inspector Inspector, clients ClientGetter, decrypter Decrypter) *Handler {
	return &Handler{inspector: inspector, clients: clients, decrypter: decrypter}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.check)
}

type checkRequest struct {
	ClientID     string `json:"client_doc_id"`
	OdooHost     string `json:"odoo_host"`
	OdooDatabase string `json:"database_odoo"`
	OdooLogin    string `json:"odoo_login"`
	OdooPassword string `json:"odoo_password"`
}

type checkResponse struct {
	Status    string           `json:"status"`
	Companies map[int64]string `json:"companies"`
	Journals  []odoo.Journal   `json:"journals"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.OdooHost == "" || req.OdooDatabase == "" || req.OdooLogin == "" {
		http.Error(w, "odoo_host, database_odoo and odoo_login are required", http.StatusBadRequest)
		return
	}

	password, err := h.password(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inspection, err := h.inspector.Inspect(r.Context(), req.OdooHost, req.OdooDatabase, req.OdooLogin, password)
	if err != nil {
		if errors.Is(err, odoo.ErrInvalidCredentials) {
			http.Error(w, "Authentification Odoo échouée", http.StatusBadRequest)
			return
		}

		slog.Warn("odoo connection check failed", "host", req.OdooHost, "error", err)
		http.Error(w, "Erreur Odoo: "+err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := checkResponse{Status: "success", Companies: inspection.Companies, Journals: inspection.Journals}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) password(ctx context.Context, req checkRequest) (string, error) {
	if req.OdooPassword != "" && req.OdooPassword != client.MaskedPassword {
		return req.OdooPassword, nil
	}

	if req.ClientID == "" {
		return "", errors.New("odoo_password is required")
	}

	c, err := h.clients.Get(ctx, req.ClientID)
	if err != nil {
		return "", fmt.Errorf("loading stored password: %w", err)
	}

	res := h.decrypter.Decrypt(c.OdooPassword)
	if !res.OK() {
		return "", fmt.Errorf("loading stored password: %w", res.Err)
	}

	return res.Plaintext, nil
}
