package clients

import (
	"time"

	"github.com/MrJamesThe3rd/payflow/internal/client"
)

type clientResponse struct {
	Name         string    `json:"nom"`
	Dossier      string    `json:"numero_dossier_silae"`
	TransferDay  int       `json:"jour_transfert"`
	OdooHost     string    `json:"odoo_host"`
	OdooDatabase string    `json:"database_odoo"`
	OdooLogin    string    `json:"odoo_login"`
	OdooPassword *string   `json:"odoo_password"`
	JournalCode  string    `json:"journal_paie_odoo"`
	CompanyID    int64     `json:"odoo_company_id"`
	OdooVersion  int       `json:"odoo_version"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toResponse(c *client.Client) clientResponse {
	resp := clientResponse{
		Name:         c.Name,
		Dossier:      c.Dossier,
		TransferDay:  c.TransferDay,
		OdooHost:     c.OdooHost,
		OdooDatabase: c.OdooDatabase,
		OdooLogin:    c.OdooLogin,
		JournalCode:  c.JournalCode,
		CompanyID:    c.CompanyID,
		OdooVersion:  c.OdooVersion,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.OdooPassword != "" {
		masked := client.MaskedPassword
		resp.OdooPassword = &masked
	}

	return resp
}

// toResponseMap keys clients by id, the shape the UI reads.
func toResponseMap(clients []*client.Client) map[string]clientResponse {
	out := make(map[string]clientResponse, len(clients))
	for _, c := range clients {
		out[c.ID] = toResponse(c)
	}

	return out
}
