package client

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("client not found")

// MaskedPassword is what the API shows instead of a stored password. Sending
// it back on save keeps the stored password.
const MaskedPassword = "••••••••"

// Client is the configuration of one accountant-managed organisation.
type Client struct {
	ID           string
	Name         string
	Dossier      string // payroll provider dossier number
	TransferDay  int    // day of month the scheduled transfer runs
	OdooHost     string
	OdooDatabase string
	OdooLogin    string
	// OdooPassword is the encrypted password.
	OdooPassword string
	JournalCode  string
	CompanyID    int64
	// OdooVersion is the declared Odoo major version, 0 when unknown.
	OdooVersion int
	UpdatedAt   time.Time
}

// AlertRecipient returns the address failure alerts go to: the Odoo login,
// when it is an email address.
func (c *Client) AlertRecipient() string {
	if !strings.Contains(c.OdooLogin, "@") {
		return ""
	}

	return c.OdooLogin
}
