package pipeline

import (
	"fmt"
	"strings"
)

// Config holds what one run needs to reach the client's ERP. Password is the
// plaintext password.
type Config struct {
	Host        string
	Database    string
	Login       string
	Password    string
	JournalCode string
	CompanyID   int64
	// Version is the declared Odoo major version, 0 when unknown.
	Version int
}

// ConfigError lists the missing fields by their client configuration keys.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Configuration Odoo incomplète : %s.", strings.Join(e.Missing, ", "))
}

func (c Config) Validate() error {
	var missing []string

	required := []struct {
		key string
		ok  bool
	}{
		{"odoo_host", strings.TrimSpace(c.Host) != ""},
		{"database_odoo", strings.TrimSpace(c.Database) != ""},
		{"odoo_login", strings.TrimSpace(c.Login) != ""},
		{"odoo_password", c.Password != ""},
		{"journal_paie_odoo", strings.TrimSpace(c.JournalCode) != ""},
		{"odoo_company_id", c.CompanyID > 0},
	}

	for _, r := range required {
		if !r.ok {
			missing = append(missing, r.key)
		}
	}

	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	return nil
}
