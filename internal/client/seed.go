package client

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Clients []seedEntry `yaml:"clients"`
}

type seedEntry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"nom"`
	Dossier      string `yaml:"numero_dossier_silae"`
	TransferDay  int    `yaml:"jour_transfert"`
	OdooHost     string `yaml:"odoo_host"`
	OdooDatabase string `yaml:"database_odoo"`
	OdooLogin    string `yaml:"odoo_login"`
	OdooPassword string `yaml:"odoo_password"`
	JournalCode  string `yaml:"journal_paie_odoo"`
	CompanyID    int64  `yaml:"odoo_company_id"`
	OdooVersion  int    `yaml:"odoo_version"`
}

// Seed is one client read from a seed file.
type Seed struct {
	ID     string
	Params SaveParams
}

// LoadSeed reads client definitions from YAML, used to onboard a batch of
// clients at once. Passwords in the file are plaintext.
func LoadSeed(r io.Reader) ([]Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	seeds := make([]Seed, 0, len(f.Clients))
	for i, e := range f.Clients {
		if e.ID == "" {
			return nil, fmt.Errorf("client #%d: id is required", i+1)
		}

		seeds = append(seeds, Seed{
			ID: e.ID,
			Params: SaveParams{
				Name:         e.Name,
				Dossier:      e.Dossier,
				TransferDay:  e.TransferDay,
				OdooHost:     e.OdooHost,
				OdooDatabase: e.OdooDatabase,
				OdooLogin:    e.OdooLogin,
				OdooPassword: e.OdooPassword,
				JournalCode:  e.JournalCode,
				CompanyID:    e.CompanyID,
				OdooVersion:  e.OdooVersion,
			},
		})
	}

	return seeds, nil
}

// Import saves every seed and stops at the first failure.
func (s *Service) Import(ctx context.Context, seeds []Seed) (int, error) {
	for i, seed := range seeds {
		if _, err := s.Save(ctx, seed.ID, seed.Params); err != nil {
			return i, fmt.Errorf("saving client %s: %w", seed.ID, err)
		}
	}

	return len(seeds), nil
}
