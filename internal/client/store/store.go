package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/payflow/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectClientColumns = `
	id, name, dossier, transfer_day, odoo_host, odoo_database, odoo_login,
	odoo_password, journal_code, company_id, odoo_version, updated_at
`

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	if err := s.Scan(
		&c.ID, &c.Name, &c.Dossier, &c.TransferDay, &c.OdooHost, &c.OdooDatabase, &c.OdooLogin,
		&c.OdooPassword, &c.JournalCode, &c.CompanyID, &c.OdooVersion, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) GetClient(ctx context.Context, id string) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	return s.list(ctx, `SELECT `+selectClientColumns+` FROM clients ORDER BY id`)
}

func (s *Store) ListByTransferDay(ctx context.Context, day int) ([]*client.Client, error) {
	return s.list(ctx, `SELECT `+selectClientColumns+` FROM clients WHERE transfer_day = $1 ORDER BY id`, day)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*client.Client, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) UpsertClient(ctx context.Context, c *client.Client, keepPassword bool) error {
	// On conflict the password column is only overwritten when a new one was
	// supplied.
	query := `
		INSERT INTO clients (id, name, dossier, transfer_day, odoo_host, odoo_database, odoo_login,
			odoo_password, journal_code, company_id, odoo_version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			dossier = EXCLUDED.dossier,
			transfer_day = EXCLUDED.transfer_day,
			odoo_host = EXCLUDED.odoo_host,
			odoo_database = EXCLUDED.odoo_database,
			odoo_login = EXCLUDED.odoo_login,
			odoo_password = CASE WHEN $12 THEN clients.odoo_password ELSE EXCLUDED.odoo_password END,
			journal_code = EXCLUDED.journal_code,
			company_id = EXCLUDED.company_id,
			odoo_version = EXCLUDED.odoo_version,
			updated_at = NOW()
		RETURNING odoo_password, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.ID,
		c.Name,
		c.Dossier,
		c.TransferDay,
		c.OdooHost,
		c.OdooDatabase,
		c.OdooLogin,
		c.OdooPassword,
		c.JournalCode,
		c.CompanyID,
		c.OdooVersion,
		keepPassword,
	).Scan(&c.OdooPassword, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting client: %w", err)
	}

	return nil
}
