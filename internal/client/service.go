package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	ListClients(ctx context.Context) ([]*Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	ListByTransferDay(ctx context.Context, day int) ([]*Client, error)
	// UpsertClient inserts or updates c. With keepPassword the stored
	// password is left untouched.
	UpsertClient(ctx context.Context, c *Client, keepPassword bool) error
}

type Encrypter interface {
	Encrypt(plaintext string) (string, error)
}

type Service struct {
	repo Repository
	enc  Encrypter
}

func NewService(repo Repository, enc Encrypter) *Service {
	return &Service{repo: repo, enc: enc}
}

// SaveParams carries a client as edited in the UI. OdooPassword is plaintext;
// empty or MaskedPassword keeps the stored one.
type SaveParams struct {
	Name         string
	Dossier      string
	TransferDay  int
	OdooHost     string
	OdooDatabase string
	OdooLogin    string
	OdooPassword string
	JournalCode  string
	CompanyID    int64
	OdooVersion  int
}

func (p SaveParams) validate() error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("nom is required"))
	}

	if p.TransferDay < 1 || p.TransferDay > 31 {
		errs = append(errs, fmt.Errorf("jour_transfert must be between 1 and 31, got %d", p.TransferDay))
	}

	if p.OdooVersion < 0 {
		errs = append(errs, fmt.Errorf("odoo_version must not be negative, got %d", p.OdooVersion))
	}

	return errors.Join(errs...)
}

// ValidationError wraps invalid SaveParams.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

// DueOn returns the clients whose scheduled transfer runs on day.
func (s *Service) DueOn(ctx context.Context, day int) ([]*Client, error) {
	return s.repo.ListByTransferDay(ctx, day)
}

func (s *Service) Save(ctx context.Context, id string, params SaveParams) (*Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ValidationError{Err: errors.New("client id is required")}
	}

	if err := params.validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	c := &Client{
		ID:           id,
		Name:         strings.TrimSpace(params.Name),
		Dossier:      strings.TrimSpace(params.Dossier),
		TransferDay:  params.TransferDay,
		OdooHost:     strings.TrimSpace(params.OdooHost),
		OdooDatabase: strings.TrimSpace(params.OdooDatabase),
		OdooLogin:    strings.TrimSpace(params.OdooLogin),
		JournalCode:  strings.TrimSpace(params.JournalCode),
		CompanyID:    params.CompanyID,
		OdooVersion:  params.OdooVersion,
	}

	keepPassword := params.OdooPassword == "" || params.OdooPassword == MaskedPassword
	if !keepPassword {
		encrypted, err := s.enc.Encrypt(params.OdooPassword)
		if err != nil {
			return nil, fmt.Errorf("encrypting password: %w", err)
		}

		c.OdooPassword = encrypted
	}

	if err := s.repo.UpsertClient(ctx, c, keepPassword); err != nil {
		return nil, err
	}

	return c, nil
}
