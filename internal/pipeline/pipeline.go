package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/payflow/internal/ledger"
	"github.com/MrJamesThe3rd/payflow/internal/odoo"
	"github.com/MrJamesThe3rd/payflow/internal/payroll"
)

const (
	journalModel = "account.journal"
	moveModel    = "account.move"
)

//go:generate mockgen -source=pipeline.go -destination=erp_mock.go -package=pipeline
type ERP interface {
	Authenticate(ctx context.Context, db, login, password string) (int64, error)
	Search(ctx context.Context, s odoo.Session, model string, domain odoo.Domain, opts odoo.Options) ([]int64, error)
	Create(ctx context.Context, s odoo.Session, model string, values map[string]any) (int64, error)
	Close() error
}

// Dialer opens a fresh ERP connection for each run.
type Dialer interface {
	Dial(host string) (ERP, error)
}

type odooDialer struct {
	scheme  string
	timeout time.Duration
}

// NewOdooDialer returns a Dialer for Odoo's XML-RPC endpoints.
func NewOdooDialer(scheme string, timeout time.Duration) Dialer {
	return odooDialer{scheme: scheme, timeout: timeout}
}

func (d odooDialer) Dial(host string) (ERP, error) {
	c, err := odoo.Dial(d.scheme, host, d.timeout)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Pipeline turns a provider export into one posted journal entry.
type Pipeline struct {
	dialer Dialer
}

func New(dialer Dialer) *Pipeline {
	return &Pipeline{dialer: dialer}
}

// Run posts export for period and classifies the result. Expected failures
// are reported through the Outcome; Run has no error return. Nothing is
// written to the ERP unless every line resolves.
func (p *Pipeline) Run(ctx context.Context, cfg Config, export *payroll.Export, period string, postingDate time.Time) Outcome {
	if err := cfg.Validate(); err != nil {
		return outcome(StatusErrorConfig, err.Error())
	}

	lines := payroll.Extract(export)
	if len(lines) == 0 {
		return outcome(StatusSuccessEmpty, "Aucune écriture à importer.")
	}

	erp, err := p.dialer.Dial(cfg.Host)
	if err != nil {
		return outcome(StatusErrorRPC, err.Error())
	}
	defer erp.Close()

	uid, err := erp.Authenticate(ctx, cfg.Database, cfg.Login, cfg.Password)
	if err != nil {
		if errors.Is(err, odoo.ErrInvalidCredentials) {
			return outcome(StatusErrorAuth, "Échec authentification Odoo.")
		}

		return outcome(StatusErrorAuth, fmt.Sprintf("Échec authentification Odoo : %v", err))
	}

	session := odoo.Session{DB: cfg.Database, UID: uid, Password: cfg.Password}

	journalIDs, err := erp.Search(ctx, session, journalModel, odoo.Domain{
		{Field: "code", Operator: "=", Value: cfg.JournalCode},
		{Field: "company_id", Operator: "=", Value: cfg.CompanyID},
	}, odoo.Options{Limit: 1})
	if err != nil {
		return outcome(StatusErrorRPC, err.Error())
	}

	if len(journalIDs) == 0 {
		return outcome(StatusErrorJournal, fmt.Sprintf("Journal %s introuvable.", cfg.JournalCode))
	}

	resolver := ledger.NewResolver(erp, cfg.Version)
	postings := make([]ledger.Posting, 0, len(lines))

	for _, line := range lines {
		account, err := resolver.Resolve(ctx, session, line.AccountCode, cfg.CompanyID)
		if err != nil {
			if errors.Is(err, ledger.ErrAccountNotFound) {
				return outcome(StatusErrorAccount, err.Error())
			}

			return outcome(StatusErrorRPC, err.Error())
		}

		postings = append(postings, ledger.Posting{Line: line, Account: account})
	}

	entry := ledger.Build(postings, journalIDs[0], period, postingDate, cfg.CompanyID)

	if debit, credit := entry.Totals(); !debit.Equal(credit) {
		slog.Warn("journal entry is not balanced",
			"period", period, "debit", debit.StringFixed(2), "credit", credit.StringFixed(2))
	}

	moveID, err := erp.Create(ctx, session, moveModel, entry.Values())
	if err != nil {
		return outcome(StatusErrorRPC, err.Error())
	}

	return Outcome{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Pièce créée ID %d", moveID),
		MoveID:  moveID,
		Label:   entry.Label,
	}
}
