package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/payflow/internal/odoo"
)

const accountModel = "account.account"

// ErrAccountNotFound is wrapped by AccountNotFoundError.
var ErrAccountNotFound = errors.New("account not found")

// AccountNotFoundError reports an account code with no match in the chart of
// accounts of the company.
type AccountNotFoundError struct {
	Code      string
	CompanyID int64
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("Compte %s introuvable pour la société %d.", e.Code, e.CompanyID)
}

func (e *AccountNotFoundError) Unwrap() error { return ErrAccountNotFound }

//go:generate mockgen -source=resolver.go -destination=searcher_mock.go -package=ledger
type Searcher interface {
	Search(ctx context.Context, s odoo.Session, model string, domain odoo.Domain, opts odoo.Options) ([]int64, error)
}

// AccountQueryStrategy builds the account search for one ERP schema variant.
type AccountQueryStrategy interface {
	Name() string
	Query(code string, companyID int64) (odoo.Domain, odoo.Options)
}

// LegacyCompanyFilter filters on account.account.company_id, which exists up
// to Odoo 17.
type LegacyCompanyFilter struct{}

func (LegacyCompanyFilter) Name() string { return "legacy_company_filter" }

func (LegacyCompanyFilter) Query(code string, companyID int64) (odoo.Domain, odoo.Options) {
	return odoo.Domain{
		{Field: "code", Operator: "=", Value: code},
		{Field: "company_id", Operator: "=", Value: companyID},
	}, odoo.Options{}
}

// ContextScopedFilter filters on the code only and scopes the company through
// the request context. Odoo 18 replaced company_id with company_ids.
type ContextScopedFilter struct{}

func (ContextScopedFilter) Name() string { return "context_scoped_filter" }

func (ContextScopedFilter) Query(code string, companyID int64) (odoo.Domain, odoo.Options) {
	return odoo.Domain{
			{Field: "code", Operator: "=", Value: code},
		}, odoo.Options{Context: map[string]any{
			"allowed_company_ids": []int64{companyID},
			"check_company":       true,
		}}
}

// firstContextScopedVersion is the first Odoo major version without
// account.account.company_id.
const firstContextScopedVersion = 18

// StrategyFor picks the strategy for a declared Odoo major version. It returns
// nil when the version is unknown and the schema has to be detected.
func StrategyFor(version int) AccountQueryStrategy {
	switch {
	case version <= 0:
		return nil
	case version < firstContextScopedVersion:
		return LegacyCompanyFilter{}
	default:
		return ContextScopedFilter{}
	}
}

// Resolver maps account codes to account ids. It keeps no cache: every call
// queries the ERP.
type Resolver struct {
	searcher Searcher
	strategy AccountQueryStrategy
}

// NewResolver returns a resolver for the declared Odoo major version, 0 when
// unknown.
func NewResolver(searcher Searcher, version int) *Resolver {
	return &Resolver{searcher: searcher, strategy: StrategyFor(version)}
}

func (r *Resolver) Resolve(ctx context.Context, s odoo.Session, code string, companyID int64) (ResolvedAccount, error) {
	ids, err := r.search(ctx, s, code, companyID)
	if err != nil {
		return ResolvedAccount{}, err
	}

	if len(ids) == 0 {
		return ResolvedAccount{}, &AccountNotFoundError{Code: code, CompanyID: companyID}
	}

	return ResolvedAccount{ID: ids[0], Code: code, CompanyID: companyID}, nil
}

func (r *Resolver) search(ctx context.Context, s odoo.Session, code string, companyID int64) ([]int64, error) {
	if r.strategy != nil {
		return r.query(ctx, s, r.strategy, code, companyID)
	}

	ids, err := r.query(ctx, s, LegacyCompanyFilter{}, code, companyID)
	if err == nil || !odoo.IsUnknownField(err, "company_id") {
		return ids, err
	}

	return r.query(ctx, s, ContextScopedFilter{}, code, companyID)
}

func (r *Resolver) query(ctx context.Context, s odoo.Session, strategy AccountQueryStrategy, code string, companyID int64) ([]int64, error) {
	domain, opts := strategy.Query(code, companyID)
	opts.Limit = 1

	ids, err := r.searcher.Search(ctx, s, accountModel, domain, opts)
	if err != nil {
		return nil, fmt.Errorf("searching account %s (%s): %w", code, strategy.Name(), err)
	}

	return ids, nil
}
