package odoo

import (
	"context"
	"fmt"
	"time"
)

// Journal is the subset of account.journal shown when checking a connection.
type Journal struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CompanyID int64  `json:"company_id"`
}

// Inspection summarises what a set of credentials can see on an instance.
type Inspection struct {
	UID       int64            `json:"uid"`
	Companies map[int64]string `json:"companies"`
	Journals  []Journal        `json:"journals"`
}

var inspectedJournalTypes = []string{"bank", "cash", "sale", "purchase", "general"}

// Inspect authenticates and lists the companies of the user and the journals
// usable for postings. It backs the connection test in the UI.
func (c *Client) Inspect(ctx context.Context, db, login, password string) (*Inspection, error) {
	uid, err := c.Authenticate(ctx, db, login, password)
	if err != nil {
		return nil, err
	}

	s := Session{DB: db, UID: uid, Password: password}

	users, err := c.Read(ctx, s, "res.users", []int64{uid}, Options{Fields: []string{"company_ids"}})
	if err != nil {
		return nil, fmt.Errorf("reading user companies: %w", err)
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("user %d not readable", uid)
	}

	companyIDs := int64s(users[0]["company_ids"])

	companies, err := c.Read(ctx, s, "res.company", companyIDs, Options{Fields: []string{"name"}})
	if err != nil {
		return nil, fmt.Errorf("reading companies: %w", err)
	}

	journals, err := c.SearchRead(ctx, s, "account.journal",
		Domain{{Field: "type", Operator: "in", Value: inspectedJournalTypes}},
		Options{Fields: []string{"name", "code", "company_id"}},
	)
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}

	out := &Inspection{
		UID:       uid,
		Companies: make(map[int64]string, len(companies)),
		Journals:  make([]Journal, 0, len(journals)),
	}

	for _, company := range companies {
		id, _ := company["id"].(int64)
		name, _ := company["name"].(string)
		out.Companies[id] = name
	}

	for _, j := range journals {
		journal := Journal{}
		journal.ID, _ = j["id"].(int64)
		journal.Name, _ = j["name"].(string)
		journal.Code, _ = j["code"].(string)
		journal.CompanyID = many2oneID(j["company_id"])
		out.Journals = append(out.Journals, journal)
	}

	return out, nil
}

// Inspector runs Inspect against any host, one connection per call.
type Inspector struct {
	Scheme  string
	Timeout time.Duration
}

func (i Inspector) Inspect(ctx context.Context, host, db, login, password string) (*Inspection, error) {
	c, err := Dial(i.Scheme, host, i.Timeout)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.Inspect(ctx, db, login, password)
}

func int64s(v any) []int64 {
	items, _ := v.([]any)

	out := make([]int64, 0, len(items))
	for _, item := range items {
		if id, ok := item.(int64); ok {
			out = append(out, id)
		}
	}

	return out
}

// many2oneID extracts the id from Odoo's [id, display_name] pair.
func many2oneID(v any) int64 {
	pair, ok := v.([]any)
	if !ok || len(pair) == 0 {
		return 0
	}

	id, _ := pair[0].(int64)

	return id
}
