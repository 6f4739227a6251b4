package odoo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/rpc"
	"strings"
	"time"

	"github.com/kolo/xmlrpc"
)

// ErrInvalidCredentials is returned by Authenticate when the server answers
// without a user id.
var ErrInvalidCredentials = errors.New("odoo: invalid credentials")

// Session identifies an authenticated user on one database. Odoo's external
// API is stateless so the password travels with every call.
type Session struct {
	DB       string
	UID      int64
	Password string
}

// Condition is one (field, operator, value) search predicate.
type Condition struct {
	Field    string
	Operator string
	Value    any
}

// Domain is an implicitly AND-ed list of conditions.
type Domain []Condition

func (d Domain) encode() []any {
	out := make([]any, 0, len(d))
	for _, c := range d {
		out = append(out, []any{c.Field, c.Operator, c.Value})
	}

	return out
}

// Options carries the keyword arguments of an execute_kw call.
type Options struct {
	Context map[string]any
	Fields  []string
	Limit   int
}

func (o Options) encode() map[string]any {
	kw := map[string]any{}

	if len(o.Context) > 0 {
		kw["context"] = o.Context
	}

	if len(o.Fields) > 0 {
		kw["fields"] = o.Fields
	}

	if o.Limit > 0 {
		kw["limit"] = o.Limit
	}

	return kw
}

// Client talks to one Odoo instance over XML-RPC. A Client must not be shared
// between concurrent pipeline runs.
type Client struct {
	host   string
	common *xmlrpc.Client
	object *xmlrpc.Client
}

// Dial prepares clients for the common and object endpoints of host.
// No request is made until the first call.
func Dial(scheme, host string, timeout time.Duration) (*Client, error) {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, errors.New("odoo: empty host")
	}

	if scheme == "" {
		scheme = "https"
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}

	common, err := xmlrpc.NewClient(fmt.Sprintf("%s://%s/xmlrpc/2/common", scheme, host), transport)
	if err != nil {
		return nil, fmt.Errorf("creating common client: %w", err)
	}

	object, err := xmlrpc.NewClient(fmt.Sprintf("%s://%s/xmlrpc/2/object", scheme, host), transport)
	if err != nil {
		common.Close()
		return nil, fmt.Errorf("creating object client: %w", err)
	}

	return &Client{host: host, common: common, object: object}, nil
}

func (c *Client) Close() error {
	return errors.Join(c.common.Close(), c.object.Close())
}

// Authenticate returns the user id for login on db. Odoo answers false for
// bad credentials, reported as ErrInvalidCredentials.
func (c *Client) Authenticate(ctx context.Context, db, login, password string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var reply any
	if err := c.common.Call("authenticate", []any{db, login, password, map[string]any{}}, &reply); err != nil {
		return 0, wrap("authenticate", err)
	}

	uid, ok := reply.(int64)
	if !ok || uid == 0 {
		return 0, ErrInvalidCredentials
	}

	return uid, nil
}

// Search returns the ids of model records matching domain.
func (c *Client) Search(ctx context.Context, s Session, model string, domain Domain, opts Options) ([]int64, error) {
	var ids []int64
	if err := c.execute(ctx, s, model, "search", []any{domain.encode()}, opts, &ids); err != nil {
		return nil, err
	}

	return ids, nil
}

// SearchRead returns the requested fields of records matching domain.
func (c *Client) SearchRead(ctx context.Context, s Session, model string, domain Domain, opts Options) ([]map[string]any, error) {
	var records []map[string]any
	if err := c.execute(ctx, s, model, "search_read", []any{domain.encode()}, opts, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Read returns the requested fields of the given records.
func (c *Client) Read(ctx context.Context, s Session, model string, ids []int64, opts Options) ([]map[string]any, error) {
	var records []map[string]any
	if err := c.execute(ctx, s, model, "read", []any{ids}, opts, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Create inserts one record and returns its id.
func (c *Client) Create(ctx context.Context, s Session, model string, values map[string]any) (int64, error) {
	var id int64
	if err := c.execute(ctx, s, model, "create", []any{values}, Options{}, &id); err != nil {
		return 0, err
	}

	return id, nil
}

func (c *Client) execute(ctx context.Context, s Session, model, method string, args []any, opts Options, reply any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := []any{s.DB, s.UID, s.Password, model, method, args, opts.encode()}
	if err := c.object.Call("execute_kw", params, reply); err != nil {
		return wrap(model+"."+method, err)
	}

	return nil
}

// Fault is an error reported by the Odoo server itself, as opposed to a
// transport failure.
type Fault struct {
	Call    string
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("odoo fault on %s: %s", f.Call, f.Message)
}

func wrap(call string, err error) error {
	var serverErr rpc.ServerError
	if errors.As(err, &serverErr) {
		return &Fault{Call: call, Message: string(serverErr)}
	}

	return fmt.Errorf("odoo %s: %w", call, err)
}

// IsUnknownField reports whether err is the fault Odoo raises when a search
// domain names a field the model does not have.
func IsUnknownField(err error, field string) bool {
	var fault *Fault
	if !errors.As(err, &fault) {
		return false
	}

	msg := strings.ToLower(fault.Message)
	if !strings.Contains(msg, "invalid field") && !strings.Contains(msg, "unknown field") {
		return false
	}

	return strings.Contains(msg, strings.ToLower(field))
}
