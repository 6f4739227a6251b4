package odoo_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/payflow/internal/odoo"
)

func response(value string) string {
	return `<?xml version="1.0"?><methodResponse><params><param><value>` + value + `</value></param></params></methodResponse>`
}

func fault(message string) string {
	return `<?xml version="1.0"?><methodResponse><fault><value><struct>` +
		`<member><name>faultCode</name><value><int>1</int></value></member>` +
		`<member><name>faultString</name><value><string>` + message + `</string></value></member>` +
		`</struct></value></fault></methodResponse>`
}

// newServer answers each request with the first reply whose key appears in the request body.
func newServer(t *testing.T, replies map[string]string) (*odoo.Client, *[]string) {
	t.Helper()

	var bodies []string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body := string(b)
		bodies = append(bodies, r.URL.Path+" "+body)

		w.Header().Set("Content-Type", "text/xml")

		for key, reply := range replies {
			if strings.Contains(body, key) {
				_, _ = io.WriteString(w, reply)
				return
			}
		}

		_, _ = io.WriteString(w, fault("unexpected call"))
	}))
	t.Cleanup(ts.Close)

	c, err := odoo.Dial("http", strings.TrimPrefix(ts.URL, "http://"), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, &bodies
}

func TestClient_Authenticate(t *testing.T) {
	c, bodies := newServer(t, map[string]string{
		"authenticate": response("<int>7</int>"),
	})

	uid, err := c.Authenticate(context.Background(), "db", "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), uid)

	require.Len(t, *bodies, 1)
	assert.True(t, strings.HasPrefix((*bodies)[0], "/xmlrpc/2/common"))
	assert.Contains(t, (*bodies)[0], "user@example.com")
}

func TestClient_Authenticate_Rejected(t *testing.T) {
	c, _ := newServer(t, map[string]string{
		"authenticate": response("<boolean>0</boolean>"),
	})

	_, err := c.Authenticate(context.Background(), "db", "user", "wrong")
	assert.ErrorIs(t, err, odoo.ErrInvalidCredentials)
}

func TestClient_SearchAndCreate(t *testing.T) {
	c, bodies := newServer(t, map[string]string{
		"<string>search</string>": response("<array><data><value><int>11</int></value><value><int>12</int></value></data></array>"),
		"<string>create</string>": response("<int>42</int>"),
	})

	s := odoo.Session{DB: "db", UID: 7, Password: "secret"}

	ids, err := c.Search(context.Background(), s, "account.account",
		odoo.Domain{{Field: "code", Operator: "=", Value: "641100"}},
		odoo.Options{Context: map[string]any{"check_company": true}},
	)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, ids)
	assert.Contains(t, (*bodies)[0], "641100")
	assert.Contains(t, (*bodies)[0], "check_company")

	id, err := c.Create(context.Background(), s, "account.move", map[string]any{"ref": "SALAIRES MARS 2025"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.True(t, strings.HasPrefix((*bodies)[1], "/xmlrpc/2/object"))
}

func TestClient_FaultIsUnknownField(t *testing.T) {
	c, _ := newServer(t, map[string]string{
		"execute_kw": fault("ValueError: Invalid field 'company_id' on model 'account.account'"),
	})

	_, err := c.Search(context.Background(), odoo.Session{DB: "db", UID: 1}, "account.account", nil, odoo.Options{})
	require.Error(t, err)

	var f *odoo.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "account.account.search", f.Call)
	assert.True(t, odoo.IsUnknownField(err, "company_id"))
	assert.False(t, odoo.IsUnknownField(err, "partner_id"))
}

func TestIsUnknownField(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "Nil", err: nil, want: false},
		{name: "PlainError", err: io.EOF, want: false},
		{name: "UnknownField", err: &odoo.Fault{Message: "unknown field: company_id"}, want: true},
		{name: "OtherFault", err: &odoo.Fault{Message: "Access Denied"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, odoo.IsUnknownField(tt.err, "company_id"))
		})
	}
}

func TestDial_EmptyHost(t *testing.T) {
	_, err := odoo.Dial("https", "  ", time.Second)
	assert.Error(t, err)
}
