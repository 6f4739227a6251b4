package odoocheck_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/payflow/internal/client"
	"github.com/MrJamesThe3rd/payflow/internal/crypto"
	"github.com/MrJamesThe3rd/payflow/internal/http/odoocheck"
	"github.com/MrJamesThe3rd/payflow/internal/odoo"
)

type fakeInspector struct {
	password string
	err      error
}

func (f *fakeInspector) Inspect(_ context.Context, _, _, _, password string) (*odoo.Inspection, error) {
	f.password = password

	if f.err != nil {
		return nil, f.err
	}

	return &odoo.Inspection{
		UID:       2,
		Companies: map[int64]string{1: "ACME SAS"},
		Journals:  []odoo.Journal{{ID: 9, Name: "Paie", Code: "PAIE", CompanyID: 1}},
	}, nil
}

type fakeClients map[string]*client.Client

func (f fakeClients) Get(_ context.Context, id string) (*client.Client, error) {
	c, ok := f[id]
	if !ok {
		return nil, client.ErrNotFound
	}

	return c, nil
}

type fakeDecrypter struct{}

func (fakeDecrypter) Decrypt(ciphertext string) crypto.Result {
	if plain, ok := strings.CutPrefix(ciphertext, "enc:"); ok {
		return crypto.Result{Plaintext: plain}
	}

	return crypto.Result{Err: crypto.ErrDecrypt}
}

var stored = fakeClients{
	"acme":   {ID: "acme", OdooPassword: "enc:stored-pw"},
	"broken": {ID: "broken", OdooPassword: "garbage"},
}

func post(inspector odoocheck.Inspector, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/api/test-odoo", odoocheck.NewHandler(inspector, stored, fakeDecrypter{}).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/test-odoo", strings.NewReader(body)))

	return rec
}

func body(clientID, password string) string {
	return fmt.Sprintf(`{"client_doc_id":%q,"odoo_host":"acme.odoo.com","database_odoo":"acme","odoo_login":"compta@acme.fr","odoo_password":%q}`,
		clientID, password)
}

func TestHandler_Check(t *testing.T) {
	inspector := &fakeInspector{}

	rec := post(inspector, body("", "typed-pw"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "typed-pw", inspector.password)

	var resp struct {
		Status    string            `json:"status"`
		Companies map[string]string `json:"companies"`
		Journals  []odoo.Journal    `json:"journals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, map[string]string{"1": "ACME SAS"}, resp.Companies)
	require.Len(t, resp.Journals, 1)
	assert.Equal(t, "PAIE", resp.Journals[0].Code)
}

func TestHandler_Check_StoredPassword(t *testing.T) {
	inspector := &fakeInspector{}

	rec := post(inspector, body("acme", client.MaskedPassword))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stored-pw", inspector.password)
}

func TestHandler_Check_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "InvalidJSON", body: `{`, wantCode: http.StatusBadRequest},
		{name: "MissingHost", body: `{"database_odoo":"acme","odoo_login":"x"}`, wantCode: http.StatusBadRequest},
		{name: "NoPassword", body: body("", ""), wantCode: http.StatusBadRequest, wantBody: "odoo_password is required"},
		{name: "UnknownClient", body: body("nope", ""), wantCode: http.StatusBadRequest, wantBody: "client not found"},
		{name: "UndecryptablePassword", body: body("broken", ""), wantCode: http.StatusBadRequest, wantBody: "decryption failed"},
		{name: "AuthRejected", body: body("", "pw"), err: odoo.ErrInvalidCredentials, wantCode: http.StatusBadRequest, wantBody: "Authentification Odoo échouée"},
		{name: "Fault", body: body("", "pw"), err: errors.New("connection refused"), wantCode: http.StatusBadRequest, wantBody: "Erreur Odoo: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeInspector{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
