package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/payflow/internal/client"
	payflowhttp "github.com/MrJamesThe3rd/payflow/internal/http"
	"github.com/MrJamesThe3rd/payflow/internal/http/auth"
	"github.com/MrJamesThe3rd/payflow/internal/http/clients"
	"github.com/MrJamesThe3rd/payflow/internal/http/imports"
	"github.com/MrJamesThe3rd/payflow/internal/http/logs"
	"github.com/MrJamesThe3rd/payflow/internal/http/odoocheck"
	"github.com/MrJamesThe3rd/payflow/internal/http/static"
	"github.com/MrJamesThe3rd/payflow/internal/runlog"
	"github.com/MrJamesThe3rd/payflow/internal/scheduler"
	"github.com/MrJamesThe3rd/payflow/internal/secret"
)

type stubClients struct{}

func (stubClients) List(context.Context) ([]*client.Client, error) {
	return []*client.Client{{ID: "acme", Name: "ACME"}}, nil
}

func (stubClients) Save(_ context.Context, id string, p client.SaveParams) (*client.Client, error) {
	return &client.Client{ID: id, Name: p.Name}, nil
}

func (stubClients) Get(context.Context, string) (*client.Client, error) {
	return nil, client.ErrNotFound
}

type stubLogs struct{}

func (stubLogs) Recent(context.Context, int) ([]*runlog.Entry, error) { return nil, nil }

type stubRunner struct{}

func (stubRunner) RunManual(context.Context, string, []string) ([]scheduler.PeriodResult, error) {
	return nil, nil
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	authH, err := auth.NewHandler(secret.NewStatic(map[string]string{"PAYFLOW_PASSWORD": "pw"}), auth.Options{
		PasswordSecret: "PAYFLOW_PASSWORD",
		TokenTTL:       time.Hour,
	})
	require.NoError(t, err)

	return payflowhttp.New(payflowhttp.Handlers{
		Auth:      authH,
		Logs:      logs.NewHandler(stubLogs{}),
		Clients:   clients.NewHandler(stubClients{}),
		OdooCheck: odoocheck.NewHandler(nil, stubClients{}, nil),
		Imports:   imports.NewHandler(stubRunner{}),
		Static:    static.NewHandler(fstest.MapFS{"index.html": {Data: []byte("spa")}}),
	})
}

func TestRouter(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		password string
		wantCode int
	}{
		{name: "LogsRequireAuth", method: http.MethodGet, path: "/api/logs", wantCode: http.StatusUnauthorized},
		{name: "LogsWithPassword", method: http.MethodGet, path: "/api/logs", password: "pw", wantCode: http.StatusOK},
		{name: "ClientsWithPassword", method: http.MethodGet, path: "/api/clients", password: "pw", wantCode: http.StatusOK},
		{name: "UnknownAPI", method: http.MethodGet, path: "/api/nope", password: "pw", wantCode: http.StatusNotFound},
		{name: "SPAFallback", method: http.MethodGet, path: "/dashboard", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.password != "" {
				req.Header.Set(auth.PasswordHeader, tt.password)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
