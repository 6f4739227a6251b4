package silae

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/payflow/internal/payroll"
)

const entriesPath = "/payroll/v1/EcrituresComptables/EcrituresComptables4"

// Credentials are the partner credentials shared by every client dossier.
type Credentials struct {
	ClientID        string
	ClientSecret    string
	SubscriptionKey string
}

type SecretGetter interface {
	Get(ctx context.Context, name string) (string, error)
}

// CredentialsFromSecrets loads SILAE_CLIENT_ID, SILAE_CLIENT_SECRET and
// SILAE_SUBSCRIPTION_KEY.
func CredentialsFromSecrets(ctx context.Context, secrets SecretGetter) (Credentials, error) {
	var creds Credentials

	fields := []struct {
		name string
		dst  *string
	}{
		{"SILAE_CLIENT_ID", &creds.ClientID},
		{"SILAE_CLIENT_SECRET", &creds.ClientSecret},
		{"SILAE_SUBSCRIPTION_KEY", &creds.SubscriptionKey},
	}

	for _, f := range fields {
		v, err := secrets.Get(ctx, f.name)
		if err != nil {
			return Credentials{}, fmt.Errorf("loading silae credentials: %w", err)
		}

		*f.dst = v
	}

	return creds, nil
}

type Options struct {
	AuthURL string
	APIURL  string
	Scope   string
	Timeout time.Duration
}

// Client calls the payroll provider's accounting export API.
type Client struct {
	client *http.Client
	creds  Credentials
	opts   Options
}

func NewClient(creds Credentials, opts Options) *Client {
	return &Client{
		client: &http.Client{Timeout: opts.Timeout},
		creds:  creds,
		opts:   opts,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Token obtains a bearer token with the client-credentials grant.
func (c *Client) Token(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.creds.ClientID},
		"client_secret": {c.creds.ClientSecret},
		"scope":         {c.opts.Scope},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.do(req, &tok); err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}

	if tok.AccessToken == "" {
		return "", fmt.Errorf("requesting token: empty access token")
	}

	return tok.AccessToken, nil
}

type entriesRequest struct {
	Dossier              string `json:"numeroDossier"`
	Start                string `json:"periodeDebut"`
	End                  string `json:"periodeFin"`
	AllAnalyticBreakdown bool   `json:"avecToutesLesRepartitionsAnalytiques"`
}

// Entries fetches the accounting entries of dossier between start and end,
// both inclusive.
func (c *Client) Entries(ctx context.Context, token, dossier string, start, end time.Time) (*payroll.Export, error) {
	body, err := json.Marshal(entriesRequest{
		Dossier: dossier,
		Start:   start.Format(time.DateOnly),
		End:     end.Format(time.DateOnly),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding entries request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.opts.APIURL, "/") + entriesPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating entries request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.creds.SubscriptionKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("dossiers", dossier)

	var export payroll.Export
	if err := c.do(req, &export); err != nil {
		return nil, fmt.Errorf("fetching entries for dossier %s: %w", dossier, err)
	}

	return &export, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
