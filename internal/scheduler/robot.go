package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/payflow/internal/client"
	"github.com/MrJamesThe3rd/payflow/internal/crypto"
	"github.com/MrJamesThe3rd/payflow/internal/notify"
	"github.com/MrJamesThe3rd/payflow/internal/payroll"
	"github.com/MrJamesThe3rd/payflow/internal/pipeline"
	"github.com/MrJamesThe3rd/payflow/internal/runlog"
)

type Clients interface {
	DueOn(ctx context.Context, day int) ([]*client.Client, error)
	Get(ctx context.Context, id string) (*client.Client, error)
}

type Decrypter interface {
	Decrypt(ciphertext string) crypto.Result
}

type Provider interface {
	Token(ctx context.Context) (string, error)
	Entries(ctx context.Context, token, dossier string, start, end time.Time) (*payroll.Export, error)
}

// ProviderFunc builds a provider client once per batch, loading its
// credentials.
type ProviderFunc func(ctx context.Context) (Provider, error)

type Runner interface {
	Run(ctx context.Context, cfg pipeline.Config, export *payroll.Export, period string, postingDate time.Time) pipeline.Outcome
}

type Recorder interface {
	Record(ctx context.Context, clientID, clientName, period, status, message string) (*runlog.Entry, error)
}

type Alerter interface {
	Send(ctx context.Context, a notify.Alert) error
}

type Deps struct {
	Clients   Clients
	Decrypter Decrypter
	Provider  ProviderFunc
	Runner    Runner
	Recorder  Recorder
	Alerter   Alerter
}

// Robot drives the pipeline over client configurations, either on the daily
// schedule or on demand.
type Robot struct {
	Deps
	now func() time.Time
}

func New(deps Deps) *Robot {
	return &Robot{Deps: deps, now: time.Now}
}

// Summary reports a daily batch.
type Summary struct {
	Period    string
	Processed int
	Failed    int
}

// RunDaily processes the clients whose transfer day is now's day, for the
// previous month. Batch-level failures abort before any client is touched.
func (r *Robot) RunDaily(ctx context.Context, now time.Time) (Summary, error) {
	period := PreviousPeriod(now)
	summary := Summary{Period: period}

	start, end, err := PeriodRange(period)
	if err != nil {
		return summary, err
	}

	slog.Info("starting daily run", "day", now.Day(), "period", period)

	provider, err := r.Provider(ctx)
	if err != nil {
		return summary, fmt.Errorf("initialising payroll provider: %w", err)
	}

	clients, err := r.Clients.DueOn(ctx, now.Day())
	if err != nil {
		return summary, fmt.Errorf("listing due clients: %w", err)
	}

	if len(clients) == 0 {
		slog.Info("no client due today", "day", now.Day())
		return summary, nil
	}

	token, err := provider.Token(ctx)
	if err != nil {
		return summary, fmt.Errorf("getting payroll provider token: %w", err)
	}

	for _, c := range clients {
		summary.Processed++

		if !r.runClient(ctx, provider, token, c, period, start, end) {
			summary.Failed++
		}
	}

	slog.Info("daily run finished", "period", period, "processed", summary.Processed, "failed", summary.Failed)

	return summary, nil
}

// PeriodResult is the outcome of one period of a manual import.
type PeriodResult struct {
	Period  string
	Success bool
	Message string
}

// RunManual imports the given periods for one client. Each period is logged
// with the MANUAL_ prefix. Per-period failures are reported in the results.
func (r *Robot) RunManual(ctx context.Context, clientID string, periods []string) ([]PeriodResult, error) {
	provider, err := r.Provider(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialising payroll provider: %w", err)
	}

	token, err := provider.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting payroll provider token: %w", err)
	}

	c, err := r.Clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	results := make([]PeriodResult, 0, len(periods))

	for _, period := range periods {
		out := r.runPeriod(ctx, provider, token, c, period)

		results = append(results, PeriodResult{
			Period:  period,
			Success: !out.Status.IsError(),
			Message: out.Message,
		})
	}

	return results, nil
}

// Replay posts a previously saved provider export for one client and period.
func (r *Robot) Replay(ctx context.Context, clientID, period string, export *payroll.Export) (pipeline.Outcome, error) {
	_, end, err := PeriodRange(period)
	if err != nil {
		return pipeline.Outcome{}, err
	}

	c, err := r.Clients.Get(ctx, clientID)
	if err != nil {
		return pipeline.Outcome{}, err
	}

	cfg, err := r.configFor(c)
	if err != nil {
		return pipeline.Outcome{}, err
	}

	out := r.Runner.Run(ctx, cfg, export, period, end)
	r.record(ctx, c, period, out.Status.Manual(), out.Message)

	return out, nil
}

// runClient processes, records and alerts for one client of the daily batch.
// A panic at any of these steps stays with the client and counts as a failure.
func (r *Robot) runClient(
	ctx context.Context,
	provider Provider,
	token string,
	c *client.Client,
	period string,
	start, end time.Time,
) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("client handling panicked", "client", c.ID, "period", period, "panic", rec)
			ok = false
		}
	}()

	out := r.process(ctx, provider, token, c, period, start, end)

	slog.Info("client processed", "client", c.ID, "period", period, "status", out.Status, "message", out.Message)

	r.record(ctx, c, period, string(out.Status), out.Message)

	if out.Status.IsError() {
		r.alert(ctx, c, period, out)
		return false
	}

	return true
}

// runPeriod processes and records one period of a manual import. A panic while
// recording is logged and leaves the outcome as it was.
func (r *Robot) runPeriod(ctx context.Context, provider Provider, token string, c *client.Client, period string) (out pipeline.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("recording manual run panicked", "client", c.ID, "period", period, "panic", rec)
		}
	}()

	start, end, err := PeriodRange(period)
	if err != nil {
		out = crash(err)
	} else {
		out = r.process(ctx, provider, token, c, period, start, end)
	}

	r.record(ctx, c, period, out.Status.Manual(), out.Message)

	return out
}

// process runs one client for one period. Failures outside the pipeline,
// panics included, become ERROR_CRASH.
func (r *Robot) process(
	ctx context.Context,
	provider Provider,
	token string,
	c *client.Client,
	period string,
	start, end time.Time,
) (out pipeline.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("client run panicked", "client", c.ID, "period", period, "panic", rec)
			out = crash(fmt.Errorf("panic: %v", rec))
		}
	}()

	cfg, err := r.configFor(c)
	if err != nil {
		return crash(err)
	}

	export, err := provider.Entries(ctx, token, c.Dossier, start, end)
	if err != nil {
		return crash(fmt.Errorf("fetching payroll entries: %w", err))
	}

	return r.Runner.Run(ctx, cfg, export, period, end)
}

func (r *Robot) configFor(c *client.Client) (pipeline.Config, error) {
	cfg := pipeline.Config{
		Host:        c.OdooHost,
		Database:    c.OdooDatabase,
		Login:       c.OdooLogin,
		JournalCode: c.JournalCode,
		CompanyID:   c.CompanyID,
		Version:     c.OdooVersion,
	}

	// No stored password is a configuration problem the pipeline reports.
	if c.OdooPassword == "" {
		return cfg, nil
	}

	res := r.Decrypter.Decrypt(c.OdooPassword)
	if !res.OK() {
		return pipeline.Config{}, fmt.Errorf("decrypting odoo password: %w", res.Err)
	}

	cfg.Password = res.Plaintext

	return cfg, nil
}

func (r *Robot) record(ctx context.Context, c *client.Client, period, status, message string) {
	if _, err := r.Recorder.Record(ctx, c.ID, c.Name, period, status, message); err != nil {
		slog.Error("failed to record run", "client", c.ID, "period", period, "error", err)
	}
}

func (r *Robot) alert(ctx context.Context, c *client.Client, period string, out pipeline.Outcome) {
	message := out.Message
	if out.Status == pipeline.StatusErrorCrash {
		message = "Erreur système inattendue: " + message
	}

	err := r.Alerter.Send(ctx, notify.Alert{
		Recipient:  c.AlertRecipient(),
		ClientName: c.Name,
		Period:     period,
		Status:     string(out.Status),
		Message:    message,
		At:         r.now(),
	})
	if err != nil {
		slog.Error("failed to send alert", "client", c.ID, "period", period, "error", err)
	}
}

func crash(err error) pipeline.Outcome {
	return pipeline.Outcome{Status: pipeline.StatusErrorCrash, Message: strings.TrimSpace(err.Error())}
}
