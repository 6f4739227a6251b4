package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/payflow/internal/client"
	clientStore "github.com/MrJamesThe3rd/payflow/internal/client/store"
	"github.com/MrJamesThe3rd/payflow/internal/config"
	"github.com/MrJamesThe3rd/payflow/internal/crypto"
	"github.com/MrJamesThe3rd/payflow/internal/database"
	"github.com/MrJamesThe3rd/payflow/internal/notify"
	"github.com/MrJamesThe3rd/payflow/internal/payroll/silae"
	"github.com/MrJamesThe3rd/payflow/internal/pipeline"
	"github.com/MrJamesThe3rd/payflow/internal/runlog"
	runlogStore "github.com/MrJamesThe3rd/payflow/internal/runlog/store"
	"github.com/MrJamesThe3rd/payflow/internal/scheduler"
	"github.com/MrJamesThe3rd/payflow/internal/secret"
)

// App holds the services shared by the API server and the robot.
type App struct {
	DB      *sql.DB
	Secrets *secret.Env
	Cipher  *crypto.Cipher
	Clients *client.Service
	RunLog  *runlog.Service
	Robot   *scheduler.Robot
}

// New connects to the database, applies the schema and wires the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	secrets := secret.NewEnv(cfg.Secrets.Prefix)

	key, err := secrets.Get(ctx, cfg.Secrets.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("loading encryption key: %w", err)
	}

	cipher, err := crypto.New(key)
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	var (
		clientService = client.NewService(clientStore.New(db), cipher)
		runlogService = runlog.NewService(runlogStore.New(db))
		notifier      = notify.New(secrets, notify.SMTP{
			Host:    cfg.SMTP.Host,
			Port:    cfg.SMTP.Port,
			Timeout: cfg.SMTP.Timeout,
		}, notify.Options{
			SenderSecret:   cfg.SMTP.SenderSecret,
			PasswordSecret: cfg.SMTP.PasswordSecret,
		})
	)

	silaeOpts := silae.Options{
		AuthURL: cfg.Silae.AuthURL,
		APIURL:  cfg.Silae.APIURL,
		Scope:   cfg.Silae.Scope,
		Timeout: cfg.Silae.Timeout,
	}

	robot := scheduler.New(scheduler.Deps{
		Clients:   clientService,
		Decrypter: cipher,
		Provider: func(ctx context.Context) (scheduler.Provider, error) {
			creds, err := silae.CredentialsFromSecrets(ctx, secrets)
			if err != nil {
				return nil, err
			}

			return silae.NewClient(creds, silaeOpts), nil
		},
		Runner:   pipeline.New(pipeline.NewOdooDialer(cfg.Odoo.Scheme, cfg.Odoo.Timeout)),
		Recorder: runlogService,
		Alerter:  notifier,
	})

	return &App{
		DB:      db,
		Secrets: secrets,
		Cipher:  cipher,
		Clients: clientService,
		RunLog:  runlogService,
		Robot:   robot,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
