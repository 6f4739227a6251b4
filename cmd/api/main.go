package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/payflow/internal/app"
	"github.com/MrJamesThe3rd/payflow/internal/config"
	payflowHttp "github.com/MrJamesThe3rd/payflow/internal/http"
	"github.com/MrJamesThe3rd/payflow/internal/http/auth"
	clientsHandler "github.com/MrJamesThe3rd/payflow/internal/http/clients"
	importsHandler "github.com/MrJamesThe3rd/payflow/internal/http/imports"
	logsHandler "github.com/MrJamesThe3rd/payflow/internal/http/logs"
	"github.com/MrJamesThe3rd/payflow/internal/http/odoocheck"
	"github.com/MrJamesThe3rd/payflow/internal/http/static"
	"github.com/MrJamesThe3rd/payflow/internal/logging"
	"github.com/MrJamesThe3rd/payflow/internal/odoo"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	authH, err := auth.NewHandler(a.Secrets, auth.Options{
		PasswordSecret: cfg.Auth.PasswordSecret,
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenTTL:       cfg.Auth.TokenTTL,
	})
	if err != nil {
		slog.Error("failed to initialise auth", "error", err)
		os.Exit(1)
	}

	router := payflowHttp.New(payflowHttp.Handlers{
		Auth:    authH,
		Logs:    logsHandler.NewHandler(a.RunLog),
		Clients: clientsHandler.NewHandler(a.Clients),
		OdooCheck: odoocheck.NewHandler(
			odoo.Inspector{Scheme: cfg.Odoo.Scheme, Timeout: cfg.Odoo.Timeout},
			a.Clients,
			a.Cipher,
		),
		Imports: importsHandler.NewHandler(a.Robot),
		Static:  static.NewHandler(os.DirFS(cfg.App.StaticDir)),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
