package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/payflow/internal/app"
	"github.com/MrJamesThe3rd/payflow/internal/client"
	"github.com/MrJamesThe3rd/payflow/internal/config"
	"github.com/MrJamesThe3rd/payflow/internal/logging"
	"github.com/MrJamesThe3rd/payflow/internal/payroll"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "robot",
		Short: "Transfers monthly payroll journal entries into Odoo",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRunCommand(),
		newImportCommand(),
		newReplayCommand(),
		newClientsCommand(),
	)

	return rootCmd
}

// withApp loads configuration, installs the logger and runs fn against the
// wired services.
func withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}

func newRunCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the clients scheduled for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now().UTC()

			if date != "" {
				d, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}

				now = d
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				summary, err := a.Robot.RunDaily(cmd.Context(), now)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "period %s: %d processed, %d failed\n",
					summary.Period, summary.Processed, summary.Failed)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "run as if today were this date (YYYY-MM-DD)")

	return cmd
}

func newImportCommand() *cobra.Command {
	var (
		clientID string
		periods  []string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import one client's periods on demand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				results, err := a.Robot.RunManual(cmd.Context(), clientID, periods)
				if err != nil {
					return err
				}

				failed := 0

				for _, res := range results {
					status := "ok"
					if !res.Success {
						status = "error"
						failed++
					}

					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", res.Period, status, res.Message)
				}

				if failed > 0 {
					return fmt.Errorf("%d of %d periods failed", failed, len(results))
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "client id (required)")
	cmd.Flags().StringSliceVar(&periods, "period", nil, "period as YYYY-MM, repeatable (required)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func newReplayCommand() *cobra.Command {
	var (
		clientID string
		period   string
		file     string
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Post a saved payroll export for one client and period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening export: %w", err)
			}
			defer f.Close()

			export, err := payroll.Decode(f)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				out, err := a.Robot.Replay(cmd.Context(), clientID, period, export)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Status, out.Message)

				if out.Status.IsError() {
					return fmt.Errorf("replay failed with %s", out.Status)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "client id (required)")
	cmd.Flags().StringVar(&period, "period", "", "period as YYYY-MM (required)")
	cmd.Flags().StringVar(&file, "file", "", "path to the saved export JSON (required)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage client configurations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "load FILE",
		Short: "Create or update clients from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening seed file: %w", err)
			}
			defer f.Close()

			seeds, err := client.LoadSeed(f)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				n, err := a.Clients.Import(cmd.Context(), seeds)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%d clients saved\n", n)

				return nil
			})
		},
	})

	return cmd
}
