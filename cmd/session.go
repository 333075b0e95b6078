package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	statusadapter "github.com/bnema/simpcity-bot/internal/adapters/render/status"
	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/spf13/cobra"
)

type sessionStatusJSON struct {
	Path     string     `json:"path"`
	Present  bool       `json:"present"`
	Valid    bool       `json:"valid"`
	Username string     `json:"username,omitempty"`
	UserID   string     `json:"user_id,omitempty"`
	SavedAt  *time.Time `json:"saved_at,omitempty"`
	Problem  string     `json:"problem,omitempty"`
}

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and manage the saved login session",
	}

	cmd.AddCommand(
		newSessionStatusCmd(app),
		newSessionLoginCmd(app),
		newSessionClearCmd(app),
	)

	return cmd
}

func newSessionStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := statusadapter.SessionReport{Path: app.sessionPath}

			session, err := app.sessions.Status(cmd.Context())
			switch {
			case err == nil:
				report.Present = true
				report.Session = session
			case errors.Is(err, domain.ErrSessionNotFound):
			case errors.Is(err, domain.ErrSessionInvalid):
				report.Present = true
				report.Problem = err.Error()
			default:
				return fmt.Errorf("load session: %w", err)
			}

			if asJSON {
				return writeSessionJSON(cmd, report)
			}

			rendered, err := app.sessionRenderer(report, statusadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render session: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newSessionLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with the configured password and save a fresh session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.RequireLogin(); err != nil {
				return err
			}

			session, err := app.sessions.Login(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as @%s; session saved to %s\n", session.Username, app.sessionPath)
			return err
		},
	}
}

func newSessionClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Clear(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Session cleared: %s\n", app.sessionPath)
			return err
		},
	}
}

func writeSessionJSON(cmd *cobra.Command, report statusadapter.SessionReport) error {
	out := sessionStatusJSON{
		Path:    report.Path,
		Present: report.Present,
		Problem: report.Problem,
	}
	if report.Present && report.Problem == "" {
		out.Valid = report.Session.Valid()
		out.Username = report.Session.Username
		out.UserID = string(report.Session.UserID)
		if !report.Session.SavedAt.IsZero() {
			savedAt := report.Session.SavedAt
			out.SavedAt = &savedAt
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
