package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/simpcity-bot/internal/adapters/render/status"
	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/spf13/cobra"
)

type memberJSON struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Admin  bool   `json:"admin,omitempty"`
}

func newMembersCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List the members of the watched thread",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.RequireWatch(); err != nil {
				return err
			}

			if asJSON {
				api, err := app.sessions.Acquire(cmd.Context())
				if err != nil {
					return fmt.Errorf("acquire session: %w", err)
				}
				fetched := fetchRoster(cmd.Context(), api, app.cfg.Thread.ID)
				if fetched.err != nil {
					return fetched.err
				}
				return writeMembersJSON(cmd, fetched.members, domain.Handle(app.cfg.Admin.Handle))
			}

			members, err := runRosterFetch(cmd.Context(), cmd.ErrOrStderr(), app.cfg.Thread.ID, app.sessions.Acquire)
			if err != nil {
				return err
			}

			rendered, err := app.rosterRenderer(statusadapter.Roster{
				ThreadID:  app.cfg.Thread.ID,
				Members:   members,
				Admin:     domain.Handle(app.cfg.Admin.Handle),
				BatchSize: app.cfg.Mention.BatchSize,
			}, statusadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render members: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeMembersJSON(cmd *cobra.Command, members []domain.Member, admin domain.Handle) error {
	out := make([]memberJSON, 0, len(members))
	for _, member := range members {
		out = append(out, memberJSON{
			ID:     string(member.ID),
			Handle: string(member.Handle),
			Admin:  admin != "" && member.Handle == admin,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
