package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/simpcity-bot/internal/adapters/webhook"
	"github.com/spf13/cobra"
)

func newWebhookCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "webhook",
		Short: "Serve the redeploy webhook (POST /webhook)",
		Long:  "Serve POST /webhook, which pulls the latest code and restarts the bot process with the configured command. The endpoint is unauthenticated; bind it to a trusted interface.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return webhook.NewHandler(app.webhookConfig(), app.logger.Logger).Serve(ctx)
		},
	}
}
