package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/simpcity-bot/internal/application"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the group thread: welcome joiners and answer mention-all",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.RequireWatch(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api, err := app.sessions.Acquire(ctx)
			if err != nil {
				return fmt.Errorf("acquire session: %w", err)
			}

			watcher := application.NewWatcher(api, app.watchConfig(), app.logger.Logger)
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			app.logger.Info().Str("module", "cmd.watch").Msg("stopped")
			return nil
		},
	}
}
