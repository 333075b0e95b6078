package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "simpcity",
		Short:         "SimpCity group chat bot: welcomes new members and runs mention-all",
		Long:          "simpcity watches one Instagram group thread, greets members as they join, and lets the configured admin mention everyone in small batches. It also ships the redeploy webhook listener used by the bot host.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		// Any invocation other than version must surface the setup error,
		// including subcommand names and flags root does not know about.
		rootCmd.Args = cobra.ArbitraryArgs
		rootCmd.DisableFlagParsing = true
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		rootCmd.AddCommand(newVersionCmd())
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.logger.Close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newWatchCmd(app),
		newMembersCmd(app),
		newSessionCmd(app),
		newWebhookCmd(app),
	)

	return rootCmd
}
