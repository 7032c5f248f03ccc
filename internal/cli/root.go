package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "studyfocus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "studyfocus",
		Short:         "Focus timer, session log and flashcard review",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Configure == nil {
				return nil
			}
			return app.Configure(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.studyfocus/config.yaml)")
	flags.String("backend", "", "store backend: local or remote")
	flags.String("db", "", "SQLite database path for the local backend")
	flags.String("api-url", "", "REST base URL for the remote backend")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newFocusCmd(app),
		newReviewCmd(app),
		newSessionCmd(app),
		newSubjectCmd(app),
		newCardCmd(app),
		newServeCmd(app),
		newTokenCmd(app),
	)

	return root
}

// ConfigFile returns the --config value of the root command.
func ConfigFile(cmd *cobra.Command) string {
	f := cmd.Root().PersistentFlags().Lookup("config")
	if f == nil {
		return ""
	}
	return f.Value.String()
}
