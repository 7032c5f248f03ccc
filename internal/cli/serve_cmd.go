package cli

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/devserver"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API from the local database",
		Long:  "Serves the remote backend's REST contract from the local SQLite stores, for trying the remote backend without the hosted service.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return errors.New("serve needs the local database; run it with --backend local")
			}
			cfg := app.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := devserver.New(*app.Serve, devserver.Options{
				JWTSecret: cfg.Server.JWTSecret,
				Logger:    app.logger(),
				Now:       app.now,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return srv.Serve(ctx, addr, func(a net.Addr) {
				auth := "off"
				if cfg.Server.JWTSecret != "" {
					auth = "bearer token required"
				}
				fmt.Fprintf(out, "%s http://%s/api/v1  %s\n",
					formatter.Header("Serving"), a.String(), formatter.Dim("auth: "+auth))
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}

func newTokenCmd(app *App) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the dev server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := app.config().Server.JWTSecret
			if secret == "" {
				return errors.New("server.jwt_secret is not set")
			}
			token, err := devserver.IssueToken(secret, subject, ttl, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "local", "token subject (user id)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
