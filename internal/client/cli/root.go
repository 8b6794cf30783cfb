package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophauth/internal/buildinfo"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

var (
	errNotLoggedIn     = errors.New("not logged in")
	errAlreadyLoggedIn = errors.New("already logged in, run logout first")
)

// newApp is a seam for tests.
var newApp = NewApp

// NewRootCommand creates the gophauth command tree. Without a subcommand it
// runs the interactive REPL.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gophauth",
		Short: "Local account and session manager",
		Long: `gophauth keeps a small user directory and the active session in a
key-value store (SQLite, PostgreSQL, Redis, S3 or memory).

Run without arguments for the interactive shell, or use the subcommands
from scripts. The session persists between runs.`,
		Version:       buildinfo.Version(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withApp(func(ctx context.Context, a *App) error {
			return a.Run(ctx)
		}),
	}

	var version strings.Builder
	buildinfo.PrintBuildData(&version)
	cmd.SetVersionTemplate(version.String())

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newSignupCommand())
	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newWhoamiCommand())

	return cmd
}

// withApp loads the configuration from the command's flags, builds an App
// and closes it after fn returns.
func withApp(fn func(ctx context.Context, a *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		a, err := newApp(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		return fn(ctx, a)
	}
}

func newSignupCommand() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Long: `Create an account and log in.

The password is read from the terminal without echo, or from the first
line of standard input when it is not a terminal.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App) error {
			if a.isLoggedIn() {
				return errAlreadyLoggedIn
			}
			return a.signupWith(ctx, name, email)
		}),
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "full name (prompted when empty)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (prompted when empty)")
	return cmd
}

func newLoginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App) error {
			if a.isLoggedIn() {
				return errAlreadyLoggedIn
			}
			return a.loginWith(ctx, email)
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (prompted when empty)")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App) error {
			if !a.isLoggedIn() {
				return errNotLoggedIn
			}
			return a.logout(ctx, yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newWhoamiCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App) error {
			u := a.session.CurrentUser()
			if u == nil {
				return errNotLoggedIn
			}
			if asJSON {
				return json.NewEncoder(a.out).Encode(u)
			}
			_, err := fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
			return err
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the user as JSON")
	return cmd
}
