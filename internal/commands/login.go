package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// LoginCmd implements the login command: exchange credentials for a session
// and persist it.
type LoginCmd struct {
	email    string
	password string
}

// SetCredentials sets the credentials (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the session" }
func (c *LoginCmd) Usage() string {
	return "taskflow login --email <email> --password <password>"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: --email and --password required")
		return exitcode.UserError
	}

	session, err := svcs.Auth.Login(ctx, c.email, c.password)
	if err != nil {
		return fail(errOut, err)
	}

	if err := cfg.SaveSession(&config.Session{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		UserID:      session.User.ID,
		Email:       session.User.Email,
	}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", session.User.Email)
	}
	return exitcode.Success
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	email    string
	password string
	name     string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskflow register --email <email> --password <password> [--name <name>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.name, "name", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: --email and --password required")
		return exitcode.UserError
	}

	if err := svcs.Auth.Register(ctx, c.email, c.password, c.name); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "account created (run: taskflow login)")
	}
	return exitcode.Success
}
