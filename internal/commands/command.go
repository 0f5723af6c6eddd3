// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/apperr"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a logged-in session.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, API base URL, flags).
	// svcs is nil only for commands that return false from NeedsAuth and were
	// invoked without a backend (help, version).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int
}

// fail prints err and maps it to an exit code by kind. Auth failures get the
// sign-in hint: a CLI cannot redirect, so it tells the user where to go.
func fail(errOut io.Writer, err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindNotFound:
		fmt.Fprintf(errOut, "error: %s\n", apperr.UserMessage(err))
		return exitcode.UserError
	case apperr.KindAuth:
		fmt.Fprintf(errOut, "error: %s (run: taskflow login)\n", apperr.UserMessage(err))
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %s\n", apperr.UserMessage(err))
		return exitcode.BackendError
	}
}
