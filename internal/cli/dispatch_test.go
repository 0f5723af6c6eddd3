package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/testutil"
)

func init() {
	color.NoColor = true
}

// run dispatches args through the default registry with an optional factory.
func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// loggedIn writes a session file into a temp config dir and returns a factory
// serving the given bundle. Commands must be invoked with --config dir.
func loggedIn(t *testing.T, bundle *service.Bundle) (dir string, factory cli.ServiceFactory) {
	t.Helper()

	dir = t.TempDir()
	cfg := &config.Config{Dir: dir}
	require.NoError(t, cfg.SaveSession(&config.Session{AccessToken: "tok", Email: "a@b.c"}))

	factory = func(ctx context.Context, cfg *config.Config, token string) (*service.Bundle, error) {
		assert.Equal(t, "tok", token)
		return bundle, nil
	}
	return dir, factory
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, code := run(t, nil, "bogus")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: bogus\n", stderr)
}

func TestFlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, nil, "--quiet", "list")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: --quiet\n", stderr)
}

func TestUnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "version", "--bogus")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown flag: -bogus\n", stderr)
}

func TestVersion(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "taskflow 0.1.0\n", stdout)
}

func TestHelp(t *testing.T) {
	stdout, _, code := run(t, nil, "help")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "taskflow chat")
}

func TestNotLoggedIn(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, token string) (*service.Bundle, error) {
		t.Fatal("factory must not be called without a session for an authenticated command")
		return nil, nil
	}

	_, stderr, code := run(t, factory, "list", "--config", t.TempDir())

	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: not logged in (run: taskflow login)\n", stderr)
}

func TestNoArgsDispatchesToList(t *testing.T) {
	tasks := testutil.NewFakeTaskService()
	tasks.Seed("Buy milk", "", false)
	dir, factory := loggedIn(t, &service.Bundle{Tasks: tasks})

	// No-args dispatch cannot pass --config, so point the default config dir
	// at the session via XDG.
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg := &config.Config{Dir: config.DefaultConfigDir()}
	require.NoError(t, cfg.SaveSession(&config.Session{AccessToken: "tok"}))

	stdout, stderr, code := run(t, factory)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "   1  [ ] Buy milk\n", stdout)
}

func TestListAlias(t *testing.T) {
	tasks := testutil.NewFakeTaskService()
	tasks.Seed("Buy milk", "", false)
	dir, factory := loggedIn(t, &service.Bundle{Tasks: tasks})

	stdout, _, code := run(t, factory, "ls", "--config", dir)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "   1  [ ] Buy milk\n", stdout)
}

func TestQuietFlag(t *testing.T) {
	tasks := testutil.NewFakeTaskService()
	dir, factory := loggedIn(t, &service.Bundle{Tasks: tasks})

	stdout, _, code := run(t, factory, "list", "--config", dir, "--quiet")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestLoginRunsWithoutSession(t *testing.T) {
	auth := testutil.NewFakeAuthService("a@b.c", "pw")
	factory := func(ctx context.Context, cfg *config.Config, token string) (*service.Bundle, error) {
		assert.Empty(t, token)
		return &service.Bundle{Auth: auth}, nil
	}

	dir := t.TempDir()
	stdout, stderr, code := run(t, factory,
		"login", "--config", dir, "--email", "a@b.c", "--password", "pw")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "logged in as a@b.c\n", stdout)

	cfg := &config.Config{Dir: dir}
	assert.True(t, cfg.HasSession())
}
