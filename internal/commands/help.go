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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskflow help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow                                        List all tasks
  taskflow list [--status <s>] [--search <text>] [--limit <n>] [--offset <n>] [--long]
  taskflow add [--desc <text>] [--done] <title...>
  taskflow show <id>
  taskflow edit [--title <text>] [--desc <text>] [--done | --undone] <id>
  taskflow done <id>
  taskflow rm <id>
  taskflow chat [--conversation <id>] <message...>
  taskflow history <conversation-id>
  taskflow login --email <email> --password <password>
  taskflow register --email <email> --password <password> [--name <name>]
  taskflow logout
  taskflow whoami
  taskflow help
  taskflow version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
