package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
	"taskflow/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskflow` (no args) and `taskflow list`.
type ListCmd struct {
	status string
	search string
	limit  int
	offset int
	long   bool
}

// SetFilter sets the filter fields (for testing).
func (c *ListCmd) SetFilter(status, search string, limit, offset int) {
	c.status = status
	c.search = search
	c.limit = limit
	c.offset = offset
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--status <all|pending|completed>] [--search <text>] [--limit <n>] [--offset <n>] [--long]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.IntVar(&c.limit, "limit", 0, "")
	fs.IntVar(&c.offset, "offset", 0, "")
	fs.BoolVar(&c.long, "long", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var filter *service.TaskFilter
	if c.status != "" || c.search != "" || c.limit > 0 || c.offset > 0 {
		filter = &service.TaskFilter{
			Status: c.status,
			Search: c.search,
			Limit:  c.limit,
			Offset: c.offset,
		}
	}

	st := store.New(svcs.Tasks, svcs.Log)
	if err := st.Fetch(ctx, filter); err != nil {
		return fail(errOut, err)
	}

	tasks := st.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, task := range tasks {
		if c.long {
			output.FormatTaskLong(out, task)
		} else {
			output.FormatTask(out, task)
		}
	}
	return exitcode.Success
}
