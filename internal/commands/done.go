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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles completion, so running it
// on a completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskflow done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	st, err := loadStore(ctx, svcs)
	if err != nil {
		return fail(errOut, err)
	}

	task, err := st.ToggleCompletion(ctx, id)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		state := "pending"
		if task.Completed {
			state = "completed"
		}
		fmt.Fprintf(out, "task %d %s\n", task.ID, state)
	}
	return exitcode.Success
}
