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
	Register(&EditCmd{})
}

// EditCmd implements the edit command: a partial update of title,
// description or completion.
type EditCmd struct {
	title       string
	description string
	done        bool
	undone      bool

	titleSet bool
	descSet  bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Update a task" }
func (c *EditCmd) Usage() string {
	return "taskflow edit [--title <text>] [--desc <text>] [--done | --undone] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error {
		c.title = v
		c.titleSet = true
		return nil
	})
	fs.Func("desc", "", func(v string) error {
		c.description = v
		c.descSet = true
		return nil
	})
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.undone, "undone", false, "")
}

// Patch builds the partial update from the parsed flags.
func (c *EditCmd) Patch() service.TaskPatch {
	var patch service.TaskPatch
	if c.titleSet {
		patch.Title = &c.title
	}
	if c.descSet {
		patch.Description = &c.description
	}
	if c.done {
		completed := true
		patch.Completed = &completed
	} else if c.undone {
		completed := false
		patch.Completed = &completed
	}
	return patch
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if c.done && c.undone {
		fmt.Fprintln(errOut, "error: cannot use both --done and --undone")
		return exitcode.UserError
	}

	patch := c.Patch()
	if patch.IsEmpty() {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	st, err := loadStore(ctx, svcs)
	if err != nil {
		return fail(errOut, err)
	}

	task, err := st.Update(ctx, id, patch)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "updated task %d\n", task.ID)
	}
	return exitcode.Success
}
