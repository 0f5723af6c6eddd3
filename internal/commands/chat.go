package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/chat"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
)

func init() {
	Register(&ChatCmd{})
	Register(&HistoryCmd{})
}

// ChatCmd implements the chat command: one message to the AI assistant,
// optionally continuing an existing conversation.
type ChatCmd struct {
	conversationID string
}

// SetConversationID sets the conversation id (for testing).
func (c *ChatCmd) SetConversationID(id string) {
	c.conversationID = id
}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return nil }
func (c *ChatCmd) Synopsis() string  { return "Send a message to the assistant" }
func (c *ChatCmd) Usage() string {
	return "taskflow chat [--conversation <id>] <message...>"
}
func (c *ChatCmd) NeedsAuth() bool { return true }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.conversationID, "conversation", "", "")
	fs.StringVar(&c.conversationID, "c", "", "")
}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: message required")
		return exitcode.UserError
	}
	message := strings.Join(args, " ")

	session := chat.NewSession(svcs.Chat, svcs.Log)

	// Resuming an existing conversation starts from its history.
	if c.conversationID != "" {
		if err := session.Hydrate(ctx, c.conversationID); err != nil {
			return fail(errOut, err)
		}
	}

	reply, err := session.Send(ctx, message)
	if err != nil {
		return fail(errOut, err)
	}

	output.FormatMessage(out, reply)
	if !cfg.Quiet && c.conversationID == "" {
		fmt.Fprintf(out, "conversation: %s\n", session.ConversationID())
	}
	return exitcode.Success
}

// HistoryCmd implements the history command: print an existing conversation.
type HistoryCmd struct{}

func (c *HistoryCmd) Name() string      { return "history" }
func (c *HistoryCmd) Aliases() []string { return nil }
func (c *HistoryCmd) Synopsis() string  { return "Show a conversation transcript" }
func (c *HistoryCmd) Usage() string     { return "taskflow history <conversation-id>" }
func (c *HistoryCmd) NeedsAuth() bool   { return true }

func (c *HistoryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HistoryCmd) Run(ctx context.Context, cfg *config.Config, svcs *service.Bundle, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: conversation id required")
		return exitcode.UserError
	}

	session := chat.NewSession(svcs.Chat, svcs.Log)
	if err := session.Hydrate(ctx, args[0]); err != nil {
		return fail(errOut, err)
	}

	messages := session.Messages()
	if len(messages) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no messages")
		}
		return exitcode.Success
	}

	output.FormatTranscript(out, messages)
	return exitcode.Success
}
