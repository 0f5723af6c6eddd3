// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"taskflow/internal/service"
)

var (
	doneMark    = color.New(color.FgGreen)
	pendingMark = color.New(color.FgYellow)
	userRole    = color.New(color.FgCyan, color.Bold)
	botRole     = color.New(color.FgMagenta, color.Bold)
)

// FormatTask formats one task line.
// Format: "{ID:>4}  [x] {TITLE}\n" with a saving marker while a mutation is
// in flight.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  ", task.ID)
	if task.Completed {
		doneMark.Fprint(w, "[x]")
	} else {
		pendingMark.Fprint(w, "[ ]")
	}
	fmt.Fprintf(w, " %s", normalizeText(task.Title))
	if task.IsSaving {
		fmt.Fprint(w, " (saving)")
	}
	fmt.Fprintln(w)
}

// FormatTaskLong formats a task with its description and timestamps.
func FormatTaskLong(w io.Writer, task service.Task) {
	FormatTask(w, task)
	if strings.TrimSpace(task.Description) != "" {
		fmt.Fprintf(w, "      %s\n", normalizeText(task.Description))
	}
	if !task.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "      updated %s\n", task.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// FormatMessage formats one chat turn.
func FormatMessage(w io.Writer, msg service.ConversationMessage) {
	role := botRole
	label := "assistant"
	if msg.Role == service.RoleUser {
		role = userRole
		label = "you"
	}
	role.Fprintf(w, "%s>", label)
	fmt.Fprintf(w, " %s\n", strings.TrimRight(msg.Content, "\n"))
}

// FormatTranscript formats a whole conversation in display order.
func FormatTranscript(w io.Writer, messages []service.ConversationMessage) {
	for _, msg := range messages {
		FormatMessage(w, msg)
	}
}

// normalizeText normalizes text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
