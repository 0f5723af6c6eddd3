package output_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"taskflow/internal/output"
	"taskflow/internal/service"
)

func init() {
	color.NoColor = true
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{
			name: "pending",
			task: service.Task{ID: 1, Title: "Buy milk"},
			want: "   1  [ ] Buy milk\n",
		},
		{
			name: "completed",
			task: service.Task{ID: 42, Title: "Ship release", Completed: true},
			want: "  42  [x] Ship release\n",
		},
		{
			name: "saving marker",
			task: service.Task{ID: 3, Title: "Buy milk", IsSaving: true},
			want: "   3  [ ] Buy milk (saving)\n",
		},
		{
			name: "empty title",
			task: service.Task{ID: 4, Title: "   "},
			want: "   4  [ ] (untitled)\n",
		},
		{
			name: "newlines flattened",
			task: service.Task{ID: 5, Title: "line1\nline2"},
			want: "   5  [ ] line1 line2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.FormatTask(&buf, tt.task)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatTaskLong(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskLong(&buf, service.Task{
		ID:          1,
		Title:       "Buy milk",
		Description: "2% from the corner shop",
		UpdatedAt:   time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	})

	want := "   1  [ ] Buy milk\n" +
		"      2% from the corner shop\n" +
		"      updated 2025-06-01 12:30\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatTranscript(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTranscript(&buf, []service.ConversationMessage{
		{Role: service.RoleUser, Content: "Show my tasks"},
		{Role: service.RoleAssistant, Content: "You have 3 tasks.\n"},
	})

	assert.Equal(t, "you> Show my tasks\nassistant> You have 3 tasks.\n", buf.String())
}
