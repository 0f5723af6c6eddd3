// Package service defines the backend-agnostic interfaces for remote operations.
package service

import "time"

// Task represents a single task item.
type Task struct {
	ID          int
	Title       string
	Description string
	Completed   bool
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Presentation-only flags. Never sent to the server.
	IsEditing bool
	IsSaving  bool
}

// Status filter values accepted by the task list endpoint.
const (
	StatusAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// TaskFilter narrows a task list request. Zero values mean "unset".
// Recognized fields are fixed; there is no free-form parameter bag.
type TaskFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// TaskPatch carries a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is one turn in a chat conversation.
type ConversationMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

// Conversation binds a message log to a server-issued conversation id.
type Conversation struct {
	ID       string
	Messages []ConversationMessage
}

// ChatReply is the server's answer to a sent chat message.
type ChatReply struct {
	ConversationID string
	Response       string
	Timestamp      time.Time
}

// User describes the authenticated account.
type User struct {
	ID    string
	Email string
	Name  string
}

// Session is an authenticated session returned by login.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
	User        User
}
