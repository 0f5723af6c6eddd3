// Package service defines the backend-agnostic interfaces for remote operations.
package service

import (
	"context"

	"go.uber.org/zap"
)

// TaskService defines the remote task operations.
// All TaskFlow API calls go through this interface.
// Stores and commands never import the HTTP backend directly.
type TaskService interface {
	// List returns the user's tasks under the given filter, in server order.
	// A nil filter returns everything.
	List(ctx context.Context, filter *TaskFilter) ([]Task, error)

	// Get returns a single task by id.
	Get(ctx context.Context, id int) (Task, error)

	// Create creates a task and returns the canonical server representation
	// (assigned id and timestamps).
	Create(ctx context.Context, title, description string, completed bool) (Task, error)

	// Update applies a partial update and returns the full updated task.
	Update(ctx context.Context, id int, patch TaskPatch) (Task, error)

	// ToggleCompletion flips the completion flag server-side and returns the
	// updated task.
	ToggleCompletion(ctx context.Context, id int) (Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id int) error
}

// ChatService defines the remote chat operations.
type ChatService interface {
	// Send submits a user message. conversationID may be empty for the first
	// message of a new conversation; the reply always carries the id.
	Send(ctx context.Context, conversationID, message string) (ChatReply, error)

	// History returns the full message log of an existing conversation in
	// chronological order.
	History(ctx context.Context, conversationID string) (Conversation, error)
}

// AuthService defines the session operations of the auth collaborator.
type AuthService interface {
	// Login exchanges credentials for a bearer session.
	Login(ctx context.Context, email, password string) (Session, error)

	// Register creates a new account.
	Register(ctx context.Context, email, password, name string) error

	// Logout invalidates the current session server-side.
	Logout(ctx context.Context) error

	// CurrentUser returns the account behind the current session.
	CurrentUser(ctx context.Context) (User, error)
}

// Bundle groups the remote services and the logger handed to commands.
type Bundle struct {
	Tasks TaskService
	Chat  ChatService
	Auth  AuthService
	Log   *zap.Logger
}
