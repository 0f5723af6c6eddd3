package taskflow

import (
	"time"

	"taskflow/internal/service"
)

// Wire types mirror the server's snake_case JSON schemas.

type taskRecord struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"user_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (r taskRecord) toTask() service.Task {
	return service.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		UserID:      r.UserID,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type chatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

type chatResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
	Timestamp      string `json:"timestamp"`
}

type messageRecord struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type historyResponse struct {
	ConversationID string          `json:"conversation_id"`
	Messages       []messageRecord `json:"messages"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userRecord struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (r userRecord) toUser() service.User {
	return service.User{ID: r.ID, Email: r.Email, Name: r.Name}
}

type loginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        userRecord `json:"user"`
}

type currentUserResponse struct {
	User userRecord `json:"user"`
}

// errorBody is the structured error payload of non-2xx responses.
// The server populates detail; message is accepted as a fallback shape.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// parseTime accepts RFC 3339 timestamps with or without a zone offset.
// Unparseable input yields the zero time rather than an error; a task with a
// blank timestamp is still a task.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
