// Package taskflow implements the service interfaces against the TaskFlow
// HTTP API.
package taskflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	tasksPath = "/api/tasks"
	chatPath  = "/api/chat"
	authPath  = "/api/auth"
)

// Client implements service.TaskService, service.ChatService and
// service.AuthService over the TaskFlow REST API.
type Client struct {
	http *http.Client
	base *url.URL
	log  *zap.Logger
}

// New creates a client for the API at baseURL. A non-empty token is attached
// to every request as a bearer credential; an empty token produces an
// unauthenticated client, enough for login and register.
func New(ctx context.Context, baseURL, token string, log *zap.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	httpClient := &http.Client{}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, src)
	}

	return &Client{http: httpClient, base: base, log: log}, nil
}

// List implements service.TaskService.
func (c *Client) List(ctx context.Context, filter *service.TaskFilter) ([]service.Task, error) {
	query := url.Values{}
	if filter != nil {
		if filter.Status != "" {
			query.Set("status", filter.Status)
		}
		if filter.Search != "" {
			query.Set("search", filter.Search)
		}
		if filter.Limit > 0 {
			query.Set("limit", strconv.Itoa(filter.Limit))
		}
		if filter.Offset > 0 {
			query.Set("offset", strconv.Itoa(filter.Offset))
		}
	}

	var records []taskRecord
	if err := c.do(ctx, http.MethodGet, tasksPath, query, nil, &records); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

// Get implements service.TaskService.
func (c *Client) Get(ctx context.Context, id int) (service.Task, error) {
	var record taskRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", tasksPath, id), nil, nil, &record); err != nil {
		return service.Task{}, err
	}
	return record.toTask(), nil
}

// Create implements service.TaskService.
func (c *Client) Create(ctx context.Context, title, description string, completed bool) (service.Task, error) {
	body := createTaskRequest{Title: title, Description: description, Completed: completed}
	var record taskRecord
	if err := c.do(ctx, http.MethodPost, tasksPath, nil, body, &record); err != nil {
		return service.Task{}, err
	}
	return record.toTask(), nil
}

// Update implements service.TaskService.
func (c *Client) Update(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	body := updateTaskRequest{Title: patch.Title, Description: patch.Description, Completed: patch.Completed}
	var record taskRecord
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", tasksPath, id), nil, body, &record); err != nil {
		return service.Task{}, err
	}
	return record.toTask(), nil
}

// ToggleCompletion implements service.TaskService.
func (c *Client) ToggleCompletion(ctx context.Context, id int) (service.Task, error) {
	var record taskRecord
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/complete", tasksPath, id), nil, nil, &record); err != nil {
		return service.Task{}, err
	}
	return record.toTask(), nil
}

// Delete implements service.TaskService.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", tasksPath, id), nil, nil, nil)
}

// Send implements service.ChatService.
func (c *Client) Send(ctx context.Context, conversationID, message string) (service.ChatReply, error) {
	body := chatRequest{ConversationID: conversationID, Message: message}
	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, chatPath, nil, body, &resp); err != nil {
		return service.ChatReply{}, err
	}
	return service.ChatReply{
		ConversationID: resp.ConversationID,
		Response:       resp.Response,
		Timestamp:      parseTime(resp.Timestamp),
	}, nil
}

// History implements service.ChatService.
func (c *Client) History(ctx context.Context, conversationID string) (service.Conversation, error) {
	var resp historyResponse
	if err := c.do(ctx, http.MethodGet, chatPath+"/"+url.PathEscape(conversationID), nil, nil, &resp); err != nil {
		return service.Conversation{}, err
	}

	conv := service.Conversation{ID: resp.ConversationID}
	for _, m := range resp.Messages {
		conv.Messages = append(conv.Messages, service.ConversationMessage{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: parseTime(m.CreatedAt),
		})
	}
	return conv, nil
}

// Login implements service.AuthService.
func (c *Client) Login(ctx context.Context, email, password string) (service.Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, authPath+"/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return service.Session{}, err
	}
	return service.Session{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
		User:        resp.User.toUser(),
	}, nil
}

// Register implements service.AuthService.
func (c *Client) Register(ctx context.Context, email, password, name string) error {
	return c.do(ctx, http.MethodPost, authPath+"/register", nil, registerRequest{Email: email, Password: password, Name: name}, nil)
}

// Logout implements service.AuthService.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, authPath+"/logout", nil, nil, nil)
}

// CurrentUser implements service.AuthService.
func (c *Client) CurrentUser(ctx context.Context) (service.User, error) {
	var resp currentUserResponse
	if err := c.do(ctx, http.MethodGet, authPath+"/me", nil, nil, &resp); err != nil {
		return service.User{}, err
	}
	return resp.User.toUser(), nil
}

// do performs one API request and decodes the response into dst (when dst is
// non-nil). All error normalization happens here: 401 becomes an auth error,
// other non-2xx statuses become server errors carrying the body's detail
// message, and connection failures become transport errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	u := *c.base
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apperr.Timeout()
		}
		return apperr.Transport(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		c.log.Debug("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID))
		return err
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return apperr.Server(resp.StatusCode, "malformed server response")
	}
	return nil
}

// checkStatus converts a non-2xx response into the matching error kind,
// preferring the structured detail message from the body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body errorBody
	detail := ""
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if json.Unmarshal(data, &body) == nil {
			detail = body.Detail
			if detail == "" {
				detail = body.Message
			}
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperr.Auth(detail)
	case http.StatusNotFound:
		if detail == "" {
			detail = "not found"
		}
		return &apperr.Error{Kind: apperr.KindNotFound, Message: detail}
	default:
		return apperr.Server(resp.StatusCode, detail)
	}
}
