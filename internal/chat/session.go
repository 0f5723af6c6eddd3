// Package chat owns the append-only message log of one AI chat conversation.
// A sent message is echoed into the log immediately and removed again if the
// remote call fails; the assistant's confirmed reply is always appended
// strictly after the echo it answers.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
	"taskflow/internal/validate"
)

// Session manages the message log and conversation id for one chat
// conversation.
type Session struct {
	mu             sync.Mutex
	svc            service.ChatService
	log            *zap.Logger
	messages       []service.ConversationMessage
	conversationID string
	loading        bool
	sending        bool
	lastErr        error

	// now is the clock for optimistic echo timestamps. Overridden in tests.
	now func() time.Time
}

// NewSession creates an empty session with no conversation id.
func NewSession(svc service.ChatService, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{svc: svc, log: log, now: time.Now}
}

// Messages returns a copy of the message log in display order.
func (s *Session) Messages() []service.ConversationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.ConversationMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// ConversationID returns the server-issued conversation id, or "" while the
// conversation has not been confirmed yet.
func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// Loading reports whether an operation is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the error recorded by the most recent failed operation,
// or nil if the last operation succeeded.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Hydrate replaces the local log and conversation id with the server's
// history for conversationID. Used at session start when an existing
// conversation id is supplied externally. An auth failure is surfaced with
// its distinct kind so the caller can redirect to sign-in.
func (s *Session) Hydrate(ctx context.Context, conversationID string) error {
	if strings.TrimSpace(conversationID) == "" {
		return apperr.Validation("conversation id is required")
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return apperr.Validation("send in progress")
	}
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	conv, err := s.svc.History(ctx, conversationID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err
		s.log.Warn("conversation hydrate failed",
			zap.String("conversation_id", conversationID), zap.Error(err))
		return err
	}

	s.conversationID = conv.ID
	s.messages = append(s.messages[:0:0], conv.Messages...)
	s.log.Debug("conversation hydrated",
		zap.String("conversation_id", conv.ID), zap.Int("messages", len(conv.Messages)))
	return nil
}

// Send appends an optimistic user echo, submits the message, and appends the
// assistant's reply on success. The first successful send of a fresh session
// adopts the server-issued conversation id. On failure the echo is removed so
// the log returns to its pre-call length.
//
// One send at a time: a Send while another is outstanding fails fast without
// touching the log.
func (s *Session) Send(ctx context.Context, text string) (service.ConversationMessage, error) {
	text = strings.TrimSpace(text)
	if err := validate.Message(text); err != nil {
		return service.ConversationMessage{}, err
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return service.ConversationMessage{}, apperr.Validation("send already in progress")
	}
	s.sending = true
	s.loading = true
	s.lastErr = nil
	s.messages = append(s.messages, service.ConversationMessage{
		Role:      service.RoleUser,
		Content:   text,
		CreatedAt: s.now(),
	})
	conversationID := s.conversationID
	s.mu.Unlock()

	reply, err := s.svc.Send(ctx, conversationID, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	s.loading = false

	if err != nil {
		// Drop the optimistic echo; it is always the newest entry because
		// sends do not overlap.
		s.messages = s.messages[:len(s.messages)-1]
		s.lastErr = err
		s.log.Warn("chat send failed", zap.Error(err))
		return service.ConversationMessage{}, err
	}

	if s.conversationID == "" {
		s.conversationID = reply.ConversationID
	}

	assistant := service.ConversationMessage{
		Role:      service.RoleAssistant,
		Content:   reply.Response,
		CreatedAt: reply.Timestamp,
	}
	s.messages = append(s.messages, assistant)
	s.log.Debug("chat reply received",
		zap.String("conversation_id", s.conversationID), zap.Int("messages", len(s.messages)))
	return assistant, nil
}
