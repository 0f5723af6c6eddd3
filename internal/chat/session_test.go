package chat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/apperr"
	"taskflow/internal/chat"
	"taskflow/internal/service"
	"taskflow/internal/testutil"
)

func newSession(t *testing.T) (*chat.Session, *testutil.FakeChatService) {
	t.Helper()
	svc := testutil.NewFakeChatService()
	return chat.NewSession(svc, nil), svc
}

func TestSendFreshConversation(t *testing.T) {
	session, svc := newSession(t)
	svc.Reply = "Task added."

	reply, err := session.Send(context.Background(), "Add a task to buy groceries")

	require.NoError(t, err)
	assert.Equal(t, service.RoleAssistant, reply.Role)
	assert.Equal(t, "Task added.", reply.Content)
	assert.NotEmpty(t, session.ConversationID())

	messages := session.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, service.RoleUser, messages[0].Role)
	assert.Equal(t, "Add a task to buy groceries", messages[0].Content)
	assert.Equal(t, service.RoleAssistant, messages[1].Role)
}

func TestSendEchoVisibleBeforeResolution(t *testing.T) {
	session, svc := newSession(t)
	svc.Entered = make(chan string, 1)
	svc.Proceed = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := session.Send(context.Background(), "hello")
		done <- err
	}()

	require.Equal(t, "Send", <-svc.Entered)

	// The request is in flight; the user echo is already the newest entry.
	messages := session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, service.RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.False(t, messages[0].CreatedAt.IsZero())
	assert.True(t, session.Loading())
	assert.Empty(t, session.ConversationID())

	close(svc.Proceed)
	require.NoError(t, <-done)
	assert.Len(t, session.Messages(), 2)
}

func TestSendCarriesExistingConversationID(t *testing.T) {
	session, svc := newSession(t)

	_, err := session.Send(context.Background(), "first")
	require.NoError(t, err)
	id := session.ConversationID()
	require.NotEmpty(t, id)

	_, err = session.Send(context.Background(), "second")
	require.NoError(t, err)

	assert.Equal(t, id, session.ConversationID(), "id is immutable once assigned")
	require.Len(t, svc.Sent, 2)
	assert.Equal(t, "", svc.Sent[0][0])
	assert.Equal(t, id, svc.Sent[1][0])
}

func TestSendFailureRemovesEcho(t *testing.T) {
	session, svc := newSession(t)
	_, err := session.Send(context.Background(), "first")
	require.NoError(t, err)
	before := len(session.Messages())

	svc.SendErr = apperr.Server(500, "assistant unavailable")
	_, err = session.Send(context.Background(), "second")

	require.Error(t, err)
	assert.Len(t, session.Messages(), before, "log returns to its pre-call length")
	assert.Equal(t, "assistant unavailable", apperr.UserMessage(session.LastError()))
	assert.False(t, session.Loading())
}

func TestSendEmptyRejected(t *testing.T) {
	session, svc := newSession(t)

	_, err := session.Send(context.Background(), "   \n ")

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, session.Messages())
	assert.Empty(t, svc.Sent)
}

func TestSendTrimsMessage(t *testing.T) {
	session, svc := newSession(t)

	_, err := session.Send(context.Background(), "  hello  ")

	require.NoError(t, err)
	require.Len(t, svc.Sent, 1)
	assert.Equal(t, "hello", svc.Sent[0][1])
}

func TestConcurrentSendRejected(t *testing.T) {
	session, svc := newSession(t)
	svc.Entered = make(chan string, 1)
	svc.Proceed = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := session.Send(context.Background(), "first")
		done <- err
	}()
	require.Equal(t, "Send", <-svc.Entered)

	_, err := session.Send(context.Background(), "second")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Len(t, session.Messages(), 1, "the rejected send leaves no echo")

	close(svc.Proceed)
	require.NoError(t, <-done)
	assert.Len(t, session.Messages(), 2)
}

func TestSendAuthFailure(t *testing.T) {
	session, svc := newSession(t)
	svc.SendErr = apperr.Auth("")

	_, err := session.Send(context.Background(), "hello")

	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err), "caller can trigger the sign-in redirect")
	assert.Empty(t, session.Messages())
}

func TestHydrateReplacesLog(t *testing.T) {
	session, svc := newSession(t)
	_, err := session.Send(context.Background(), "stale local message")
	require.NoError(t, err)

	id := svc.SeedConversation(
		service.ConversationMessage{Role: service.RoleUser, Content: "Show my tasks"},
		service.ConversationMessage{Role: service.RoleAssistant, Content: "You have 3 tasks."},
	)

	require.NoError(t, session.Hydrate(context.Background(), id))

	assert.Equal(t, id, session.ConversationID())
	messages := session.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "Show my tasks", messages[0].Content)
	assert.Equal(t, "You have 3 tasks.", messages[1].Content)
}

func TestHydrateUnknownConversation(t *testing.T) {
	session, _ := newSession(t)

	err := session.Hydrate(context.Background(), "conv-missing")

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, session.Messages())
}

func TestHydrateAuthFailure(t *testing.T) {
	session, svc := newSession(t)
	svc.HistoryErr = apperr.Auth("")

	err := session.Hydrate(context.Background(), "conv-1")

	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))
	assert.True(t, apperr.IsAuth(session.LastError()))
}

func TestHydrateEmptyIDRejected(t *testing.T) {
	session, _ := newSession(t)

	err := session.Hydrate(context.Background(), "  ")

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
