package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
)

// FakeChatService is an in-memory implementation of service.ChatService.
// It issues conversation ids, records sent messages and answers with a
// scripted reply.
type FakeChatService struct {
	mu            sync.Mutex
	conversations map[string][]service.ConversationMessage
	nextConv      int

	// Reply is the assistant response text for the next Send.
	Reply string

	// Error injection.
	SendErr    error
	HistoryErr error

	// Call gating, same contract as FakeTaskService.
	Entered chan string
	Proceed chan struct{}

	// Sent records every (conversationID, message) pair received.
	Sent [][2]string
}

// NewFakeChatService creates an empty fake with a default reply.
func NewFakeChatService() *FakeChatService {
	return &FakeChatService{
		conversations: make(map[string][]service.ConversationMessage),
		nextConv:      1,
		Reply:         "Done.",
	}
}

// SeedConversation installs a stored conversation and returns its id.
func (f *FakeChatService) SeedConversation(messages ...service.ConversationMessage) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("conv-%d", f.nextConv)
	f.nextConv++
	f.conversations[id] = messages
	return id
}

func (f *FakeChatService) enter(method string) {
	if f.Entered != nil {
		f.Entered <- method
	}
	if f.Proceed != nil {
		<-f.Proceed
	}
}

// Send implements service.ChatService.
func (f *FakeChatService) Send(ctx context.Context, conversationID, message string) (service.ChatReply, error) {
	f.enter("Send")
	if f.SendErr != nil {
		return service.ChatReply{}, f.SendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Sent = append(f.Sent, [2]string{conversationID, message})

	if conversationID == "" {
		conversationID = fmt.Sprintf("conv-%d", f.nextConv)
		f.nextConv++
	}
	now := time.Now().UTC()
	f.conversations[conversationID] = append(f.conversations[conversationID],
		service.ConversationMessage{Role: service.RoleUser, Content: message, CreatedAt: now},
		service.ConversationMessage{Role: service.RoleAssistant, Content: f.Reply, CreatedAt: now},
	)
	return service.ChatReply{
		ConversationID: conversationID,
		Response:       f.Reply,
		Timestamp:      now,
	}, nil
}

// History implements service.ChatService.
func (f *FakeChatService) History(ctx context.Context, conversationID string) (service.Conversation, error) {
	f.enter("History")
	if f.HistoryErr != nil {
		return service.Conversation{}, f.HistoryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	messages, ok := f.conversations[conversationID]
	if !ok {
		return service.Conversation{}, apperr.NotFound("conversation", conversationID)
	}
	out := make([]service.ConversationMessage, len(messages))
	copy(out, messages)
	return service.Conversation{ID: conversationID, Messages: out}, nil
}
