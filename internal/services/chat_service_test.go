package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/core/llm"
	"github.com/resumepilot/resumepilot/internal/models"
)

func newChatFixture(inference *fakeInference) (*ChatService, *fakeProfileStore, *fakeChatStore) {
	profiles := newFakeProfileStore()
	chats := newFakeChatStore()
	svc := NewChatService(profiles, chats, llm.NewContextBuilder(100_000, 2000, 1000), inference)
	return svc, profiles, chats
}

func seedProfile(t *testing.T, profiles *fakeProfileStore) {
	t.Helper()
	require.NoError(t, profiles.PutProfile(context.Background(), &models.Profile{
		ResumeID:   "resume",
		Name:       "Jane Doe",
		ResumeText: "Python and SQL experience",
		Status:     models.StatusCompleted,
	}))
}

func TestHandleMessagePersistsBothTurns(t *testing.T) {
	inference := &fakeInference{reply: "Focus on Kubernetes."}
	svc, profiles, _ := newChatFixture(inference)
	seedProfile(t, profiles)

	reply, err := svc.HandleMessage(context.Background(), "resume", "what should I learn?")
	require.NoError(t, err)
	assert.Equal(t, "Focus on Kubernetes.", reply)

	history, err := svc.History(context.Background(), "resume")
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "what should I learn?", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, "Focus on Kubernetes.", history[1].Content)
	assert.Less(t, history[0].Timestamp, history[1].Timestamp)
}

func TestHandleMessageInferenceFailurePersistsNothing(t *testing.T) {
	inference := &fakeInference{err: &core.InferenceFailureError{Cause: errors.New("timeout")}}
	svc, profiles, chats := newChatFixture(inference)
	seedProfile(t, profiles)

	_, err := svc.HandleMessage(context.Background(), "resume", "hello?")
	require.Error(t, err)

	var infErr *core.InferenceFailureError
	assert.True(t, errors.As(err, &infErr))

	history, herr := chats.GetHistory(context.Background(), "resume")
	require.NoError(t, herr)
	assert.Empty(t, history)
}

func TestHandleMessageUnknownResume(t *testing.T) {
	svc, _, _ := newChatFixture(&fakeInference{reply: "hi"})

	_, err := svc.HandleMessage(context.Background(), "ghost", "hello")
	assert.ErrorIs(t, err, core.ErrProfileNotFound)
}

func TestHandleMessageEmptyMessage(t *testing.T) {
	svc, profiles, _ := newChatFixture(&fakeInference{reply: "hi"})
	seedProfile(t, profiles)

	_, err := svc.HandleMessage(context.Background(), "resume", "   ")
	require.Error(t, err)

	var verr *core.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestHandleMessageThreadsHistory(t *testing.T) {
	inference := &fakeInference{reply: "second answer"}
	svc, profiles, chats := newChatFixture(inference)
	seedProfile(t, profiles)

	require.NoError(t, chats.AppendMessage(context.Background(), "resume", models.ChatMessage{
		Role: "user", Content: "first question", Timestamp: "2025-06-01T12:00:00Z",
	}))
	require.NoError(t, chats.AppendMessage(context.Background(), "resume", models.ChatMessage{
		Role: "assistant", Content: "first answer", Timestamp: "2025-06-01T12:00:01Z",
	}))

	_, err := svc.HandleMessage(context.Background(), "resume", "second question")
	require.NoError(t, err)

	history, _ := chats.GetHistory(context.Background(), "resume")
	require.Len(t, history, 4)
	assert.Equal(t, "second question", history[2].Content)
	assert.Equal(t, "second answer", history[3].Content)
}
