package services

import (
	"context"
	"strings"
	"time"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/core/llm"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/models"
)

// ChatService runs one conversational turn: load the profile and history,
// assemble the bounded context, call inference, persist both turns.
type ChatService struct {
	profiles  core.ProfileStore
	chats     core.ChatHistoryStore
	builder   *llm.ContextBuilder
	inference core.InferenceClient
}

func NewChatService(profiles core.ProfileStore, chats core.ChatHistoryStore, builder *llm.ContextBuilder, inference core.InferenceClient) *ChatService {
	return &ChatService{profiles: profiles, chats: chats, builder: builder, inference: inference}
}

// HandleMessage answers one user message grounded in the stored profile.
// On any inference error nothing is persisted; the caller sees the error
// immediately.
func (s *ChatService) HandleMessage(ctx context.Context, resumeID, userMessage string) (string, error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", &core.ValidationError{Field: "message", Reason: "empty"}
	}

	profile, err := s.profiles.GetProfile(ctx, resumeID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", core.ErrProfileNotFound
	}

	history, err := s.chats.GetHistory(ctx, resumeID)
	if err != nil {
		return "", err
	}

	chatCtx := &models.ChatContext{
		CandidateName: profile.Name,
		CVText:        profile.ResumeText,
		LastAnalysis:  profile.LastAnalysis,
		UserMessage:   userMessage,
		History:       history,
	}
	if profile.LastAnalysis != nil {
		chatCtx.JobDescription = profile.LastAnalysis.JobDescription
	}

	systemPrompt, messages := s.builder.Build(chatCtx)

	reply, err := s.inference.Reply(ctx, systemPrompt, messages)
	if err != nil {
		logger.Error().Err(err).Str("resume_id", resumeID).Msg("inference failed, persisting nothing")
		return "", err
	}

	// Persist the exchange only after a successful reply. The assistant
	// turn is stamped strictly after the user turn so the sort key keeps
	// them in order.
	userTs := time.Now().UTC()
	if err := s.chats.AppendMessage(ctx, resumeID, models.ChatMessage{
		Role:      "user",
		Content:   userMessage,
		Timestamp: userTs.Format(models.TimestampLayout),
	}); err != nil {
		return "", err
	}
	if err := s.chats.AppendMessage(ctx, resumeID, models.ChatMessage{
		Role:      "assistant",
		Content:   reply,
		Timestamp: userTs.Add(time.Millisecond).Format(models.TimestampLayout),
	}); err != nil {
		return "", err
	}

	return reply, nil
}

// History returns the stored conversation for a resume, oldest first.
func (s *ChatService) History(ctx context.Context, resumeID string) ([]models.ChatMessage, error) {
	return s.chats.GetHistory(ctx, resumeID)
}
