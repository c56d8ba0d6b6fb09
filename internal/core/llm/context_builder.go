package llm

import (
	"fmt"
	"strings"

	"github.com/resumepilot/resumepilot/internal/models"
)

// Ellipsis appended to truncated text.
const ellipsis = "..."

const personaPreamble = "You are a career assistant helping a candidate improve their resume and job fit."

const instructionBlock = "Answer using only the resume and analysis provided. " +
	"Be specific and practical; when the candidate asks what to improve, point at the missing skills first. " +
	"If the answer is not supported by the resume, say so."

// ContextBuilder assembles the system prompt and the bounded message list
// for one chat turn.
type ContextBuilder struct {
	maxContextLength int
	cvTextLimit      int
	jdTextLimit      int
}

func NewContextBuilder(maxContextLength, cvTextLimit, jdTextLimit int) *ContextBuilder {
	return &ContextBuilder{
		maxContextLength: maxContextLength,
		cvTextLimit:      cvTextLimit,
		jdTextLimit:      jdTextLimit,
	}
}

// Build produces the system prompt plus an ordered, role-alternating
// message list whose total content stays inside the context budget.
//
// History is walked newest-to-oldest and kept greedily until the first
// message that would overflow; everything older is dropped. The new user
// message is then appended, merged into a trailing user message, or dropped
// entirely when it's a trimmed-equal resubmission of that message.
func (b *ContextBuilder) Build(chatCtx *models.ChatContext) (systemPrompt string, messages []models.ChatMessage) {
	systemPrompt = b.buildSystemPrompt(chatCtx)

	remaining := b.maxContextLength - len(systemPrompt)

	var kept []models.ChatMessage
	running := 0
	for i := len(chatCtx.History) - 1; i >= 0; i-- {
		msg := chatCtx.History[i]
		if running+len(msg.Content) > remaining {
			break
		}
		running += len(msg.Content)
		kept = append(kept, msg)
	}
	// kept is newest-first; restore chronological order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	newMsg := models.ChatMessage{Role: "user", Content: chatCtx.UserMessage}

	if len(kept) == 0 || kept[len(kept)-1].Role == "assistant" {
		return systemPrompt, append(kept, newMsg)
	}

	// Last kept turn is already a user turn.
	last := &kept[len(kept)-1]
	if strings.TrimSpace(last.Content) == strings.TrimSpace(newMsg.Content) {
		// Resubmitted duplicate; keep the history as-is.
		return systemPrompt, kept
	}

	// Merge so the inference API still sees a single user turn per exchange.
	last.Content = last.Content + "\n\n" + newMsg.Content
	return systemPrompt, kept
}

func (b *ContextBuilder) buildSystemPrompt(chatCtx *models.ChatContext) string {
	var sb strings.Builder
	sb.WriteString(personaPreamble)
	sb.WriteString("\n\n")

	name := chatCtx.CandidateName
	if name == "" {
		name = "Candidate"
	}
	sb.WriteString(fmt.Sprintf("You are speaking with %s.\n", name))

	if chatCtx.LastAnalysis != nil {
		sb.WriteString(fmt.Sprintf("Latest job-fit score: %.1f/100.\n", chatCtx.LastAnalysis.FitScore))
		if len(chatCtx.LastAnalysis.MissingSkills) > 0 {
			sb.WriteString("Skills missing for the target job: ")
			sb.WriteString(strings.Join(chatCtx.LastAnalysis.MissingSkills, ", "))
			sb.WriteString(".\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(instructionBlock)
	sb.WriteString("\n\nResume:\n")
	sb.WriteString(Truncate(chatCtx.CVText, b.cvTextLimit))

	if chatCtx.JobDescription != "" {
		sb.WriteString("\n\nJob description:\n")
		sb.WriteString(Truncate(chatCtx.JobDescription, b.jdTextLimit))
	}

	return sb.String()
}

// Truncate cuts text to maxLength, backing up to the nearest preceding
// whitespace boundary (or maxLength itself when there is none) and
// appending an ellipsis. Text at or under the limit is returned unchanged.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength
	if idx := strings.LastIndexFunc(text[:maxLength], func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t'
	}); idx > 0 {
		cut = idx
	}
	return text[:cut] + ellipsis
}
