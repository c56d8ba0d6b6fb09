package core

import (
	"context"

	"github.com/resumepilot/resumepilot/internal/models"
)

// EntityExtractor is one name/email/phone/skills extraction strategy.
// Strategies are tried in a fixed preference order (managed NLP first,
// deterministic regex fallback second).
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) (*models.ExtractedEntities, error)
}

// InferenceClient talks to the chat LLM. Reply returns the first text block
// of the model response. Errors are either *InferenceAccessDeniedError or
// *InferenceFailureError; neither is retried here.
type InferenceClient interface {
	Reply(ctx context.Context, systemPrompt string, messages []models.ChatMessage) (string, error)
}

// PlanGenerator turns matched/missing skills into prose improvement advice.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, matched, missing []string, jobTitle, company string) ([]models.ImprovementItem, error)
}
