package analysis_engine

import (
	"context"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.EntityExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor chains entity extraction strategies in a fixed
// preference order: the managed NLP strategy first, the deterministic regex
// strategy when the managed one errors or is not configured. The produced
// result's Method field records which strategy ran.
type FallbackExtractor struct {
	primary  core.EntityExtractor // may be nil when the managed service is off
	fallback core.EntityExtractor
}

func NewFallbackExtractor(primary, fallback core.EntityExtractor) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, fallback: fallback}
}

func (e *FallbackExtractor) ExtractEntities(ctx context.Context, text string) (*models.ExtractedEntities, error) {
	if !ValidateInput(text) {
		return nil, &core.ValidationError{Field: "text", Reason: "empty or whitespace-only"}
	}

	if e.primary != nil {
		entities, err := e.primary.ExtractEntities(ctx, text)
		if err == nil {
			return entities, nil
		}
		logger.Warn().Err(err).Msg("managed NLP unavailable, falling back to regex extraction")
	}

	return e.fallback.ExtractEntities(ctx, text)
}
