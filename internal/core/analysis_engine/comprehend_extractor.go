package analysis_engine

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.EntityExtractor = (*ComprehendExtractor)(nil)

// Comprehend caps DetectEntities input at 100KB of UTF-8.
const comprehendMaxBytes = 100_000

// ComprehendExtractor is the managed-NLP strategy. The candidate name comes
// from the first PERSON entity; email and phone still come from the
// deterministic patterns (Comprehend has no entity types for them); skills
// come from the shared vocabulary matcher.
type ComprehendExtractor struct {
	client *comprehend.Client
}

func NewComprehendExtractor(awsCfg aws.Config) *ComprehendExtractor {
	return &ComprehendExtractor{client: comprehend.NewFromConfig(awsCfg)}
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func (e *ComprehendExtractor) ExtractEntities(ctx context.Context, text string) (*models.ExtractedEntities, error) {
	input := truncateUTF8(text, comprehendMaxBytes)

	ctxNLP, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := e.client.DetectEntities(ctxNLP, &comprehend.DetectEntitiesInput{
		Text:         aws.String(input),
		LanguageCode: types.LanguageCodeEn,
	})
	if err != nil {
		return nil, err
	}

	entities := &models.ExtractedEntities{
		Method: models.MethodComprehend,
		Skills: MatchSkills(text),
	}

	for _, ent := range resp.Entities {
		if ent.Type == types.EntityTypePerson && ent.Text != nil && entities.Name == "" {
			entities.Name = *ent.Text
		}
	}
	entities.Email = emailPattern.FindString(text)
	entities.Phone = phonePattern.FindString(text)

	entities.TotalFound = len(entities.Skills)
	if entities.Name != "" {
		entities.TotalFound++
	}
	if entities.Email != "" {
		entities.TotalFound++
	}
	if entities.Phone != "" {
		entities.TotalFound++
	}

	return entities, nil
}
