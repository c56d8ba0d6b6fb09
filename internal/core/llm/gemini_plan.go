package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.PlanGenerator = (*GeminiPlanner)(nil)

// GeminiPlanner asks Gemini to turn matched/missing skills into a short,
// structured improvement plan.
type GeminiPlanner struct {
	client    *genai.Client
	modelName string
}

func NewGeminiPlanner(ctx context.Context, apiKey, modelName string) (*GeminiPlanner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiPlanner{client: cl, modelName: modelName}, nil
}

func (g *GeminiPlanner) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

const planPrompt = `You are a career advisor. A candidate was scored against a job opening.

Job title: %s
Company: %s
Skills the candidate already has that the job requires: %s
Skills the job requires that the candidate is missing: %s

For each missing skill, and for at most five in total, write one improvement
item: the skill area and one or two sentences of concrete advice on how to
close the gap (a project to build, a certification, what to practice).

Return only a JSON array with this exact structure, no markdown:
[{"area": "<skill>", "advice": "<concrete advice>"}]`

// GeneratePlan returns []{area, advice} items seeded with the fit analysis.
func (g *GeminiPlanner) GeneratePlan(ctx context.Context, matched, missing []string, jobTitle, company string) ([]models.ImprovementItem, error) {
	if len(missing) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(planPrompt, orNone(jobTitle), orNone(company),
		orNone(strings.Join(matched, ", ")), strings.Join(missing, ", "))

	m := g.client.GenerativeModel(g.modelName)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}

	raw := strings.TrimSpace(b.String())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.Trim(raw, "` \n")

	var items []models.ImprovementItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return items, nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not specified)"
	}
	return s
}
