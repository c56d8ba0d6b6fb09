package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.InferenceClient = (*BedrockClient)(nil)

// BedrockClient invokes an Anthropic model on Bedrock with the messages API
// body shape.
type BedrockClient struct {
	client      *bedrockruntime.Client
	modelID     string
	maxTokens   int
	temperature float64
}

func NewBedrockClient(awsCfg aws.Config, modelID string, maxTokens int) *BedrockClient {
	return &BedrockClient{
		client:      bedrockruntime.NewFromConfig(awsCfg),
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: 0.5,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Reply sends the assembled turn to the model and returns the first text
// block of the response. Access problems surface as the actionable
// InferenceAccessDeniedError; anything else is a generic InferenceFailureError.
func (c *BedrockClient) Reply(ctx context.Context, systemPrompt string, messages []models.ChatMessage) (string, error) {
	body := anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		System:           systemPrompt,
		MaxTokens:        c.maxTokens,
		Temperature:      c.temperature,
	}
	for _, m := range messages {
		body.Messages = append(body.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &core.InferenceFailureError{Cause: err}
	}

	ctxInfer, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.InvokeModel(ctxInfer, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		var denied *brtypes.AccessDeniedException
		if errors.As(err, &denied) {
			return "", &core.InferenceAccessDeniedError{ModelID: c.modelID}
		}
		return "", &core.InferenceFailureError{Cause: err}
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return "", &core.InferenceFailureError{Cause: err}
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &core.InferenceFailureError{Cause: fmt.Errorf("model %s returned no text blocks", c.modelID)}
}
