package invoker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.AnalyzerInvoker = (*LambdaInvoker)(nil)

// LambdaInvoker forwards the analysis payload to a Lambda function with the
// Event invocation type: fire-and-forget, the platform owns retries.
type LambdaInvoker struct {
	client   *lambda.Client
	function string
}

func NewLambdaInvoker(awsCfg aws.Config, function string) *LambdaInvoker {
	return &LambdaInvoker{client: lambda.NewFromConfig(awsCfg), function: function}
}

func (i *LambdaInvoker) Invoke(ctx context.Context, req *models.AnalysisRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal analysis request: %w", err)
	}

	_, err = i.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(i.function),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("invoke %s: %w", i.function, err)
	}
	return nil
}
