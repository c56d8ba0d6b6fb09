package ingestion_engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.TextExtractor = (*TextractExtractor)(nil)

// TextractExtractor is the OCR variant: it hands the document's S3 location
// to Textract and concatenates the returned LINE blocks in reading order.
type TextractExtractor struct {
	client *textract.Client
}

func NewTextractExtractor(awsCfg aws.Config) *TextractExtractor {
	return &TextractExtractor{client: textract.NewFromConfig(awsCfg)}
}

func (e *TextractExtractor) ExtractText(ctx context.Context, doc models.RawDocument) (string, int, error) {
	ctxOCR, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	resp, err := e.client.DetectDocumentText(ctxOCR, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(doc.Bucket),
				Name:   aws.String(doc.Key),
			},
		},
	})
	if err != nil {
		return "", 0, &core.ExtractionFailedError{Cause: err}
	}

	var lines []string
	for _, block := range resp.Blocks {
		if block.BlockType == types.BlockTypeLine && block.Text != nil {
			lines = append(lines, *block.Text)
		}
	}
	text := strings.Join(lines, "\n")

	// Empty OCR output is a failure, not an empty success.
	if strings.TrimSpace(text) == "" {
		return "", 0, &core.ExtractionFailedError{Cause: errors.New("ocr returned no text")}
	}

	pages := 0
	if resp.DocumentMetadata != nil && resp.DocumentMetadata.Pages != nil {
		pages = int(*resp.DocumentMetadata.Pages)
	}

	return text, pages, nil
}
