package ingestion_engine

import (
	"bytes"
	"context"
	"errors"

	"code.sajari.com/docconv"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

var _ core.TextExtractor = (*DocxExtractor)(nil)

// DocxExtractor is the DOCX variant. It fetches the package from object
// storage and extracts the visible text runs of the main document part,
// paragraphs joined with newlines. Headers, footers and comments live in
// other package parts and are not included.
type DocxExtractor struct {
	objects core.ObjectClient
}

func NewDocxExtractor(objects core.ObjectClient) *DocxExtractor {
	return &DocxExtractor{objects: objects}
}

func (e *DocxExtractor) ExtractText(ctx context.Context, doc models.RawDocument) (string, int, error) {
	data, err := e.objects.GetFile(ctx, doc.Bucket, doc.Key)
	if err != nil {
		return "", 0, &core.ExtractionFailedError{Cause: err}
	}

	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", 0, &core.ExtractionFailedError{Cause: err}
	}
	if text == "" {
		return "", 0, &core.ExtractionFailedError{Cause: errors.New("docx contained no text")}
	}

	return text, 0, nil
}
