package core

import (
	"context"

	"github.com/resumepilot/resumepilot/internal/models"
)

// File types the pipeline knows how to extract. Selection is always by this
// validated tag, never by sniffing the payload at extraction time.
const (
	FileTypePDF  = "pdf"
	FileTypeDOCX = "docx"
)

// TextExtractor is one format-specific extraction strategy. Implementations
// wrap every underlying cause into ExtractionFailedError so callers never
// see collaborator-specific error types.
type TextExtractor interface {
	// ExtractText pulls the document's text. It returns the text and, when
	// the source is paginated, the page count.
	ExtractText(ctx context.Context, doc models.RawDocument) (text string, pageCount int, err error)
}
