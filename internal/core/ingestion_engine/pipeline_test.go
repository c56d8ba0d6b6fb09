package ingestion_engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

type stubExtractor struct {
	text  string
	pages int
	err   error
	calls int
}

func (s *stubExtractor) ExtractText(_ context.Context, _ models.RawDocument) (string, int, error) {
	s.calls++
	return s.text, s.pages, s.err
}

func TestOrchestratorValidatesExtractedText(t *testing.T) {
	pdf := &stubExtractor{text: "Jane Doe\n\nPython,   SQL", pages: 2}
	o := NewOrchestrator(pdf, &stubExtractor{})

	res := o.Process(context.Background(), models.RawDocument{Bucket: "b", Key: "resume.pdf"}, core.FileTypePDF, "corr-1")

	require.True(t, res.Success)
	assert.Equal(t, "Jane Doe\n\nPython, SQL", res.Text)
	assert.Equal(t, core.FileTypePDF, res.FileType)
	assert.Equal(t, 2, res.PageCount)
	assert.Empty(t, res.ErrorMessage)
}

func TestOrchestratorDispatchesByFileType(t *testing.T) {
	pdf := &stubExtractor{text: "pdf text"}
	docx := &stubExtractor{text: "docx text"}
	o := NewOrchestrator(pdf, docx)

	res := o.Process(context.Background(), models.RawDocument{Key: "resume.docx"}, core.FileTypeDOCX, "corr-1")

	require.True(t, res.Success)
	assert.Equal(t, 0, pdf.calls)
	assert.Equal(t, 1, docx.calls)
}

func TestOrchestratorCapturesExtractionFailureAsData(t *testing.T) {
	pdf := &stubExtractor{err: &core.ExtractionFailedError{Cause: errors.New("ocr down")}}
	o := NewOrchestrator(pdf, &stubExtractor{})

	res := o.Process(context.Background(), models.RawDocument{Key: "resume.pdf"}, core.FileTypePDF, "corr-1")

	assert.False(t, res.Success)
	assert.Contains(t, res.ErrorMessage, "ocr down")
	assert.Empty(t, res.Text)
}

func TestOrchestratorFailsOnWhitespaceOnlyText(t *testing.T) {
	pdf := &stubExtractor{text: "   \n\t  "}
	o := NewOrchestrator(pdf, &stubExtractor{})

	res := o.Process(context.Background(), models.RawDocument{Key: "resume.pdf"}, core.FileTypePDF, "corr-1")

	assert.False(t, res.Success)
	assert.Contains(t, res.ErrorMessage, "no usable text")
}

func TestOrchestratorUnknownFileType(t *testing.T) {
	o := NewOrchestrator(&stubExtractor{}, &stubExtractor{})

	res := o.Process(context.Background(), models.RawDocument{Key: "resume.odt"}, "odt", "corr-1")

	assert.False(t, res.Success)
	assert.Contains(t, res.ErrorMessage, "no extractor")
}
