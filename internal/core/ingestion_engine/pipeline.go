package ingestion_engine

import (
	"context"
	"fmt"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/models"
)

// Orchestrator states. One document moves Received → Extracting →
// Normalizing and ends Validated or Failed.
const (
	StateReceived    = "Received"
	StateExtracting  = "Extracting"
	StateNormalizing = "Normalizing"
	StateValidated   = "Validated"
	StateFailed      = "Failed"
)

// Orchestrator sequences extract → normalize → validate for one document.
// It never raises extraction errors itself: failures are captured into the
// ExtractionResult and the calling stage decides to re-raise.
type Orchestrator struct {
	extractors map[string]core.TextExtractor
}

// NewOrchestrator wires one extractor per validated file type. Dispatch is
// by that tag only.
func NewOrchestrator(pdf, docx core.TextExtractor) *Orchestrator {
	return &Orchestrator{
		extractors: map[string]core.TextExtractor{
			core.FileTypePDF:  pdf,
			core.FileTypeDOCX: docx,
		},
	}
}

// Process runs the state machine and returns the result. result.Success is
// false on any stage failure, with ErrorMessage set.
func (o *Orchestrator) Process(ctx context.Context, doc models.RawDocument, fileType, correlationID string) *models.ExtractionResult {
	log := logger.WithCorrelation(correlationID)
	result := &models.ExtractionResult{FileType: fileType}

	state := StateReceived
	log.Debug().Str("key", doc.Key).Str("state", state).Msg("document received")

	extractor, ok := o.extractors[fileType]
	if !ok {
		result.ErrorMessage = fmt.Sprintf("no extractor for file type %q", fileType)
		return result
	}

	state = StateExtracting
	log.Debug().Str("key", doc.Key).Str("state", state).Msg("extracting text")
	text, pages, err := extractor.ExtractText(ctx, doc)
	if err != nil {
		log.Error().Err(err).Str("key", doc.Key).Str("state", StateFailed).Msg("extraction failed")
		result.ErrorMessage = err.Error()
		return result
	}
	result.PageCount = pages

	state = StateNormalizing
	log.Debug().Str("key", doc.Key).Str("state", state).Msg("normalizing text")
	text = Normalize(text)
	if !IsValid(text) {
		log.Error().Str("key", doc.Key).Str("state", StateFailed).Msg("no usable text after normalization")
		result.ErrorMessage = "document produced no usable text"
		return result
	}

	state = StateValidated
	log.Info().Str("key", doc.Key).Str("state", state).Int("chars", len(text)).Msg("extraction validated")

	result.Text = text
	result.Success = true
	return result
}
