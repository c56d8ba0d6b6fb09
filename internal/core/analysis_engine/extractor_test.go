package analysis_engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

type stubEntityExtractor struct {
	entities *models.ExtractedEntities
	err      error
	calls    int
}

func (s *stubEntityExtractor) ExtractEntities(context.Context, string) (*models.ExtractedEntities, error) {
	s.calls++
	return s.entities, s.err
}

func TestFallbackExtractorPrefersPrimary(t *testing.T) {
	primary := &stubEntityExtractor{entities: &models.ExtractedEntities{Method: models.MethodComprehend, Name: "Jane Doe"}}
	fallback := &stubEntityExtractor{entities: &models.ExtractedEntities{Method: models.MethodRegex}}

	entities, err := NewFallbackExtractor(primary, fallback).ExtractEntities(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Equal(t, models.MethodComprehend, entities.Method)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackExtractorFallsBackOnPrimaryError(t *testing.T) {
	primary := &stubEntityExtractor{err: errors.New("throttled")}
	fallback := &stubEntityExtractor{entities: &models.ExtractedEntities{Method: models.MethodRegex}}

	entities, err := NewFallbackExtractor(primary, fallback).ExtractEntities(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Equal(t, models.MethodRegex, entities.Method)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackExtractorNilPrimary(t *testing.T) {
	fallback := &stubEntityExtractor{entities: &models.ExtractedEntities{Method: models.MethodRegex}}

	entities, err := NewFallbackExtractor(nil, fallback).ExtractEntities(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Equal(t, models.MethodRegex, entities.Method)
}

func TestFallbackExtractorRejectsEmptyInput(t *testing.T) {
	fallback := &stubEntityExtractor{}

	_, err := NewFallbackExtractor(nil, fallback).ExtractEntities(context.Background(), "   \n\t  ")
	require.Error(t, err)

	var verr *core.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, fallback.calls)
}
