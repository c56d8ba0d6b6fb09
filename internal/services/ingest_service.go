package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/core/ingestion_engine"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/models"
)

// IngestService runs the upload-to-analysis half of the pipeline:
// validate → extract → normalize → forward.
//
// Delivery is at-least-once: a redelivered event re-runs the pipeline for
// the same object key and overwrites the same resume id downstream, which
// is safe, just not deduplicated.
type IngestService struct {
	validator    *ingestion_engine.Validator
	orchestrator *ingestion_engine.Orchestrator
	forwarder    *ingestion_engine.Forwarder
	objects      core.ObjectClient
	profiles     core.ProfileStore

	jobs chan models.UploadEvent
}

func NewIngestService(
	validator *ingestion_engine.Validator,
	orchestrator *ingestion_engine.Orchestrator,
	forwarder *ingestion_engine.Forwarder,
	objects core.ObjectClient,
	profiles core.ProfileStore,
) *IngestService {
	return &IngestService{
		validator:    validator,
		orchestrator: orchestrator,
		forwarder:    forwarder,
		objects:      objects,
		profiles:     profiles,
		jobs:         make(chan models.UploadEvent, 64),
	}
}

// Start runs a single worker goroutine reading from the jobs channel.
// One worker keeps each event's correlation-tagged log lines from
// interleaving with another event's.
func (s *IngestService) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-s.jobs:
				if err := s.HandleUploadEvent(ctx, event); err != nil {
					logger.Error().Err(err).Msg("upload event processing failed")
				}
			}
		}
	}()
}

// Enqueue schedules an upload event for ingestion. Blocks when the queue
// is full.
func (s *IngestService) Enqueue(event models.UploadEvent) {
	s.jobs <- event
}

// HandleUploadEvent processes the event's records in array order.
//
// Gate failures (unsupported type, oversize) are fatal for that object
// only: logged and skipped, never retried. Extraction and forwarding
// failures are fatal for the whole invocation so the platform's
// retry/dead-letter policy takes over.
func (s *IngestService) HandleUploadEvent(ctx context.Context, event models.UploadEvent) error {
	for _, record := range event.Records {
		if err := s.processRecord(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *IngestService) processRecord(ctx context.Context, record models.UploadRecord) error {
	correlationID := uuid.NewString()
	log := logger.WithCorrelation(correlationID)
	log.Info().Str("bucket", record.Bucket).Str("key", record.Key).Msg("processing upload record")

	size := record.Size
	if size == 0 {
		var err error
		size, err = s.objects.HeadObject(ctx, record.Bucket, record.Key)
		if err != nil {
			log.Error().Err(err).Msg("could not size object")
			return &core.ExtractionFailedError{Cause: err}
		}
	}

	fileType, err := s.validator.Validate(record.Key, size, correlationID)
	if err != nil {
		var unsupported *core.UnsupportedFileTypeError
		var oversize *core.FileSizeExceededError
		if errors.As(err, &unsupported) || errors.As(err, &oversize) {
			log.Error().Err(err).Str("key", record.Key).Msg("upload rejected at the gate")
			s.markFailed(ctx, record)
			return nil
		}
		return err
	}

	doc := models.RawDocument{Bucket: record.Bucket, Key: record.Key}

	result := s.orchestrator.Process(ctx, doc, fileType, correlationID)
	if !result.Success {
		// The orchestrator captured the failure as data; from here on it is
		// fatal for the invocation.
		s.markFailed(ctx, record)
		return &core.ExtractionFailedError{Cause: errors.New(result.ErrorMessage)}
	}

	if _, err := s.forwarder.Forward(ctx, doc, result, correlationID); err != nil {
		s.markFailed(ctx, record)
		return err
	}
	return nil
}

// markFailed flips the profile stub to FAILED so pollers stop waiting.
// Best effort: a storage error here must not mask the pipeline error.
func (s *IngestService) markFailed(ctx context.Context, record models.UploadRecord) {
	resumeID := ingestion_engine.ResumeIDFromKey(record.Key)
	profile, err := s.profiles.GetProfile(ctx, resumeID)
	if err != nil || profile == nil {
		profile = &models.Profile{
			ResumeID:  resumeID,
			UserID:    ingestion_engine.UserIDFromKey(record.Key),
			S3Key:     record.Key,
			CreatedAt: time.Now().UTC(),
		}
	}
	profile.Status = models.StatusFailed
	if err := s.profiles.PutProfile(ctx, profile); err != nil {
		logger.Error().Err(err).Str("resume_id", resumeID).Msg("could not mark profile failed")
	}
}
