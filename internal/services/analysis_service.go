package services

import (
	"context"
	"strings"
	"time"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/core/analysis_engine"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/models"
)

// Method recorded for analysis runs triggered by a job-description
// comparison rather than entity extraction.
const methodFitScore = "fit-score"

// AnalysisService is the second pipeline stage: entity extraction and
// persistence on ingestion, fit scoring on demand.
type AnalysisService struct {
	entities core.EntityExtractor
	profiles core.ProfileStore
	analyses core.AnalysisStore
	planner  core.PlanGenerator // may be nil; the plan is advisory
}

func NewAnalysisService(entities core.EntityExtractor, profiles core.ProfileStore, analyses core.AnalysisStore, planner core.PlanGenerator) *AnalysisService {
	return &AnalysisService{entities: entities, profiles: profiles, analyses: analyses, planner: planner}
}

// ProcessRequest handles one forwarded ingestion payload: extract entities,
// persist the profile as COMPLETED and append the analysis record. Storage
// errors propagate unchanged.
func (s *AnalysisService) ProcessRequest(ctx context.Context, req *models.AnalysisRequest) error {
	log := logger.WithCorrelation(req.CorrelationID)

	if req.ResumeID == "" {
		return &core.ValidationError{Field: "resume_id", Reason: "missing"}
	}
	if strings.TrimSpace(req.Text) == "" {
		s.persistFailure(ctx, req)
		return &core.ValidationError{Field: "text", Reason: "empty or whitespace-only"}
	}

	entities, err := s.entities.ExtractEntities(ctx, req.Text)
	if err != nil {
		log.Error().Err(err).Str("resume_id", req.ResumeID).Msg("entity extraction failed")
		s.persistFailure(ctx, req)
		return err
	}

	profile := &models.Profile{
		ResumeID:   req.ResumeID,
		Name:       entities.Name,
		Email:      entities.Email,
		Phone:      entities.Phone,
		Skills:     entities.Skills,
		ResumeText: req.Text,
		UserID:     req.UserID,
		S3Key:      req.Key,
		Status:     models.StatusCompleted,
		CreatedAt:  time.Now().UTC(),
	}

	// Re-analysis mutates the profile but keeps its identity: original
	// creation time and the last fit analysis survive.
	if existing, err := s.profiles.GetProfile(ctx, req.ResumeID); err == nil && existing != nil {
		if !existing.CreatedAt.IsZero() {
			profile.CreatedAt = existing.CreatedAt
		}
		profile.LastAnalysis = existing.LastAnalysis
	}

	if err := s.profiles.PutProfile(ctx, profile); err != nil {
		return err
	}

	now := time.Now().UTC()
	record := &models.AnalysisRecord{
		ResumeID:    req.ResumeID,
		Timestamp:   now.Format(models.TimestampLayout),
		Method:      entities.Method,
		EntityCount: entities.TotalFound,
		CreatedAt:   now,
	}
	if err := s.analyses.AppendAnalysis(ctx, record); err != nil {
		return err
	}

	log.Info().
		Str("resume_id", req.ResumeID).
		Str("method", entities.Method).
		Int("entities", entities.TotalFound).
		Msg("analysis completed")
	return nil
}

// AnalyzeFit scores the stored profile against a job description, asks the
// plan generator for prose advice, and persists the result as the profile's
// last analysis plus one more append-only record.
func (s *AnalysisService) AnalyzeFit(ctx context.Context, resumeID, jobDescription, jobTitle, company string) (*models.AnalysisResult, error) {
	profile, err := s.profiles.GetProfile(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, core.ErrProfileNotFound
	}

	result := analysis_engine.ScoreFit(profile.Skills, jobDescription, jobTitle, company)

	if s.planner != nil && len(result.MissingSkills) > 0 {
		plan, err := s.planner.GeneratePlan(ctx, result.MatchedSkills, result.MissingSkills, jobTitle, company)
		if err != nil {
			// The plan is prose garnish; the score is the contract.
			logger.Warn().Err(err).Str("resume_id", resumeID).Msg("improvement plan generation failed")
		} else {
			result.ImprovementPlan = plan
		}
	}

	profile.LastAnalysis = result
	if err := s.profiles.PutProfile(ctx, profile); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &models.AnalysisRecord{
		ResumeID:    resumeID,
		Timestamp:   now.Format(models.TimestampLayout),
		Method:      methodFitScore,
		EntityCount: len(result.MatchedSkills),
		CreatedAt:   now,
	}
	if err := s.analyses.AppendAnalysis(ctx, record); err != nil {
		return nil, err
	}

	return result, nil
}

// persistFailure flips the profile to FAILED, keeping the rest of an
// existing profile intact so a failed re-invocation doesn't wipe a prior
// COMPLETED result. Best effort; the triggering error is what the caller
// must see.
func (s *AnalysisService) persistFailure(ctx context.Context, req *models.AnalysisRequest) {
	profile, err := s.profiles.GetProfile(ctx, req.ResumeID)
	if err != nil || profile == nil {
		profile = &models.Profile{
			ResumeID:  req.ResumeID,
			UserID:    req.UserID,
			S3Key:     req.Key,
			CreatedAt: time.Now().UTC(),
		}
	}
	profile.Status = models.StatusFailed
	if err := s.profiles.PutProfile(ctx, profile); err != nil {
		logger.Error().Err(err).Str("resume_id", req.ResumeID).Msg("could not persist failed status")
	}
}
