package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/core/analysis_engine"
	"github.com/resumepilot/resumepilot/internal/models"
)

type fakePlanner struct {
	plan []models.ImprovementItem
	err  error
}

func (f *fakePlanner) GeneratePlan(context.Context, []string, []string, string, string) ([]models.ImprovementItem, error) {
	return f.plan, f.err
}

func regexAnalysisService(profiles *fakeProfileStore, analyses *fakeAnalysisStore, planner core.PlanGenerator) *AnalysisService {
	return NewAnalysisService(
		analysis_engine.NewFallbackExtractor(nil, analysis_engine.NewRegexExtractor()),
		profiles, analyses, planner,
	)
}

func analysisRequest(text string) *models.AnalysisRequest {
	return &models.AnalysisRequest{
		ResumeID:      "resume",
		Text:          text,
		Bucket:        "cv-bucket",
		Key:           "uploads/user-42/resume.pdf",
		FileType:      "pdf",
		CorrelationID: "corr-1",
		UserID:        "user-42",
	}
}

func TestProcessRequestPersistsProfile(t *testing.T) {
	profiles := newFakeProfileStore()
	analyses := &fakeAnalysisStore{}
	svc := regexAnalysisService(profiles, analyses, nil)

	err := svc.ProcessRequest(context.Background(), analysisRequest("Jane Doe\n\nPython and SQL work"))
	require.NoError(t, err)

	profile, _ := profiles.GetProfile(context.Background(), "resume")
	require.NotNil(t, profile)
	assert.Equal(t, models.StatusCompleted, profile.Status)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.ElementsMatch(t, []string{"Python", "SQL"}, profile.Skills)

	records, _ := analyses.ListAnalyses(context.Background(), "resume")
	require.Len(t, records, 1)
	assert.Equal(t, models.MethodRegex, records[0].Method)
	assert.NotZero(t, records[0].EntityCount)
}

func TestProcessRequestReanalysisKeepsIdentity(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := regexAnalysisService(profiles, &fakeAnalysisStore{}, nil)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	existing := &models.Profile{
		ResumeID:     "resume",
		CreatedAt:    created,
		LastAnalysis: &models.AnalysisResult{FitScore: 55.5},
	}
	require.NoError(t, profiles.PutProfile(context.Background(), existing))

	err := svc.ProcessRequest(context.Background(), analysisRequest("Jane Doe\n\nKubernetes"))
	require.NoError(t, err)

	profile, _ := profiles.GetProfile(context.Background(), "resume")
	require.NotNil(t, profile)
	assert.Equal(t, created, profile.CreatedAt)
	require.NotNil(t, profile.LastAnalysis)
	assert.Equal(t, 55.5, profile.LastAnalysis.FitScore)
	assert.Contains(t, profile.Skills, "Kubernetes")
}

func TestProcessRequestEmptyTextFails(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := regexAnalysisService(profiles, &fakeAnalysisStore{}, nil)

	err := svc.ProcessRequest(context.Background(), analysisRequest("   \n  "))
	require.Error(t, err)

	var verr *core.ValidationError
	assert.True(t, errors.As(err, &verr))

	profile, _ := profiles.GetProfile(context.Background(), "resume")
	require.NotNil(t, profile)
	assert.Equal(t, models.StatusFailed, profile.Status)
}

func TestProcessRequestFailureKeepsExistingProfile(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := regexAnalysisService(profiles, &fakeAnalysisStore{}, nil)

	require.NoError(t, profiles.PutProfile(context.Background(), &models.Profile{
		ResumeID: "resume",
		Name:     "Jane Doe",
		Skills:   []string{"Python"},
		Status:   models.StatusCompleted,
	}))

	err := svc.ProcessRequest(context.Background(), analysisRequest("   "))
	require.Error(t, err)

	// The failed re-invocation flips status but keeps the prior result.
	profile, _ := profiles.GetProfile(context.Background(), "resume")
	require.NotNil(t, profile)
	assert.Equal(t, models.StatusFailed, profile.Status)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, []string{"Python"}, profile.Skills)
}

func TestAnalyzeFitUnknownResume(t *testing.T) {
	svc := regexAnalysisService(newFakeProfileStore(), &fakeAnalysisStore{}, nil)

	_, err := svc.AnalyzeFit(context.Background(), "ghost", "Python role", "", "")
	assert.ErrorIs(t, err, core.ErrProfileNotFound)
}

func TestAnalyzeFitPersistsResult(t *testing.T) {
	profiles := newFakeProfileStore()
	analyses := &fakeAnalysisStore{}
	planner := &fakePlanner{plan: []models.ImprovementItem{{Area: "Kubernetes", Advice: "take a course"}}}
	svc := regexAnalysisService(profiles, analyses, planner)

	require.NoError(t, profiles.PutProfile(context.Background(), &models.Profile{
		ResumeID: "resume",
		Skills:   []string{"Python", "SQL"},
		Status:   models.StatusCompleted,
	}))

	result, err := svc.AnalyzeFit(context.Background(), "resume", "Python, SQL and Kubernetes", "Backend Engineer", "Acme")
	require.NoError(t, err)

	assert.Equal(t, 66.7, result.FitScore)
	assert.Equal(t, []models.ImprovementItem{{Area: "Kubernetes", Advice: "take a course"}}, result.ImprovementPlan)

	profile, _ := profiles.GetProfile(context.Background(), "resume")
	require.NotNil(t, profile.LastAnalysis)
	assert.Equal(t, 66.7, profile.LastAnalysis.FitScore)

	records, _ := analyses.ListAnalyses(context.Background(), "resume")
	require.Len(t, records, 1)
	assert.Equal(t, methodFitScore, records[0].Method)
	assert.Equal(t, 2, records[0].EntityCount)
}

func TestAnalyzeFitPlannerFailureDegrades(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := regexAnalysisService(profiles, &fakeAnalysisStore{}, &fakePlanner{err: errors.New("model offline")})

	require.NoError(t, profiles.PutProfile(context.Background(), &models.Profile{
		ResumeID: "resume",
		Skills:   []string{"Python"},
	}))

	result, err := svc.AnalyzeFit(context.Background(), "resume", "Python and Kubernetes", "", "")
	require.NoError(t, err)

	assert.Empty(t, result.ImprovementPlan)
	assert.Equal(t, 50.0, result.FitScore)
}
