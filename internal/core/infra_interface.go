package core

import (
	"context"
	"io"

	"github.com/resumepilot/resumepilot/internal/models"
)

// ObjectClient defines interactions with S3 or any object storage.
// It's abstract so you can replace AWS with MinIO, GCP, etc. easily.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
	HeadObject(ctx context.Context, bucket, key string) (size int64, err error)
}

// AnalyzerInvoker sends the forwarded payload to the analysis stage as a
// one-way call. Retries, if any, belong to the invoking runtime's delivery
// guarantees, not to this interface.
type AnalyzerInvoker interface {
	Invoke(ctx context.Context, req *models.AnalysisRequest) error
}

// Sort orders a caller may request when listing profiles. When the order
// doesn't match the user index's native order (created_at ascending) the
// store sorts client-side.
const (
	SortByCreatedAt = "createdAt"
	SortByFitScore  = "fitScore"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ProfileStore persists structured resume profiles. Writes are
// last-writer-wins; concurrent re-analysis of the same resume id can race
// and the later write wins. That consistency weakening is accepted.
type ProfileStore interface {
	PutProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, resumeID string) (*models.Profile, error)
	ListProfilesByUser(ctx context.Context, userID, sortBy, order string) ([]models.Profile, error)
}

// AnalysisStore appends one record per analysis run.
type AnalysisStore interface {
	AppendAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	ListAnalyses(ctx context.Context, resumeID string) ([]models.AnalysisRecord, error)
}

// ChatHistoryStore persists conversation turns per resume id in
// chronological order. Reads may come from an eventually-consistent
// replica; staleness is acceptable for this use.
type ChatHistoryStore interface {
	AppendMessage(ctx context.Context, resumeID string, msg models.ChatMessage) error
	GetHistory(ctx context.Context, resumeID string) ([]models.ChatMessage, error)
}
