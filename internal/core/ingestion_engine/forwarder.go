package ingestion_engine

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/logger"
	"github.com/resumepilot/resumepilot/internal/models"
)

// DefaultUserID is used when the object key carries no user prefix.
const DefaultUserID = "anonymous"

// Forwarder builds the downstream analysis payload and sends it as a
// one-way call. It never retries; delivery guarantees belong to the
// invoking runtime.
type Forwarder struct {
	invoker core.AnalyzerInvoker
}

func NewForwarder(invoker core.AnalyzerInvoker) *Forwarder {
	return &Forwarder{invoker: invoker}
}

// Forward assembles the payload for one validated extraction and hands it
// to the analysis stage. Transport errors come back wrapped as
// AnalyzerInvocationFailedError.
func (f *Forwarder) Forward(ctx context.Context, doc models.RawDocument, res *models.ExtractionResult, correlationID string) (*models.AnalysisRequest, error) {
	req := &models.AnalysisRequest{
		ResumeID:      ResumeIDFromKey(doc.Key),
		Text:          res.Text,
		Bucket:        doc.Bucket,
		Key:           doc.Key,
		FileType:      res.FileType,
		ExtractedAt:   time.Now().UTC(),
		CorrelationID: correlationID,
		UserID:        UserIDFromKey(doc.Key),
	}

	if err := f.invoker.Invoke(ctx, req); err != nil {
		return nil, &core.AnalyzerInvocationFailedError{Cause: err}
	}

	log := logger.WithCorrelation(correlationID)
	log.Info().
		Str("resume_id", req.ResumeID).
		Str("user_id", req.UserID).
		Msg("analysis payload forwarded")

	return req, nil
}

// ResumeIDFromKey derives the stable resume id from the uploaded object's
// key: base name without extension, prefixed with the owning user id for
// keys under the uploads/{userId}/ convention. The prefix keeps two users'
// same-named files on distinct partition keys; re-uploads by the same user
// reuse the id on purpose (re-analysis overwrites the profile). The "~"
// separator is URL-safe so the id travels as a single path segment.
func ResumeIDFromKey(key string) string {
	base := filepath.Base(key)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if userID := UserIDFromKey(key); userID != DefaultUserID {
		return userID + "~" + base
	}
	return base
}

// UserIDFromKey parses the path-convention prefix "uploads/{userId}/...".
// Keys outside that convention belong to DefaultUserID.
func UserIDFromKey(key string) string {
	parts := strings.Split(strings.Trim(key, "/"), "/")
	if len(parts) >= 3 && parts[0] == "uploads" && parts[1] != "" {
		return parts[1]
	}
	return DefaultUserID
}
