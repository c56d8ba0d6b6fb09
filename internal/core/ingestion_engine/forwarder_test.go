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

type captureInvoker struct {
	req *models.AnalysisRequest
	err error
}

func (c *captureInvoker) Invoke(_ context.Context, req *models.AnalysisRequest) error {
	c.req = req
	return c.err
}

func TestForwardBuildsPayload(t *testing.T) {
	inv := &captureInvoker{}
	f := NewForwarder(inv)

	doc := models.RawDocument{Bucket: "cv-bucket", Key: "uploads/user-42/resume.pdf"}
	res := &models.ExtractionResult{Text: "extracted text", FileType: "pdf", Success: true}

	req, err := f.Forward(context.Background(), doc, res, "corr-9")
	require.NoError(t, err)
	require.NotNil(t, inv.req)

	assert.Equal(t, "user-42~resume", req.ResumeID)
	assert.Equal(t, "extracted text", req.Text)
	assert.Equal(t, "cv-bucket", req.Bucket)
	assert.Equal(t, "uploads/user-42/resume.pdf", req.Key)
	assert.Equal(t, "pdf", req.FileType)
	assert.Equal(t, "corr-9", req.CorrelationID)
	assert.Equal(t, "user-42", req.UserID)
	assert.False(t, req.ExtractedAt.IsZero())
}

func TestForwardWrapsInvokerError(t *testing.T) {
	cause := errors.New("network down")
	f := NewForwarder(&captureInvoker{err: cause})

	_, err := f.Forward(context.Background(), models.RawDocument{Key: "resume.pdf"},
		&models.ExtractionResult{Text: "t", FileType: "pdf", Success: true}, "corr-1")
	require.Error(t, err)

	var failed *core.AnalyzerInvocationFailedError
	require.True(t, errors.As(err, &failed))
	assert.ErrorIs(t, err, cause)
}

func TestUserIDFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"uploads/user-42/resume.pdf", "user-42"},
		{"uploads/a/b/c.pdf", "a"},
		{"resume.pdf", DefaultUserID},
		{"other/user-42/resume.pdf", DefaultUserID},
		{"uploads/resume.pdf", DefaultUserID},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UserIDFromKey(tt.key), tt.key)
	}
}

func TestResumeIDFromKey(t *testing.T) {
	assert.Equal(t, "user-42~resume", ResumeIDFromKey("uploads/user-42/resume.pdf"))
	assert.Equal(t, "my-cv", ResumeIDFromKey("my-cv.docx"))
	assert.Equal(t, "plain", ResumeIDFromKey("plain"))
}

func TestResumeIDDistinctAcrossUsers(t *testing.T) {
	// Same filename uploaded by two users must never share a resume id:
	// the id is the partition key for every downstream record.
	alice := ResumeIDFromKey("uploads/alice/resume.pdf")
	bob := ResumeIDFromKey("uploads/bob/resume.pdf")

	assert.NotEqual(t, alice, bob)
	assert.Equal(t, "alice~resume", alice)
	assert.Equal(t, "bob~resume", bob)
}
