package services

import (
	"context"
	"io"
	"sync"

	"github.com/resumepilot/resumepilot/internal/models"
)

// In-memory collaborator fakes shared by the service tests.

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
	putErr   error
	getErr   error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*models.Profile)}
}

func (f *fakeProfileStore) PutProfile(_ context.Context, p *models.Profile) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.ResumeID] = &cp
	return nil
}

func (f *fakeProfileStore) GetProfile(_ context.Context, resumeID string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[resumeID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) ListProfilesByUser(_ context.Context, userID, _, _ string) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Profile
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeAnalysisStore struct {
	mu      sync.Mutex
	records []models.AnalysisRecord
}

func (f *fakeAnalysisStore) AppendAnalysis(_ context.Context, rec *models.AnalysisRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeAnalysisStore) ListAnalyses(_ context.Context, resumeID string) ([]models.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AnalysisRecord
	for _, r := range f.records {
		if r.ResumeID == resumeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeChatStore struct {
	mu        sync.Mutex
	messages  map[string][]models.ChatMessage
	appendErr error
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{messages: make(map[string][]models.ChatMessage)}
}

func (f *fakeChatStore) AppendMessage(_ context.Context, resumeID string, msg models.ChatMessage) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[resumeID] = append(f.messages[resumeID], msg)
	return nil
}

func (f *fakeChatStore) GetHistory(_ context.Context, resumeID string) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ChatMessage(nil), f.messages[resumeID]...), nil
}

type fakeObjectClient struct {
	files map[string][]byte
}

func newFakeObjectClient() *fakeObjectClient {
	return &fakeObjectClient{files: make(map[string][]byte)}
}

func (f *fakeObjectClient) UploadFile(_ context.Context, bucket, key string, data io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.files[bucket+"/"+key] = b
	return "s3://" + bucket + "/" + key, nil
}

func (f *fakeObjectClient) GetFile(_ context.Context, bucket, key string) ([]byte, error) {
	return f.files[bucket+"/"+key], nil
}

func (f *fakeObjectClient) HeadObject(_ context.Context, bucket, key string) (int64, error) {
	return int64(len(f.files[bucket+"/"+key])), nil
}

type fakeInference struct {
	reply string
	err   error
	calls int
}

func (f *fakeInference) Reply(_ context.Context, _ string, _ []models.ChatMessage) (string, error) {
	f.calls++
	return f.reply, f.err
}
