package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	middleware "github.com/resumepilot/resumepilot/internal/api/middlewares"
	"github.com/resumepilot/resumepilot/internal/config"
	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/core/ingestion_engine"
	"github.com/resumepilot/resumepilot/internal/models"
	"github.com/resumepilot/resumepilot/internal/services"
)

type DocumentHandler struct {
	objects   core.ObjectClient
	profiles  core.ProfileStore
	analyses  core.AnalysisStore
	ingest    *services.IngestService
	analysis  *services.AnalysisService
	cfg       *config.Config
}

func NewDocumentHandler(objects core.ObjectClient, profiles core.ProfileStore, analyses core.AnalysisStore, ingest *services.IngestService, analysis *services.AnalysisService, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{objects: objects, profiles: profiles, analyses: analyses, ingest: ingest, analysis: analysis, cfg: cfg}
}

// UploadDocument stores the file in S3, writes a PENDING profile stub and
// queues the ingestion event. The client discovers the outcome by polling
// GetResume; pipeline failures are invisible here.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Sanitize the filename so the key carries no path components.
	cleanFilename := filepath.Base(header.Filename)
	key := fmt.Sprintf("uploads/%s/%s", userID, cleanFilename)
	resumeID := ingestion_engine.ResumeIDFromKey(key)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := h.objects.UploadFile(r.Context(), h.cfg.BucketName, key, file, contentType); err != nil {
		http.Error(w, fmt.Sprintf("upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	stub := &models.Profile{
		ResumeID:  resumeID,
		UserID:    userID,
		S3Key:     key,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.profiles.PutProfile(r.Context(), stub); err != nil {
		http.Error(w, fmt.Sprintf("failed to store profile stub: %v", err), http.StatusInternalServerError)
		return
	}

	h.ingest.Enqueue(models.UploadEvent{Records: []models.UploadRecord{{
		Bucket: h.cfg.BucketName,
		Key:    key,
		Size:   header.Size,
	}}})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(stub)
}

// GetResume is the poll endpoint: the profile with its status and, once
// analysis ran, the embedded last analysis.
func (h *DocumentHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	resumeID := chi.URLParam(r, "resumeID")

	profile, err := h.profiles.GetProfile(r.Context(), resumeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(w, "resume not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// ListResumes returns the caller's profiles, ordered by ?sort=createdAt|fitScore
// and ?order=asc|desc.
func (h *DocumentHandler) ListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = core.SortByCreatedAt
	}
	order := r.URL.Query().Get("order")
	if order == "" {
		order = core.OrderAsc
	}

	profiles, err := h.profiles.ListProfilesByUser(r.Context(), userID, sortBy, order)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}

type AnalyzeRequest struct {
	JobDescription string `json:"job_description"`
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
}

// AnalyzeResume scores the stored profile against a job description.
func (h *DocumentHandler) AnalyzeResume(w http.ResponseWriter, r *http.Request) {
	resumeID := chi.URLParam(r, "resumeID")

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.analysis.AnalyzeFit(r.Context(), resumeID, req.JobDescription, req.JobTitle, req.Company)
	if err != nil {
		if errors.Is(err, core.ErrProfileNotFound) {
			http.Error(w, "resume not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListAnalyses returns the append-only analysis trace for a resume.
func (h *DocumentHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	resumeID := chi.URLParam(r, "resumeID")

	records, err := h.analyses.ListAnalyses(r.Context(), resumeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
