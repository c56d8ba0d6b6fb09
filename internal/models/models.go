package models

import "time"

// Profile pipeline states. A PENDING stub is written before the pipeline
// runs so pollers can tell "in flight" from "never existed".
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Entity extraction methods.
const (
	MethodComprehend = "comprehend"
	MethodRegex      = "regex"
)

// RawDocument points at an uploaded object. Consumed once by ingestion.
type RawDocument struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
}

// ExtractionResult is the outcome of one extraction attempt. The
// orchestrator captures failures here instead of raising them; the calling
// stage re-raises when Success is false.
type ExtractionResult struct {
	Text         string `json:"text"`
	FileType     string `json:"file_type"`
	PageCount    int    `json:"page_count"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ExtractedEntities holds what the NLP stage pulled out of the resume text.
// Skills are deduplicated case-insensitively; Method records which strategy
// produced the result.
type ExtractedEntities struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Skills     []string `json:"skills"`
	Method     string   `json:"method"`
	TotalFound int      `json:"total_found"`
}

// ImprovementItem is one entry of the generated improvement plan.
type ImprovementItem struct {
	Area   string `json:"area"`
	Advice string `json:"advice"`
}

// AnalysisResult is the job-fit outcome embedded in the profile.
type AnalysisResult struct {
	FitScore        float64           `json:"fit_score"`
	MatchedSkills   []string          `json:"matched_skills"`
	MissingSkills   []string          `json:"missing_skills"`
	JobDescription  string            `json:"job_description"`
	JobTitle        string            `json:"job_title,omitempty"`
	Company         string            `json:"company,omitempty"`
	ImprovementPlan []ImprovementItem `json:"improvement_plan,omitempty"`
}

// Profile is the structured view of one resume. ResumeID is stable across
// all stages and keys every downstream record. Mutated on re-analysis,
// never deleted.
type Profile struct {
	ResumeID     string          `json:"resume_id"`
	Name         string          `json:"name,omitempty"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Skills       []string        `json:"skills"`
	ResumeText   string          `json:"resume_text,omitempty"`
	UserID       string          `json:"user_id"`
	S3Key        string          `json:"s3_key"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	LastAnalysis *AnalysisResult `json:"last_analysis,omitempty"`
}

// AnalysisRecord is the append-only trace of one analysis run.
type AnalysisRecord struct {
	ResumeID    string    `json:"resume_id"`
	Timestamp   string    `json:"timestamp"`
	Method      string    `json:"method"`
	EntityCount int       `json:"entity_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// TimestampLayout formats timestamps used as sort keys. The fraction is
// fixed-width so lexicographic order matches chronological order
// (RFC3339Nano trims trailing zeros and breaks that).
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ChatMessage is one stored conversation turn, partitioned by resume id and
// ordered by its timestamp string.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatContext carries everything the context builder needs for one turn.
// Request-scoped, never persisted.
type ChatContext struct {
	CandidateName  string
	CVText         string
	JobDescription string
	LastAnalysis   *AnalysisResult
	UserMessage    string
	History        []ChatMessage
}

// AnalysisRequest is the payload forwarded from ingestion to the analysis
// stage. CorrelationID is generated once per ingestion event and threaded
// through every downstream log line and error.
type AnalysisRequest struct {
	ResumeID      string    `json:"resume_id"`
	Text          string    `json:"text"`
	Bucket        string    `json:"bucket"`
	Key           string    `json:"key"`
	FileType      string    `json:"file_type"`
	ExtractedAt   time.Time `json:"extracted_at"`
	CorrelationID string    `json:"correlation_id"`
	UserID        string    `json:"user_id"`
}

// UploadRecord is one (bucket, key) entry of an upload-completion event.
type UploadRecord struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
}

// UploadEvent is an upload-completion notification. A single event may
// carry several records; they are processed in array order.
type UploadEvent struct {
	Records []UploadRecord `json:"records"`
}
