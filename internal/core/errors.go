package core

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound distinguishes "not ingested yet" from storage failure
// so pollers can keep polling.
var ErrProfileNotFound = errors.New("profile not found")

// ValidationError reports missing or malformed required input. Never
// retried; reported straight back to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// UnsupportedFileTypeError means the uploaded object's extension is outside
// the allow-list. Fatal for the object, never auto-retried.
type UnsupportedFileTypeError struct {
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q (allowed: pdf, docx)", e.Extension)
}

// FileSizeExceededError means the object is larger than the configured
// maximum. Fatal for the object, never auto-retried.
type FileSizeExceededError struct {
	Size int64
	Max  int64
}

func (e *FileSizeExceededError) Error() string {
	return fmt.Sprintf("file size %d exceeds maximum %d", e.Size, e.Max)
}

// ExtractionFailedError wraps any cause that left the pipeline without
// usable text: collaborator errors, empty OCR output, unreadable archives.
// Fatal for the invocation; the platform's retry/dead-letter policy applies.
type ExtractionFailedError struct {
	Cause error
}

func (e *ExtractionFailedError) Error() string {
	if e.Cause == nil {
		return "text extraction failed"
	}
	return fmt.Sprintf("text extraction failed: %v", e.Cause)
}

func (e *ExtractionFailedError) Unwrap() error { return e.Cause }

// AnalyzerInvocationFailedError wraps a transport error while forwarding the
// analysis payload downstream. Same disposition as extraction failure.
type AnalyzerInvocationFailedError struct {
	Cause error
}

func (e *AnalyzerInvocationFailedError) Error() string {
	return fmt.Sprintf("analyzer invocation failed: %v", e.Cause)
}

func (e *AnalyzerInvocationFailedError) Unwrap() error { return e.Cause }

// StorageError wraps a persistence collaborator failure with the operation
// that hit it. Propagated unchanged up the stack, never swallowed.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }

// InferenceAccessDeniedError is the actionable subtype of inference failure:
// the model grant is missing, retrying will not help until it is fixed.
type InferenceAccessDeniedError struct {
	ModelID string
}

func (e *InferenceAccessDeniedError) Error() string {
	return fmt.Sprintf("access denied invoking model %s: request model access for it in the Bedrock console", e.ModelID)
}

// InferenceFailureError covers every other inference error. Not retried
// here; no chat message is persisted when it occurs.
type InferenceFailureError struct {
	Cause error
}

func (e *InferenceFailureError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Cause)
}

func (e *InferenceFailureError) Unwrap() error { return e.Cause }
