package ingestion_engine

import (
	"path/filepath"
	"strings"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/logger"
)

// allowedTypes is the fixed extension allow-list for uploads.
var allowedTypes = map[string]bool{
	core.FileTypePDF:  true,
	core.FileTypeDOCX: true,
}

// Validator gates objects before any extraction work is attempted.
type Validator struct {
	maxBytes int64
}

func NewValidator(maxBytes int64) *Validator {
	return &Validator{maxBytes: maxBytes}
}

// Validate checks the object key's extension against the allow-list and the
// byte size against the configured maximum. It returns the validated file
// type on success. Sizes above 80% of the maximum pass with a warning.
func (v *Validator) Validate(key string, size int64, correlationID string) (fileType string, err error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(key), "."))
	if !allowedTypes[ext] {
		return "", &core.UnsupportedFileTypeError{Extension: ext}
	}

	if size > v.maxBytes {
		return "", &core.FileSizeExceededError{Size: size, Max: v.maxBytes}
	}
	if size > v.maxBytes*8/10 {
		log := logger.WithCorrelation(correlationID)
		log.Warn().
			Str("key", key).
			Int64("size", size).
			Int64("max", v.maxBytes).
			Msg("file size above 80% of the limit")
	}

	return ext, nil
}
