package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/resumepilot/resumepilot/internal/models"
	"github.com/resumepilot/resumepilot/internal/services"
)

// s3Notification mirrors the S3 bucket-notification JSON shape, reduced to
// the fields ingestion needs.
type s3Notification struct {
	Records []struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key  string `json:"key"`
				Size int64  `json:"size"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

type EventHandler struct {
	ingest *services.IngestService
}

func NewEventHandler(ingest *services.IngestService) *EventHandler {
	return &EventHandler{ingest: ingest}
}

// HandleS3Event accepts an upload-completion notification and queues it.
// The 202 acknowledges receipt only; processing outcome is discovered by
// polling the resume.
func (h *EventHandler) HandleS3Event(w http.ResponseWriter, r *http.Request) {
	var notification s3Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		http.Error(w, "invalid event payload", http.StatusBadRequest)
		return
	}
	if len(notification.Records) == 0 {
		http.Error(w, "event carries no records", http.StatusBadRequest)
		return
	}

	event := models.UploadEvent{}
	for _, rec := range notification.Records {
		event.Records = append(event.Records, models.UploadRecord{
			Bucket: rec.S3.Bucket.Name,
			Key:    decodeS3Key(rec.S3.Object.Key),
			Size:   rec.S3.Object.Size,
		})
	}

	h.ingest.Enqueue(event)
	w.WriteHeader(http.StatusAccepted)
}

// decodeS3Key reverses the URL-encoding S3 applies to object keys in
// notifications (spaces arrive as "+"). An undecodable key is used as-is.
func decodeS3Key(raw string) string {
	key, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return key
}
