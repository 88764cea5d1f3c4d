package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestUploadRequest struct {
	SourceKind string `json:"source_kind" validate:"required"`
	FileName   string `json:"file_name"`
	// Content carries raw text for source_kind=text and base64-encoded bytes
	// for binary kinds.
	Content string `json:"content" validate:"required"`
}

type IngestUploadResponse struct {
	UploadId       uuid.UUID `json:"upload_id"`
	SourceKind     string    `json:"source_kind"`
	NormalizedText string    `json:"normalized_text"`
}

type UploadItemResponse struct {
	UploadId       uuid.UUID `json:"upload_id"`
	SourceKind     string    `json:"source_kind"`
	FileName       string    `json:"file_name"`
	NormalizedText string    `json:"normalized_text"`
	CreatedAt      time.Time `json:"created_at"`
}
