package dto

import (
	"time"

	"github.com/google/uuid"
)

type BulkLoadReferenceRequest struct {
	Records []ReferenceRecordRequest `json:"records" validate:"required,min=1,dive"`
}

type ReferenceRecordRequest struct {
	Category string   `json:"category" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	BodyText string   `json:"body_text" validate:"required"`
	Tags     []string `json:"tags"`
}

type BulkLoadReferenceResponse struct {
	Loaded int         `json:"loaded"`
	Ids    []uuid.UUID `json:"ids"`
}

type ReferenceItemResponse struct {
	Id        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishSummarizeMessage is the payload queued for the summary back-fill
// worker after a bulk load.
type PublishSummarizeMessage struct {
	ReferenceId uuid.UUID `json:"reference_id"`
}
