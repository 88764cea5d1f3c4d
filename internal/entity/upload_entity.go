package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceKindPDF   = "pdf"
	SourceKindDocx  = "docx"
	SourceKindAudio = "audio"
	SourceKindText  = "text"
)

func IsValidSourceKind(kind string) bool {
	switch kind {
	case SourceKindPDF, SourceKindDocx, SourceKindAudio, SourceKindText:
		return true
	}
	return false
}

// UploadRecord is one ingested piece of customer content. Created on
// ingestion, never mutated; raw and normalized text are both kept so a
// re-parse is always possible.
type UploadRecord struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	SourceKind     string
	FileName       string
	RawContent     string // raw text, or base64 for binary kinds
	NormalizedText string
	CreatedAt      time.Time
}
