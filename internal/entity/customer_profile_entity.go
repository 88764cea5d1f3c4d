package entity

import (
	"time"

	"github.com/google/uuid"
)

// CustomerProfile describes one analysis session's customer. One per session,
// replaced wholesale on explicit edit.
type CustomerProfile struct {
	SessionId        uuid.UUID
	CompanyName      string
	Industry         string
	SizeBucket       string
	MaturityLevel    string
	CurrentPlatforms []string
	UseCases         []string
	PainPoints       []string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
