package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reference record categories. The knowledge base content itself is supplied
// externally at load time; only the categories are fixed.
const (
	ReferenceCategoryCustomerStory   = "customer_story"
	ReferenceCategoryCompetitiveNote = "competitive_note"
)

func IsValidReferenceCategory(category string) bool {
	return category == ReferenceCategoryCustomerStory || category == ReferenceCategoryCompetitiveNote
}

// ReferenceRecord is a curated success story or competitive-positioning
// snippet. Immutable once loaded, except for the one-time summary back-fill
// performed by the summarize worker right after bulk load.
type ReferenceRecord struct {
	Id        uuid.UUID
	Category  string
	Title     string
	BodyText  string
	Summary   string
	Tags      []string
	CreatedAt time.Time
}
