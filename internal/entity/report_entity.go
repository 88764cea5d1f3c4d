package entity

import (
	"time"

	"github.com/google/uuid"
)

// Report is the synthesized deliverable for a completed session, built purely
// from the latest AnalysisResult of each kind. One per session, upserted.
type Report struct {
	Id                  uuid.UUID
	SessionId           uuid.UUID
	ExecutiveSummary    string
	CompetitiveAnalysis string
	StrategyShortTerm   string
	StrategyLongTerm    string
	DiscoveryQuestions  []string
	PocRecommendations  []string
	Risks               []string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
