package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnalysisKindCompetitive   = "competitive"
	AnalysisKindStrategy      = "strategy"
	AnalysisKindDiscovery     = "discovery"
	AnalysisKindComputeUpside = "compute_upside"
)

// AnalysisKinds lists every kind one generation call produces, in the order
// sections appear in the structured response.
var AnalysisKinds = []string{
	AnalysisKindCompetitive,
	AnalysisKindStrategy,
	AnalysisKindDiscovery,
	AnalysisKindComputeUpside,
}

// AnalysisResult is one kind's slice of a single generation call.
// Append-only per session: corrections are new rows, never updates, so the
// audit history of what the model said survives.
type AnalysisResult struct {
	Id                  uuid.UUID
	SessionId           uuid.UUID
	Kind                string
	GeneratedText       string // JSON fragment for this kind's sections
	MatchedReferenceIds []uuid.UUID
	Confidence          float64
	CreatedAt           time.Time
}
