package dto

import (
	"time"

	"github.com/google/uuid"
)

type RunAnalysisResponse struct {
	SessionId uuid.UUID              `json:"session_id"`
	Results   []AnalysisItemResponse `json:"results"`
}

type AnalysisItemResponse struct {
	AnalysisId          uuid.UUID   `json:"analysis_id"`
	Kind                string      `json:"kind"`
	GeneratedText       string      `json:"generated_text"`
	MatchedReferenceIds []uuid.UUID `json:"matched_reference_ids"`
	Confidence          float64     `json:"confidence"`
	CreatedAt           time.Time   `json:"created_at"`
}
