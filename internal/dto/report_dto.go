package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReportResponse struct {
	ReportId            uuid.UUID  `json:"report_id"`
	SessionId           uuid.UUID  `json:"session_id"`
	ExecutiveSummary    string     `json:"executive_summary"`
	CompetitiveAnalysis string     `json:"competitive_analysis"`
	StrategyShortTerm   string     `json:"strategy_short_term"`
	StrategyLongTerm    string     `json:"strategy_long_term"`
	DiscoveryQuestions  []string   `json:"discovery_questions"`
	PocRecommendations  []string   `json:"poc_recommendations"`
	Risks               []string   `json:"risks"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

type EmailReportRequest struct {
	ToEmail string `json:"to_email" validate:"required,email"`
}
