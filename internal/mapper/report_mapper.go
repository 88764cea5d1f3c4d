package mapper

import (
	"time"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/model"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Report{
		Id:                  r.Id,
		SessionId:           r.SessionId,
		ExecutiveSummary:    r.ExecutiveSummary,
		CompetitiveAnalysis: r.CompetitiveAnalysis,
		StrategyShortTerm:   r.StrategyShortTerm,
		StrategyLongTerm:    r.StrategyLongTerm,
		DiscoveryQuestions:  []string(r.DiscoveryQuestions),
		PocRecommendations:  []string(r.PocRecommendations),
		Risks:               []string(r.Risks),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Report{
		Id:                  r.Id,
		SessionId:           r.SessionId,
		ExecutiveSummary:    r.ExecutiveSummary,
		CompetitiveAnalysis: r.CompetitiveAnalysis,
		StrategyShortTerm:   r.StrategyShortTerm,
		StrategyLongTerm:    r.StrategyLongTerm,
		DiscoveryQuestions:  r.DiscoveryQuestions,
		PocRecommendations:  r.PocRecommendations,
		Risks:               r.Risks,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}
