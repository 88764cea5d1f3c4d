package mapper

import (
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/model"

	"github.com/google/uuid"
)

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

func (m *AnalysisMapper) ToEntity(a *model.AnalysisResult) *entity.AnalysisResult {
	if a == nil {
		return nil
	}

	// Reference ids are stored as strings in jsonb; rows written by this
	// service always parse, anything else is skipped rather than failed.
	refIds := make([]uuid.UUID, 0, len(a.MatchedReferenceIds))
	for _, raw := range a.MatchedReferenceIds {
		if id, err := uuid.Parse(raw); err == nil {
			refIds = append(refIds, id)
		}
	}

	return &entity.AnalysisResult{
		Id:                  a.Id,
		SessionId:           a.SessionId,
		Kind:                a.Kind,
		GeneratedText:       a.GeneratedText,
		MatchedReferenceIds: refIds,
		Confidence:          a.Confidence,
		CreatedAt:           a.CreatedAt,
	}
}

func (m *AnalysisMapper) ToModel(a *entity.AnalysisResult) *model.AnalysisResult {
	if a == nil {
		return nil
	}

	refIds := make([]string, len(a.MatchedReferenceIds))
	for i, id := range a.MatchedReferenceIds {
		refIds[i] = id.String()
	}

	return &model.AnalysisResult{
		Id:                  a.Id,
		SessionId:           a.SessionId,
		Kind:                a.Kind,
		GeneratedText:       a.GeneratedText,
		MatchedReferenceIds: refIds,
		Confidence:          a.Confidence,
		CreatedAt:           a.CreatedAt,
	}
}

func (m *AnalysisMapper) ToEntities(results []*model.AnalysisResult) []*entity.AnalysisResult {
	entities := make([]*entity.AnalysisResult, len(results))
	for i, a := range results {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
