package mapper

import (
	"time"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.CustomerProfile) *entity.CustomerProfile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.CustomerProfile{
		SessionId:        p.SessionId,
		CompanyName:      p.CompanyName,
		Industry:         p.Industry,
		SizeBucket:       p.SizeBucket,
		MaturityLevel:    p.MaturityLevel,
		CurrentPlatforms: []string(p.CurrentPlatforms),
		UseCases:         []string(p.UseCases),
		PainPoints:       []string(p.PainPoints),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.CustomerProfile) *model.CustomerProfile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.CustomerProfile{
		SessionId:        p.SessionId,
		CompanyName:      p.CompanyName,
		Industry:         p.Industry,
		SizeBucket:       p.SizeBucket,
		MaturityLevel:    p.MaturityLevel,
		CurrentPlatforms: p.CurrentPlatforms,
		UseCases:         p.UseCases,
		PainPoints:       p.PainPoints,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}
