package mapper

import (
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/model"
)

type ReferenceMapper struct{}

func NewReferenceMapper() *ReferenceMapper {
	return &ReferenceMapper{}
}

func (m *ReferenceMapper) ToEntity(r *model.ReferenceRecord) *entity.ReferenceRecord {
	if r == nil {
		return nil
	}

	return &entity.ReferenceRecord{
		Id:        r.Id,
		Category:  r.Category,
		Title:     r.Title,
		BodyText:  r.BodyText,
		Summary:   r.Summary,
		Tags:      []string(r.Tags),
		CreatedAt: r.CreatedAt,
	}
}

func (m *ReferenceMapper) ToModel(r *entity.ReferenceRecord) *model.ReferenceRecord {
	if r == nil {
		return nil
	}

	return &model.ReferenceRecord{
		Id:        r.Id,
		Category:  r.Category,
		Title:     r.Title,
		BodyText:  r.BodyText,
		Summary:   r.Summary,
		Tags:      r.Tags,
		CreatedAt: r.CreatedAt,
	}
}

func (m *ReferenceMapper) ToEntities(records []*model.ReferenceRecord) []*entity.ReferenceRecord {
	entities := make([]*entity.ReferenceRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
