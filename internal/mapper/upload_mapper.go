package mapper

import (
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/model"
)

type UploadMapper struct{}

func NewUploadMapper() *UploadMapper {
	return &UploadMapper{}
}

func (m *UploadMapper) ToEntity(u *model.UploadRecord) *entity.UploadRecord {
	if u == nil {
		return nil
	}

	return &entity.UploadRecord{
		Id:             u.Id,
		SessionId:      u.SessionId,
		SourceKind:     u.SourceKind,
		FileName:       u.FileName,
		RawContent:     u.RawContent,
		NormalizedText: u.NormalizedText,
		CreatedAt:      u.CreatedAt,
	}
}

func (m *UploadMapper) ToModel(u *entity.UploadRecord) *model.UploadRecord {
	if u == nil {
		return nil
	}

	return &model.UploadRecord{
		Id:             u.Id,
		SessionId:      u.SessionId,
		SourceKind:     u.SourceKind,
		FileName:       u.FileName,
		RawContent:     u.RawContent,
		NormalizedText: u.NormalizedText,
		CreatedAt:      u.CreatedAt,
	}
}

func (m *UploadMapper) ToEntities(uploads []*model.UploadRecord) []*entity.UploadRecord {
	entities := make([]*entity.UploadRecord, len(uploads))
	for i, u := range uploads {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
