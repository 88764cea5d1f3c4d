package implementation

import (
	"context"
	"errors"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/mapper"
	"ml-discovery-be/internal/model"
	"ml-discovery-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.CustomerProfile) error {
	m := r.mapper.ToModel(profile)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "industry", "size_bucket", "maturity_level",
			"current_platforms", "use_cases", "pain_points", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.CustomerProfile, error) {
	var m model.CustomerProfile
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
