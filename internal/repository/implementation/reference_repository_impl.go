package implementation

import (
	"context"
	"errors"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/mapper"
	"ml-discovery-be/internal/model"
	"ml-discovery-be/internal/repository/contract"
	"ml-discovery-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReferenceMapper
}

func NewReferenceRepository(db *gorm.DB) contract.ReferenceRepository {
	return &ReferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewReferenceMapper(),
	}
}

func (r *ReferenceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReferenceRepositoryImpl) CreateBulk(ctx context.Context, records []*entity.ReferenceRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*model.ReferenceRecord, len(records))
	for i, rec := range records {
		models[i] = r.mapper.ToModel(rec)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*records[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ReferenceRepositoryImpl) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return r.db.WithContext(ctx).
		Model(&model.ReferenceRecord{}).
		Where("id = ?", id).
		Update("summary", summary).Error
}

func (r *ReferenceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReferenceRecord, error) {
	var m model.ReferenceRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReferenceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceRecord, error) {
	var models []*model.ReferenceRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReferenceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ReferenceRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
