package implementation

import (
	"context"
	"errors"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/mapper"
	"ml-discovery-be/internal/model"
	"ml-discovery-be/internal/repository/contract"
	"ml-discovery-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UploadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UploadMapper
}

func NewUploadRepository(db *gorm.DB) contract.UploadRepository {
	return &UploadRepositoryImpl{
		db:     db,
		mapper: mapper.NewUploadMapper(),
	}
}

func (r *UploadRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UploadRepositoryImpl) Create(ctx context.Context, upload *entity.UploadRecord) error {
	m := r.mapper.ToModel(upload)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*upload = *r.mapper.ToEntity(m)
	return nil
}

func (r *UploadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UploadRecord, error) {
	var m model.UploadRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UploadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UploadRecord, error) {
	var models []*model.UploadRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UploadRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UploadRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
