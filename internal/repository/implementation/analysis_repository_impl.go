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

type AnalysisRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisMapper
}

func NewAnalysisRepository(db *gorm.DB) contract.AnalysisRepository {
	return &AnalysisRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisMapper(),
	}
}

func (r *AnalysisRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// CreateBulk inserts all results of one generation call. Callers wrap this in
// a unit-of-work transaction so partial persistence cannot happen.
func (r *AnalysisRepositoryImpl) CreateBulk(ctx context.Context, results []*entity.AnalysisResult) error {
	if len(results) == 0 {
		return nil
	}
	models := make([]*model.AnalysisResult, len(results))
	for i, res := range results {
		models[i] = r.mapper.ToModel(res)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*results[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *AnalysisRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisResult, error) {
	var m model.AnalysisResult
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AnalysisRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisResult, error) {
	var models []*model.AnalysisResult
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AnalysisRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AnalysisResult{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
