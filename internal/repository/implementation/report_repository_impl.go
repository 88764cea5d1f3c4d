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

type ReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportMapper
}

func NewReportRepository(db *gorm.DB) contract.ReportRepository {
	return &ReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *ReportRepositoryImpl) Upsert(ctx context.Context, report *entity.Report) error {
	m := r.mapper.ToModel(report)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"executive_summary", "competitive_analysis", "strategy_short_term",
			"strategy_long_term", "discovery_questions", "poc_recommendations",
			"risks", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReportRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.Report, error) {
	var m model.Report
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
