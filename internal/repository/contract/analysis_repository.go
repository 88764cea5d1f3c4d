package contract

import (
	"context"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/repository/specification"
)

// AnalysisRepository is append-only: corrections are new rows so the audit
// history of generated analyses is preserved.
type AnalysisRepository interface {
	CreateBulk(ctx context.Context, results []*entity.AnalysisResult) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisResult, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisResult, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
