package contract

import (
	"context"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/repository/specification"
)

// UploadRepository is insert-only: ingested content is never mutated.
type UploadRepository interface {
	Create(ctx context.Context, upload *entity.UploadRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UploadRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UploadRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
