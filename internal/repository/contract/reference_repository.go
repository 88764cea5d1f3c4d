package contract

import (
	"context"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReferenceRepository interface {
	CreateBulk(ctx context.Context, records []*entity.ReferenceRecord) error
	// UpdateSummary is the one permitted mutation: the load-time summary
	// back-fill. Records are otherwise read-only.
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReferenceRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
