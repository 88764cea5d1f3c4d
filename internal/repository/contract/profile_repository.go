package contract

import (
	"context"

	"ml-discovery-be/internal/entity"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.CustomerProfile) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.CustomerProfile, error)
}
