package contract

import (
	"context"

	"ml-discovery-be/internal/entity"

	"github.com/google/uuid"
)

type ReportRepository interface {
	// Upsert keys on session_id: re-synthesizing replaces the report in
	// place, it never produces a second row for the session.
	Upsert(ctx context.Context, report *entity.Report) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.Report, error)
}
