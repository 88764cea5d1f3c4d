package unitofwork

import (
	"context"

	"ml-discovery-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ReferenceRepository() contract.ReferenceRepository
	ProfileRepository() contract.ProfileRepository
	UploadRepository() contract.UploadRepository
	AnalysisRepository() contract.AnalysisRepository
	ReportRepository() contract.ReportRepository
}
