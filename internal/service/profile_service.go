package service

import (
	"context"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/store"

	"github.com/google/uuid"
)

type IProfileService interface {
	Upsert(ctx context.Context, sessionId uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	Get(ctx context.Context, sessionId uuid.UUID) (*dto.ProfileResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory, sessions *memory.SessionRepository) IProfileService {
	return &profileService{
		uowFactory: uowFactory,
		sessions:   sessions,
	}
}

func (s *profileService) Upsert(ctx context.Context, sessionId uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	profile := &entity.CustomerProfile{
		SessionId:        sessionId,
		CompanyName:      req.CompanyName,
		Industry:         req.Industry,
		SizeBucket:       req.SizeBucket,
		MaturityLevel:    req.MaturityLevel,
		CurrentPlatforms: req.CurrentPlatforms,
		UseCases:         req.UseCases,
		PainPoints:       req.PainPoints,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProfileRepository().Upsert(ctx, profile); err != nil {
		return nil, err
	}

	if sess, ok := s.sessions.Get(sessionId.String()); ok && sess.State == store.StateCreated {
		sess.State = store.StateProfiled
		s.sessions.Save(sess)
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) Get(ctx context.Context, sessionId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ProfileRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("no profile for session")
	}
	return toProfileResponse(profile), nil
}

func toProfileResponse(profile *entity.CustomerProfile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		SessionId:        profile.SessionId,
		CompanyName:      profile.CompanyName,
		Industry:         profile.Industry,
		SizeBucket:       profile.SizeBucket,
		MaturityLevel:    profile.MaturityLevel,
		CurrentPlatforms: profile.CurrentPlatforms,
		UseCases:         profile.UseCases,
		PainPoints:       profile.PainPoints,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
}
