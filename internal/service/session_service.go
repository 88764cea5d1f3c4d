package service

import (
	"context"
	"time"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/internal/pkg/serverutils"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/internal/repository/specification"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/events"
	pktNats "ml-discovery-be/pkg/nats"
	"ml-discovery-be/pkg/store"

	"github.com/google/uuid"
)

const sessionTokenTTL = 24 * time.Hour

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Status(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStatusResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessions       *memory.SessionRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sessionId := uuid.New()

	token, err := serverutils.SignSessionToken(sessionId.String(), sessionTokenTTL)
	if err != nil {
		return nil, err
	}

	s.sessions.Save(&store.Session{
		ID:    sessionId.String(),
		State: store.StateCreated,
	})

	if s.eventPublisher != nil {
		evt := events.NewSessionEvent(events.TypeSessionStarted, sessionId.String(), nil)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("SessionService", "Failed to publish session started event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("SessionService", "Session created", map[string]interface{}{"session_id": sessionId})
	return &dto.CreateSessionResponse{
		SessionId: sessionId,
		Token:     token,
	}, nil
}

func (s *sessionService) Status(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStatusResponse, error) {
	resp := &dto.SessionStatusResponse{
		SessionId: sessionId,
		State:     store.StateCreated,
	}

	if sess, ok := s.sessions.Get(sessionId.String()); ok {
		resp.State = sess.State
		resp.UploadCount = sess.UploadCount
		resp.AnalysisCount = sess.AnalysisCount
		return resp, nil
	}

	// Session fell out of the in-memory cache; rebuild the counters from the
	// durable store.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	uploads, err := uow.UploadRepository().Count(ctx, specification.BySession{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	analyses, err := uow.AnalysisRepository().Count(ctx, specification.BySession{SessionID: sessionId})
	if err != nil {
		return nil, err
	}

	resp.UploadCount = int(uploads)
	resp.AnalysisCount = int(analyses)
	switch {
	case analyses > 0:
		resp.State = store.StateAnalyzed
	case uploads > 0:
		resp.State = store.StateProfiled
	}
	return resp, nil
}
