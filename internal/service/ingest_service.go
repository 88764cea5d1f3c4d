package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/internal/repository/specification"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/events"
	pktNats "ml-discovery-be/pkg/nats"
	"ml-discovery-be/pkg/parsing"

	"github.com/google/uuid"
)

type IIngestService interface {
	Ingest(ctx context.Context, sessionId uuid.UUID, req *dto.IngestUploadRequest) (*dto.IngestUploadResponse, error)
	List(ctx context.Context, sessionId uuid.UUID) ([]*dto.UploadItemResponse, error)
}

type ingestService struct {
	uowFactory     unitofwork.RepositoryFactory
	parser         parsing.Provider
	sessions       *memory.SessionRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	parser parsing.Provider,
	sessions *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		uowFactory:     uowFactory,
		parser:         parser,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Ingest normalizes one piece of customer content. Text passes through
// unchanged; binary kinds are staged and run through the external extraction
// service. Ingestion failures are final: the caller must fix the input.
func (s *ingestService) Ingest(ctx context.Context, sessionId uuid.UUID, req *dto.IngestUploadRequest) (*dto.IngestUploadResponse, error) {
	if !entity.IsValidSourceKind(req.SourceKind) {
		return nil, apperror.UnsupportedFormat(req.SourceKind)
	}

	normalized, err := s.normalize(ctx, sessionId, req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(normalized) == "" {
		return nil, apperror.EmptyContent("normalized text is blank after processing")
	}

	upload := &entity.UploadRecord{
		SessionId:      sessionId,
		SourceKind:     req.SourceKind,
		FileName:       req.FileName,
		RawContent:     req.Content,
		NormalizedText: normalized,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UploadRepository().Create(ctx, upload); err != nil {
		return nil, err
	}

	if sess, ok := s.sessions.Get(sessionId.String()); ok {
		sess.UploadCount++
		s.sessions.Save(sess)
	}

	if s.eventPublisher != nil {
		evt := events.NewSessionEvent(events.TypeUploadIngested, sessionId.String(), map[string]interface{}{
			"upload_id":   upload.Id,
			"source_kind": upload.SourceKind,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("IngestService", "Failed to publish upload event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("IngestService", "Upload ingested", map[string]interface{}{
		"session_id":  sessionId,
		"upload_id":   upload.Id,
		"source_kind": upload.SourceKind,
		"chars":       len(normalized),
	})

	return &dto.IngestUploadResponse{
		UploadId:       upload.Id,
		SourceKind:     upload.SourceKind,
		NormalizedText: upload.NormalizedText,
	}, nil
}

func (s *ingestService) normalize(ctx context.Context, sessionId uuid.UUID, req *dto.IngestUploadRequest) (string, error) {
	if req.SourceKind == entity.SourceKindText {
		return req.Content, nil
	}

	raw, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		return "", apperror.Wrap(apperror.KindParseError, "content is not valid base64", err)
	}
	if len(raw) == 0 {
		return "", apperror.EmptyContent("uploaded file is empty")
	}

	stagePath := fmt.Sprintf("%s/%d_%s", sessionId, time.Now().UnixNano(), safeFileName(req.FileName, req.SourceKind))
	if err := s.parser.StageFile(ctx, stagePath, raw); err != nil {
		return "", err
	}

	if req.SourceKind == entity.SourceKindAudio {
		return s.parser.TranscribeAudio(ctx, stagePath)
	}
	return s.parser.ParseDocument(ctx, stagePath)
}

func (s *ingestService) List(ctx context.Context, sessionId uuid.UUID) ([]*dto.UploadItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	uploads, err := uow.UploadRepository().FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UploadItemResponse, len(uploads))
	for i, u := range uploads {
		items[i] = &dto.UploadItemResponse{
			UploadId:       u.Id,
			SourceKind:     u.SourceKind,
			FileName:       u.FileName,
			NormalizedText: u.NormalizedText,
			CreatedAt:      u.CreatedAt,
		}
	}
	return items, nil
}

func safeFileName(name, kind string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload." + kind
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
