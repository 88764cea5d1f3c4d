package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/internal/repository/specification"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/events"
	pktNats "ml-discovery-be/pkg/nats"

	"github.com/google/uuid"
)

type IReferenceService interface {
	BulkLoad(ctx context.Context, req *dto.BulkLoadReferenceRequest) (*dto.BulkLoadReferenceResponse, error)
	List(ctx context.Context, category string) ([]*dto.ReferenceItemResponse, error)
}

type referenceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewReferenceService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IReferenceService {
	return &referenceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// BulkLoad inserts curated knowledge records and queues each one for the
// summary back-fill worker. Records are read-only after this point.
func (s *referenceService) BulkLoad(ctx context.Context, req *dto.BulkLoadReferenceRequest) (*dto.BulkLoadReferenceResponse, error) {
	records := make([]*entity.ReferenceRecord, len(req.Records))
	for i, r := range req.Records {
		if !entity.IsValidReferenceCategory(r.Category) {
			return nil, fmt.Errorf("validation failed: invalid category %q", r.Category)
		}
		records[i] = &entity.ReferenceRecord{
			Category: r.Category,
			Title:    r.Title,
			BodyText: r.BodyText,
			Tags:     r.Tags,
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ReferenceRepository().CreateBulk(ctx, records); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(records))
	for i, rec := range records {
		ids[i] = rec.Id

		msgJson, err := json.Marshal(dto.PublishSummarizeMessage{ReferenceId: rec.Id})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.logger.Warn("ReferenceService", "Failed to queue summarize message", map[string]interface{}{
				"reference_id": rec.Id,
				"error":        err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type:       events.TypeReferenceLoaded,
			Data:       map[string]interface{}{"count": len(records)},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ReferenceService", "Failed to publish reference loaded event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("ReferenceService", "Reference records loaded", map[string]interface{}{"count": len(records)})
	return &dto.BulkLoadReferenceResponse{
		Loaded: len(records),
		Ids:    ids,
	}, nil
}

func (s *referenceService) List(ctx context.Context, category string) ([]*dto.ReferenceItemResponse, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if category != "" {
		if !entity.IsValidReferenceCategory(category) {
			return nil, fmt.Errorf("validation failed: invalid category %q", category)
		}
		specs = append([]specification.Specification{specification.ByCategory{Category: category}}, specs...)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.ReferenceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ReferenceItemResponse, len(records))
	for i, rec := range records {
		items[i] = &dto.ReferenceItemResponse{
			Id:        rec.Id,
			Category:  rec.Category,
			Title:     rec.Title,
			Summary:   rec.Summary,
			Tags:      rec.Tags,
			CreatedAt: rec.CreatedAt,
		}
	}
	return items, nil
}
