package service

import (
	"context"
	"strings"
	"time"

	"ml-discovery-be/internal/model"
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/pkg/events"
	pktNats "ml-discovery-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(sessionId uuid.UUID, notification model.Notification)
}

type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("discovery.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to discovery.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	eventType := event.EventType()
	if idx := strings.LastIndex(eventType, "."); idx >= 0 {
		eventType = eventType[idx+1:]
	}

	payload := event.Payload()
	sessionIdStr, _ := payload["session_id"].(string)
	if sessionIdStr == "" {
		// Non-session events (e.g. reference loads) have no recipient.
		return nil
	}
	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Event carries malformed session id", map[string]interface{}{"session_id": sessionIdStr})
		return nil
	}

	message := messageForEvent(eventType)
	if message == "" {
		return nil
	}

	s.delivery.Send(sessionId, model.Notification{
		Type:      eventType,
		SessionId: sessionIdStr,
		Message:   message,
		Data:      payload,
		CreatedAt: time.Now(),
	})
	return nil
}

func messageForEvent(eventType string) string {
	switch eventType {
	case events.TypeUploadIngested:
		return "Upload processed and ready for analysis."
	case events.TypeAnalysisCompleted:
		return "Analysis finished. Results are available."
	case events.TypeAnalysisFailed:
		return "Analysis failed. You can retry the same request."
	case events.TypeReportSynthesized:
		return "Your report is ready."
	default:
		return ""
	}
}
