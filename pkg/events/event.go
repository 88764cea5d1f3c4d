package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ANALYSIS_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent embeds the common fields for concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Lifecycle event codes published on the session stream.
const (
	TypeSessionStarted    = "SESSION_STARTED"
	TypeUploadIngested    = "UPLOAD_INGESTED"
	TypeAnalysisCompleted = "ANALYSIS_COMPLETED"
	TypeAnalysisFailed    = "ANALYSIS_FAILED"
	TypeReportSynthesized = "REPORT_SYNTHESIZED"
	TypeReferenceLoaded   = "REFERENCE_LOADED"
)

// NewSessionEvent builds a session-scoped event with the standard fields set.
func NewSessionEvent(eventType, sessionId string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"session_id": sessionId,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
