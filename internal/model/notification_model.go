package model

import "time"

// Notification is the real-time payload pushed to connected clients. Not
// persisted; sessions are short-lived and missed notifications are recoverable
// from the session status endpoint.
type Notification struct {
	Type      string                 `json:"type"`
	SessionId string                 `json:"session_id"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
