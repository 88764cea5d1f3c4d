package dto

import "github.com/google/uuid"

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
}

type SessionStatusResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	State         string    `json:"state"`
	UploadCount   int       `json:"upload_count"`
	AnalysisCount int       `json:"analysis_count"`
}
