package store

import "time"

// Session tracks the in-memory state of one discovery session: which
// pipeline stages have run and what the last analysis produced.
type Session struct {
	ID    string `json:"id"` // session_id issued at session creation
	State string `json:"state"`

	// Running counters kept for quick status reads without a DB round trip.
	UploadCount   int `json:"upload_count"`
	AnalysisCount int `json:"analysis_count"`

	LastAnalysisAt time.Time `json:"last_analysis_at"`
	LastError      string    `json:"last_error"`
}

const (
	StateCreated   = "CREATED"
	StateProfiled  = "PROFILED"
	StateAnalyzing = "ANALYZING"
	StateAnalyzed  = "ANALYZED"
	StateReported  = "REPORTED"
)
