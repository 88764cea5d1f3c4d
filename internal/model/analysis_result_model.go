package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AnalysisResult struct {
	Id                  uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId           uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Kind                string                      `gorm:"type:varchar(30);not null;index"`
	GeneratedText       string                      `gorm:"type:text;not null"`
	MatchedReferenceIds datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Confidence          float64                     `gorm:"type:double precision"`
	CreatedAt           time.Time                   `gorm:"autoCreateTime"`
}

func (AnalysisResult) TableName() string {
	return "ai_analysis_results"
}
