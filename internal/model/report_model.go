package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Report struct {
	Id                  uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId           uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex"`
	ExecutiveSummary    string                      `gorm:"type:text"`
	CompetitiveAnalysis string                      `gorm:"type:text"`
	StrategyShortTerm   string                      `gorm:"type:text"`
	StrategyLongTerm    string                      `gorm:"type:text"`
	DiscoveryQuestions  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	PocRecommendations  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Risks               datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt           time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt           time.Time                   `gorm:"autoUpdateTime"`
}

func (Report) TableName() string {
	return "customer_reports"
}
