package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CustomerProfile struct {
	SessionId        uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	CompanyName      string                      `gorm:"type:varchar(255);not null"`
	Industry         string                      `gorm:"type:varchar(100)"`
	SizeBucket       string                      `gorm:"type:varchar(50)"`
	MaturityLevel    string                      `gorm:"type:varchar(50)"`
	CurrentPlatforms datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	UseCases         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	PainPoints       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt        time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt        time.Time                   `gorm:"autoUpdateTime"`
}

func (CustomerProfile) TableName() string {
	return "customer_profiles"
}
