package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReferenceRecord struct {
	Id        uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category  string                      `gorm:"type:varchar(50);not null;index"`
	Title     string                      `gorm:"type:varchar(255);not null"`
	BodyText  string                      `gorm:"type:text;not null"`
	Summary   string                      `gorm:"type:text"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt time.Time                   `gorm:"autoCreateTime"`
}

func (ReferenceRecord) TableName() string {
	return "reference_knowledge"
}
