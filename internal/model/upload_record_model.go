package model

import (
	"time"

	"github.com/google/uuid"
)

type UploadRecord struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceKind     string    `gorm:"type:varchar(20);not null"`
	FileName       string    `gorm:"type:varchar(255)"`
	RawContent     string    `gorm:"type:text"`
	NormalizedText string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (UploadRecord) TableName() string {
	return "customer_uploads"
}
