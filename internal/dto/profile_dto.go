package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertProfileRequest struct {
	CompanyName      string   `json:"company_name" validate:"required"`
	Industry         string   `json:"industry" validate:"required"`
	SizeBucket       string   `json:"size_bucket"`
	MaturityLevel    string   `json:"maturity_level"`
	CurrentPlatforms []string `json:"current_platforms"`
	UseCases         []string `json:"use_cases"`
	PainPoints       []string `json:"pain_points"`
}

type ProfileResponse struct {
	SessionId        uuid.UUID  `json:"session_id"`
	CompanyName      string     `json:"company_name"`
	Industry         string     `json:"industry"`
	SizeBucket       string     `json:"size_bucket"`
	MaturityLevel    string     `json:"maturity_level"`
	CurrentPlatforms []string   `json:"current_platforms"`
	UseCases         []string   `json:"use_cases"`
	PainPoints       []string   `json:"pain_points"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}
