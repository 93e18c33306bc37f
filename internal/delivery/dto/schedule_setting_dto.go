package dto

import (
	"time"
)

// Request DTOs

type CreateScheduleSettingRequest struct {
	DayOfWeek              *int   `json:"day_of_week" validate:"required,gte=0,lte=6"` // 0=Sunday..6=Saturday
	StartTime              string `json:"start_time" validate:"required"`              // Format: HH:MM
	EndTime                string `json:"end_time" validate:"required"`                // Format: HH:MM
	MaxConcurrentSpiritual int    `json:"max_concurrent_spiritual" validate:"required,min=1"`
	MaxConcurrentLightBath int    `json:"max_concurrent_light_bath" validate:"required,min=1"`
	IsActive               *bool  `json:"is_active" validate:"omitempty"`
}

type UpdateScheduleSettingRequest struct {
	StartTime              string `json:"start_time" validate:"omitempty"` // Format: HH:MM
	EndTime                string `json:"end_time" validate:"omitempty"`   // Format: HH:MM
	MaxConcurrentSpiritual *int   `json:"max_concurrent_spiritual" validate:"omitempty,min=1"`
	MaxConcurrentLightBath *int   `json:"max_concurrent_light_bath" validate:"omitempty,min=1"`
	IsActive               *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type ScheduleSettingResponse struct {
	ID                     int       `json:"id"`
	DayOfWeek              int       `json:"day_of_week"`
	StartTime              string    `json:"start_time"`
	EndTime                string    `json:"end_time"`
	MaxConcurrentSpiritual int       `json:"max_concurrent_spiritual"`
	MaxConcurrentLightBath int       `json:"max_concurrent_light_bath"`
	IsActive               bool      `json:"is_active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type ScheduleSettingListResponse struct {
	Settings []ScheduleSettingResponse `json:"settings"`
	Total    int                       `json:"total"`
}
