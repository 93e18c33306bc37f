package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAttendanceRequest struct {
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	Type          string    `json:"type" validate:"required,oneof=spiritual light_bath rod"`
	ScheduledDate string    `json:"scheduled_date" validate:"required"` // Format: YYYY-MM-DD
	ScheduledTime string    `json:"scheduled_time" validate:"required"` // Format: HH:MM
	Notes         string    `json:"notes" validate:"omitempty"`
}

type UpdateAttendanceRequest struct {
	Status string  `json:"status" validate:"omitempty,oneof=scheduled checked_in in_progress completed cancelled"`
	Notes  *string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AttendanceResponse struct {
	ID            uuid.UUID `json:"id"`
	PatientID     uuid.UUID `json:"patient_id"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	ScheduledDate string    `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AttendanceListResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Total       int                  `json:"total"`
}
